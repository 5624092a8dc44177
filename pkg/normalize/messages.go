package normalize

import (
	"encoding/json"

	"modboard/pkg/models"
	"modboard/pkg/telemetry"
)

// Raw submission payloads arrive from unspecified capture adapters in
// arbitrarily nested shapes. Field probing is expressed as ordered
// candidate key lists tried in priority order; the first present value
// wins. Every extractor is total: absent or malformed fields degrade to
// empty values, never an error.

var (
	typeKeys  = []string{"type", "post_type", "message_type"}
	timeKeys  = []string{"time", "timestamp", "create_time", "date", "ts"}
	textKeys  = []string{"text", "content", "message"}
	imageKeys = []string{"images", "image_urls"}

	textSegmentTags  = map[string]struct{}{"text": {}, "plain": {}}
	imageSegmentTags = map[string]struct{}{"image": {}, "img": {}}
	segmentURLKeys   = []string{"url", "src", "path"}
	segmentTextKeys  = []string{"text", "content"}
)

// DefaultMessageType is assigned when no type field is present.
const DefaultMessageType = "message"

// millisecondThreshold separates second-resolution from millisecond-resolution
// numeric timestamps.
const millisecondThreshold = 1e12

// Messages normalizes a raw payload into an ordered canonical message
// sequence. String payloads are JSON-parsed first; a parse failure yields
// an empty sequence. Accepted top-level shapes: a bare list, an object
// with a "messages" list, an object with a singular "message" (object or
// list), or any other object treated as a one-element list of itself.
// Output order always matches raw order.
func Messages(raw interface{}) []models.CanonicalMessage {
	telemetry.NormalizeTotal.WithLabelValues("messages").Inc()

	switch v := raw.(type) {
	case string:
		var parsed interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return []models.CanonicalMessage{}
		}
		raw = parsed
	case []byte:
		var parsed interface{}
		if err := json.Unmarshal(v, &parsed); err != nil {
			return []models.CanonicalMessage{}
		}
		raw = parsed
	}

	list := messageList(raw)
	out := make([]models.CanonicalMessage, 0, len(list))
	for _, item := range list {
		out = append(out, normalizeOne(item))
	}
	return out
}

// messageList maps the accepted top-level shapes onto one flat list.
func messageList(raw interface{}) []interface{} {
	switch v := raw.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		if msgs, ok := v["messages"].([]interface{}); ok {
			return msgs
		}
		if msg, ok := v["message"]; ok && msg != nil {
			if lst, ok := msg.([]interface{}); ok {
				return lst
			}
			return []interface{}{msg}
		}
		return []interface{}{v}
	}
	return nil
}

func normalizeOne(item interface{}) models.CanonicalMessage {
	msg := models.CanonicalMessage{Type: DefaultMessageType, Images: []interface{}{}}
	m, ok := item.(map[string]interface{})
	if !ok {
		return msg
	}

	if s, ok := firstString(m, typeKeys); ok && s != "" {
		msg.Type = s
	}
	msg.Timestamp = normalizeTimestamp(firstValue(m, timeKeys))
	msg.Text = extractText(m)
	msg.Images = extractImages(m)
	return msg
}

// firstValue returns the first present non-nil value among keys.
func firstValue(m map[string]interface{}, keys []string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first present string value among keys.
func firstString(m map[string]interface{}, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// normalizeTimestamp scales numeric second-resolution instants to
// milliseconds, passes millisecond values and strings through, and maps
// everything else to nil.
func normalizeTimestamp(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case float64:
		if t <= millisecondThreshold {
			return int64(t * 1000)
		}
		return int64(t)
	case int64:
		if t <= int64(millisecondThreshold) {
			return t * 1000
		}
		return t
	case int:
		return normalizeTimestamp(int64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return normalizeTimestamp(f)
		}
	}
	return nil
}

// extractText prefers a direct string field; otherwise it concatenates the
// text of every text/plain segment in order, with no separator.
func extractText(m map[string]interface{}) string {
	if s, ok := firstString(m, textKeys); ok {
		return s
	}
	segs, ok := m["segments"].([]interface{})
	if !ok {
		return ""
	}
	var out string
	for _, s := range segs {
		seg, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		tag, _ := seg["type"].(string)
		if _, ok := textSegmentTags[tag]; !ok {
			continue
		}
		if t, ok := firstString(seg, segmentTextKeys); ok {
			out += t
		}
	}
	return out
}

// extractImages prefers a direct list field; otherwise it collects the
// url/src/path of every image segment in order, dropping falsy entries.
func extractImages(m map[string]interface{}) []interface{} {
	for _, k := range imageKeys {
		if lst, ok := m[k].([]interface{}); ok {
			return lst
		}
	}
	segs, ok := m["segments"].([]interface{})
	if !ok {
		return []interface{}{}
	}
	out := []interface{}{}
	for _, s := range segs {
		seg, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		tag, _ := seg["type"].(string)
		if _, ok := imageSegmentTags[tag]; !ok {
			continue
		}
		if u, ok := firstString(seg, segmentURLKeys); ok && u != "" {
			out = append(out, u)
		}
	}
	return out
}
