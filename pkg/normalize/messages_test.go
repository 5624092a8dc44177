package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modboard/pkg/models"
)

func TestMessagesMalformedStringReturnsEmpty(t *testing.T) {
	out := Messages("not json")
	require.NotNil(t, out)
	require.Len(t, out, 0)
}

func TestMessagesShapeRoundTrip(t *testing.T) {
	msg := map[string]interface{}{"type": "text", "text": "hello", "time": float64(1700000000)}
	want := []models.CanonicalMessage{{
		Type:      "text",
		Timestamp: int64(1700000000000),
		Text:      "hello",
		Images:    []interface{}{},
	}}

	bare := Messages([]interface{}{msg})
	wrapped := Messages(map[string]interface{}{"messages": []interface{}{msg}})
	singular := Messages(map[string]interface{}{"message": msg})

	assert.Equal(t, want, bare)
	assert.Equal(t, want, wrapped)
	assert.Equal(t, want, singular)
}

func TestMessagesSingularMessageList(t *testing.T) {
	out := Messages(map[string]interface{}{"message": []interface{}{
		map[string]interface{}{"text": "a"},
		map[string]interface{}{"text": "b"},
	}})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Text)
	assert.Equal(t, "b", out[1].Text)
}

func TestMessagesUnknownObjectBecomesOneElementList(t *testing.T) {
	out := Messages(map[string]interface{}{"content": "lone"})
	require.Len(t, out, 1)
	assert.Equal(t, "lone", out[0].Text)
	assert.Equal(t, DefaultMessageType, out[0].Type)
}

func TestMessagesTimestampNormalization(t *testing.T) {
	secs := Messages([]interface{}{map[string]interface{}{"time": float64(1700000000)}})
	millis := Messages([]interface{}{map[string]interface{}{"time": float64(1700000000000)}})
	require.Len(t, secs, 1)
	require.Len(t, millis, 1)
	assert.Equal(t, int64(1700000000000), secs[0].Timestamp)
	assert.Equal(t, int64(1700000000000), millis[0].Timestamp)
}

func TestMessagesTimestampStringPassesThrough(t *testing.T) {
	out := Messages([]interface{}{map[string]interface{}{"date": "2023-11-14T22:13:20Z"}})
	require.Len(t, out, 1)
	assert.Equal(t, "2023-11-14T22:13:20Z", out[0].Timestamp)
}

func TestMessagesTimestampAbsent(t *testing.T) {
	out := Messages([]interface{}{map[string]interface{}{"text": "x"}})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Timestamp)
}

func TestMessagesFieldPriorityOrder(t *testing.T) {
	out := Messages([]interface{}{map[string]interface{}{
		"type":      "text",
		"post_type": "ignored",
		"time":      float64(1),
		"timestamp": float64(2),
		"text":      "primary",
		"content":   "ignored",
	}})
	require.Len(t, out, 1)
	assert.Equal(t, "text", out[0].Type)
	assert.Equal(t, int64(1000), out[0].Timestamp)
	assert.Equal(t, "primary", out[0].Text)
}

func TestMessagesSegmentsScenario(t *testing.T) {
	raw := map[string]interface{}{"message": map[string]interface{}{
		"type": "text",
		"time": float64(1700000000),
		"segments": []interface{}{
			map[string]interface{}{"type": "text", "text": "hello"},
			map[string]interface{}{"type": "image", "url": "http://x/y.png"},
		},
	}}
	out := Messages(raw)
	require.Len(t, out, 1)
	assert.Equal(t, "text", out[0].Type)
	assert.Equal(t, int64(1700000000000), out[0].Timestamp)
	assert.Equal(t, "hello", out[0].Text)
	assert.Equal(t, []interface{}{"http://x/y.png"}, out[0].Images)
}

func TestMessagesSegmentsConcatenateInOrder(t *testing.T) {
	out := Messages([]interface{}{map[string]interface{}{
		"segments": []interface{}{
			map[string]interface{}{"type": "text", "text": "a"},
			map[string]interface{}{"type": "image", "src": "http://x/1.png"},
			map[string]interface{}{"type": "plain", "content": "b"},
			map[string]interface{}{"type": "video", "url": "http://x/v.mp4"},
			map[string]interface{}{"type": "img", "path": "/data/2.png"},
			map[string]interface{}{"type": "image", "url": ""},
		},
	}})
	require.Len(t, out, 1)
	assert.Equal(t, "ab", out[0].Text)
	assert.Equal(t, []interface{}{"http://x/1.png", "/data/2.png"}, out[0].Images)
}

func TestMessagesImageListFieldWins(t *testing.T) {
	out := Messages([]interface{}{map[string]interface{}{
		"image_urls": []interface{}{"http://x/a.png"},
		"segments": []interface{}{
			map[string]interface{}{"type": "image", "url": "http://x/b.png"},
		},
	}})
	require.Len(t, out, 1)
	assert.Equal(t, []interface{}{"http://x/a.png"}, out[0].Images)
}

func TestMessagesStringPayloadParsedFirst(t *testing.T) {
	out := Messages(`{"messages":[{"type":"text","text":"hi","ts":1700000000}]}`)
	require.Len(t, out, 1)
	assert.Equal(t, "hi", out[0].Text)
	assert.Equal(t, int64(1700000000000), out[0].Timestamp)
}

func TestMessagesMalformedEntriesDegrade(t *testing.T) {
	out := Messages([]interface{}{"just a string", float64(42), nil})
	require.Len(t, out, 3)
	for _, m := range out {
		assert.Equal(t, DefaultMessageType, m.Type)
		assert.Equal(t, "", m.Text)
		assert.Nil(t, m.Timestamp)
		assert.Equal(t, []interface{}{}, m.Images)
	}
}

func TestMessagesScalarPayloadReturnsEmpty(t *testing.T) {
	assert.Len(t, Messages(float64(7)), 0)
	assert.Len(t, Messages(nil), 0)
}

func TestMessagesOrderMatchesRawOrder(t *testing.T) {
	raw := []interface{}{}
	for _, s := range []string{"one", "two", "three", "four"} {
		raw = append(raw, map[string]interface{}{"text": s})
	}
	out := Messages(raw)
	require.Len(t, out, 4)
	assert.Equal(t, "one", out[0].Text)
	assert.Equal(t, "two", out[1].Text)
	assert.Equal(t, "three", out[2].Text)
	assert.Equal(t, "four", out[3].Text)
}
