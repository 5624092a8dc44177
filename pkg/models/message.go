package models

// CanonicalMessage is the normalized, adapter-independent representation of
// one raw captured submission message.
type CanonicalMessage struct {
	Type string `json:"type"`
	// Timestamp is nil when absent, an int64 in milliseconds for numeric
	// inputs, or the original string for string inputs.
	Timestamp interface{} `json:"timestamp,omitempty"`
	Text      string      `json:"text"`
	// Images holds resource references in raw-message order. Each entry is a
	// string URL or a structured object carrying url/path fields.
	Images []interface{} `json:"images"`
}
