package mediaref

import "strings"

// Policy describes how a media reference may be accessed.
type Policy int

const (
	// Public references load directly without credentials.
	Public Policy = iota
	// DataURI references carry their content inline.
	DataURI
	// Protected references require bearer-token authorization.
	Protected
)

func (p Policy) String() string {
	switch p {
	case DataURI:
		return "data_uri"
	case Protected:
		return "protected"
	default:
		return "public"
	}
}

// DefaultMarkers are the protected-path substrings assumed when no markers
// are configured.
var DefaultMarkers = []string{"/data/"}

// urlKeys and pathKeys are tried in order when a reference is a structured
// object rather than a plain string.
var urlKeys = []string{"url", "src", "href"}
var pathKeys = []string{"path", "file", "file_path"}

// RefString extracts the URL-or-path string from a reference, which may be
// a plain string or a map carrying url-like and/or path-like fields.
// Unknown shapes yield "".
func RefString(ref interface{}) string {
	switch v := ref.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, k := range urlKeys {
			if s, ok := v[k].(string); ok && s != "" {
				return s
			}
		}
		for _, k := range pathKeys {
			if s, ok := v[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Classify derives the access policy for a reference. Rules in order:
// empty references are Public, data: URIs are DataURI, references whose
// URL or path contains a protected marker are Protected, everything else
// is Public. Pure and total.
func Classify(ref interface{}, markers []string) Policy {
	s := RefString(ref)
	if s == "" {
		return Public
	}
	if strings.HasPrefix(s, "data:") {
		return DataURI
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return Protected
		}
	}
	return Public
}
