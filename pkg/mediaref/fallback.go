package mediaref

import (
	"net/url"
	"strings"
)

// WithAccessToken builds the degraded credential-in-query-string form of a
// protected reference: <url>[?|&]access_token=<escaped token>. An empty
// token returns the reference unchanged. Pure and total.
func WithAccessToken(ref string, token string) string {
	if token == "" {
		return ref
	}
	sep := "?"
	if strings.Contains(ref, "?") {
		sep = "&"
	}
	// QueryEscape uses "+" for spaces; upstream expects percent encoding.
	escaped := strings.ReplaceAll(url.QueryEscape(token), "+", "%20")
	return ref + sep + "access_token=" + escaped
}
