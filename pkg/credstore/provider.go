package credstore

import "context"

// Provider reads the media bearer credential from the store. The fetcher
// takes a Provider at construction so tests can substitute fixed, missing
// or expired tokens without touching global state.
type Provider struct{}

// Token reads the credential fresh on every call; it is never cached
// across calls. The second return is false when no credential is stored.
func (Provider) Token(ctx context.Context) (string, bool) {
	v, ok, err := Get(MediaTokenKey)
	if err != nil || !ok || v == "" {
		return "", false
	}
	return v, true
}
