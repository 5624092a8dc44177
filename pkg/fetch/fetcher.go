package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"modboard/pkg/logger"
	"modboard/pkg/mediaref"
	"modboard/pkg/telemetry"
)

// DefaultMaxBodyBytes caps fetched asset bodies when no limit is configured.
const DefaultMaxBodyBytes = 32 << 20

// CredentialProvider supplies the media bearer credential. Implementations
// must read fresh state on every call; the fetcher never caches tokens
// across calls.
type CredentialProvider interface {
	Token(ctx context.Context) (string, bool)
}

// StaticProvider returns a fixed token; useful in tests.
type StaticProvider string

func (s StaticProvider) Token(ctx context.Context) (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}

// Result is the outcome of a fetch. Exactly one of the two shapes applies:
// a captured body (Captured true) destined to become a local asset handle,
// or a degraded fallback URL.
type Result struct {
	Captured    bool
	Data        []byte
	ContentType string
	FallbackURL string
}

// Fetcher performs authenticated fetches of protected media references.
type Fetcher struct {
	client  *http.Client
	creds   CredentialProvider
	maxBody int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the HTTP client (tests).
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithMaxBodyBytes caps fetched body size.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

// New builds a Fetcher around the given credential provider and per-fetch
// timeout.
func New(creds CredentialProvider, timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	f := &Fetcher{
		client:  &http.Client{Timeout: timeout},
		creds:   creds,
		maxBody: DefaultMaxBodyBytes,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch issues exactly one GET with an Authorization: Bearer header. On a
// 2xx response it captures the full body; on any failure (non-2xx, network
// error, missing credential, oversized body) it degrades to the
// access_token fallback URL. Fetch never returns an error: every failure
// mode yields a best-effort displayable result.
func (f *Fetcher) Fetch(ctx context.Context, ref string) Result {
	done := telemetry.StartSpan(ctx, "fetch.media")
	defer done()

	token, ok := f.creds.Token(ctx)
	if !ok {
		// unauthenticated path, not an error: the reference goes back as-is
		logger.Debug("media_fetch_no_credential", "ref", ref)
		telemetry.FetchesTotal.WithLabelValues("fallback").Inc()
		return Result{FallbackURL: ref}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		logger.Warn("media_fetch_bad_reference", "ref", ref, "error", err)
		telemetry.FetchesTotal.WithLabelValues("fallback").Inc()
		return Result{FallbackURL: mediaref.WithAccessToken(ref, token)}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Warn("media_fetch_failed", "ref", ref, "error", err)
		telemetry.FetchesTotal.WithLabelValues("fallback").Inc()
		return Result{FallbackURL: mediaref.WithAccessToken(ref, token)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("media_fetch_rejected", "ref", ref, "status", resp.StatusCode)
		telemetry.FetchesTotal.WithLabelValues("fallback").Inc()
		return Result{FallbackURL: mediaref.WithAccessToken(ref, token)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil || int64(len(body)) > f.maxBody {
		logger.Warn("media_fetch_body_failed", "ref", ref, "bytes", len(body), "error", err)
		telemetry.FetchesTotal.WithLabelValues("fallback").Inc()
		return Result{FallbackURL: mediaref.WithAccessToken(ref, token)}
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	logger.Debug("media_fetch_captured", "ref", ref, "bytes", len(body), "content_type", ct)
	telemetry.FetchesTotal.WithLabelValues("handle").Inc()
	return Result{Captured: true, Data: body, ContentType: ct}
}
