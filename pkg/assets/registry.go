package assets

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"modboard/pkg/fetch"
	"modboard/pkg/logger"
	"modboard/pkg/mediaref"
	"modboard/pkg/telemetry"
)

// DefaultAssetBasePath is the URL prefix handles are served under when no
// other prefix is configured.
const DefaultAssetBasePath = "/v1/assets"

// scope is one UI consumer instance (a single-image viewer or a gallery).
// It owns the ordered set of handles issued on its behalf and the reference
// set used by Refresh.
type scope struct {
	id       string
	refs     []interface{}
	handles  map[string]*Handle
	order    []string
	disposed bool
	lastUsed time.Time
}

// Registry tracks live asset handles per scope and guarantees their
// deterministic release. The per-scope handle set is the only mutable state
// in the subsystem.
type Registry struct {
	mu       sync.Mutex
	scopes   map[string]*scope
	fetcher  *fetch.Fetcher
	markers  []string
	basePath string
}

// NewRegistry builds a Registry resolving protected references through the
// given fetcher. markers configure protected-path classification; basePath
// is the serving prefix for issued handles.
func NewRegistry(f *fetch.Fetcher, markers []string, basePath string) *Registry {
	if basePath == "" {
		basePath = DefaultAssetBasePath
	}
	return &Registry{
		scopes:   make(map[string]*scope),
		fetcher:  f,
		markers:  markers,
		basePath: basePath,
	}
}

// CreateScope opens a new scope and returns its id.
func (r *Registry) CreateScope() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.scopes[id] = &scope{
		id:       id,
		handles:  make(map[string]*Handle),
		lastUsed: time.Now(),
	}
	r.mu.Unlock()
	telemetry.ScopesLive.Inc()
	logger.Debug("scope_created", "scope", id)
	return id
}

// getScope returns the live scope, creating it when the id is unknown.
// A disposed scope id is treated as unknown: resolving against it begins a
// fresh lifecycle.
func (r *Registry) getScope(id string) *scope {
	if sc, ok := r.scopes[id]; ok && !sc.disposed {
		return sc
	}
	sc := &scope{
		id:       id,
		handles:  make(map[string]*Handle),
		lastUsed: time.Now(),
	}
	r.scopes[id] = sc
	telemetry.ScopesLive.Inc()
	return sc
}

// Resolve classifies one reference and returns its displayable URL.
// Public and data-URI references pass through unchanged and are never
// tracked. Protected references go through the authenticated fetcher; a
// captured body becomes a tracked handle served under the asset base path,
// any failure degrades to the fallback URL. Resolve never returns an error.
func (r *Registry) Resolve(ctx context.Context, scopeID string, ref interface{}) string {
	r.mu.Lock()
	sc := r.getScope(scopeID)
	sc.refs = append(sc.refs, ref)
	sc.lastUsed = time.Now()
	r.mu.Unlock()
	return r.resolveOne(ctx, sc, ref)
}

// ResolveMany resolves all references concurrently. The returned slice has
// the same length as the input and preserves index correspondence
// regardless of completion order or per-element failure. The passed
// references replace the scope's current reference set for Refresh.
func (r *Registry) ResolveMany(ctx context.Context, scopeID string, refs []interface{}) []string {
	r.mu.Lock()
	sc := r.getScope(scopeID)
	sc.refs = append([]interface{}(nil), refs...)
	sc.lastUsed = time.Now()
	r.mu.Unlock()
	return r.resolveSet(ctx, sc, refs)
}

// Refresh re-runs resolution over the scope's current reference set.
// Previously tracked handles are not revoked; they stay live until the
// scope is disposed.
func (r *Registry) Refresh(ctx context.Context, scopeID string) []string {
	r.mu.Lock()
	sc := r.getScope(scopeID)
	refs := append([]interface{}(nil), sc.refs...)
	sc.lastUsed = time.Now()
	r.mu.Unlock()
	return r.resolveSet(ctx, sc, refs)
}

func (r *Registry) resolveSet(ctx context.Context, sc *scope, refs []interface{}) []string {
	out := make([]string, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref interface{}) {
			defer wg.Done()
			out[i] = r.resolveOne(ctx, sc, ref)
		}(i, ref)
	}
	wg.Wait()
	return out
}

func (r *Registry) resolveOne(ctx context.Context, sc *scope, ref interface{}) string {
	switch mediaref.Classify(ref, r.markers) {
	case mediaref.Public, mediaref.DataURI:
		return mediaref.RefString(ref)
	}

	res := r.fetcher.Fetch(ctx, mediaref.RefString(ref))
	if !res.Captured {
		return res.FallbackURL
	}

	h := &Handle{
		ID:          uuid.NewString(),
		ContentType: res.ContentType,
		data:        res.Data,
	}
	telemetry.HandlesLive.Inc()

	r.mu.Lock()
	if sc.disposed {
		// the scope was torn down while the fetch was in flight; release
		// immediately so the late arrival is never leaked
		h.release()
		r.mu.Unlock()
		logger.Debug("handle_released_late", "scope", sc.id, "handle", h.ID)
		return r.basePath + "/" + sc.id + "/" + h.ID
	}
	sc.handles[h.ID] = h
	sc.order = append(sc.order, h.ID)
	sc.lastUsed = time.Now()
	r.mu.Unlock()

	logger.Debug("handle_issued", "scope", sc.id, "handle", h.ID, "bytes", len(res.Data))
	return r.basePath + "/" + sc.id + "/" + h.ID
}

// Open returns the content and content type of a live handle for serving.
func (r *Registry) Open(scopeID, handleID string) ([]byte, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.scopes[scopeID]
	if !ok || sc.disposed {
		return nil, "", false
	}
	h, ok := sc.handles[handleID]
	if !ok || h.released {
		return nil, "", false
	}
	sc.lastUsed = time.Now()
	return h.data, h.ContentType, true
}

// Dispose releases every handle tracked for the scope exactly once and
// clears the set. It is idempotent: a second call finds no scope and is a
// no-op.
func (r *Registry) Dispose(scopeID string) {
	r.mu.Lock()
	sc, ok := r.scopes[scopeID]
	if !ok {
		r.mu.Unlock()
		return
	}
	released := 0
	for _, id := range sc.order {
		if h, ok := sc.handles[id]; ok && !h.released {
			h.release()
			released++
		}
	}
	sc.handles = make(map[string]*Handle)
	sc.order = nil
	sc.refs = nil
	sc.disposed = true
	delete(r.scopes, scopeID)
	r.mu.Unlock()

	telemetry.ScopesLive.Dec()
	logger.Debug("scope_disposed", "scope", scopeID, "released", released)
}

// ScopeStats describes one live scope for the admin surface and sweeper.
type ScopeStats struct {
	ID       string    `json:"id"`
	Handles  int       `json:"handles"`
	LastUsed time.Time `json:"last_used"`
}

// Stats returns a snapshot of all live scopes.
func (r *Registry) Stats() []ScopeStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ScopeStats, 0, len(r.scopes))
	for _, sc := range r.scopes {
		out = append(out, ScopeStats{ID: sc.id, Handles: len(sc.handles), LastUsed: sc.lastUsed})
	}
	return out
}

// DisposeIdle disposes scopes that have been idle for longer than ttl and
// returns how many were torn down.
func (r *Registry) DisposeIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	r.mu.Lock()
	var stale []string
	for id, sc := range r.scopes {
		if sc.lastUsed.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.Unlock()
	for _, id := range stale {
		r.Dispose(id)
	}
	return len(stale)
}
