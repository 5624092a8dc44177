package assets

import (
	"modboard/pkg/telemetry"
)

// Handle is an in-process, scope-bound reference to fetched binary content,
// safe to hand to the dashboard as a display source without re-transmitting
// credentials. A handle is owned by exactly one scope and released exactly
// once, at or before its scope's teardown.
type Handle struct {
	ID          string
	ContentType string

	data     []byte
	released bool
}

// Bytes returns the captured content, or nil after release.
func (h *Handle) Bytes() []byte {
	return h.data
}

// release drops the content. Callers must hold the registry lock; the
// released guard makes a second release a no-op.
func (h *Handle) release() {
	if h.released {
		return
	}
	h.released = true
	h.data = nil
	telemetry.HandlesLive.Dec()
	telemetry.HandlesReleasedTotal.Inc()
}
