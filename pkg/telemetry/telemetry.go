package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Low-overhead service metrics exposed via /metrics.

var (
	// FetchesTotal counts protected-media fetch attempts by outcome:
	// "handle" (2xx body captured) or "fallback" (degraded URL returned).
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_media_fetches_total",
		Help: "Protected media fetch attempts by outcome.",
	}, []string{"outcome"})

	// HandlesLive tracks currently tracked local asset handles across all scopes.
	HandlesLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modboard_asset_handles_live",
		Help: "Local asset handles currently live.",
	})

	// HandlesReleasedTotal counts handle releases.
	HandlesReleasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modboard_asset_handles_released_total",
		Help: "Local asset handles released.",
	})

	// ScopesLive tracks currently open scopes.
	ScopesLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modboard_scopes_live",
		Help: "Scopes currently open.",
	})

	// NormalizeTotal counts normalization calls by kind ("messages", "analysis").
	NormalizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_normalize_total",
		Help: "Normalization calls by kind.",
	}, []string{"kind"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modboard_op_duration_seconds",
		Help:    "Duration of internal operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

// StartSpan records the duration of an internal operation; call the
// returned func when the operation completes.
func StartSpan(_ context.Context, op string) func() {
	start := time.Now()
	return func() {
		opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
