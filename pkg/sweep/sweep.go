package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"modboard/pkg/assets"
	"modboard/pkg/config"
	"modboard/pkg/logger"
)

// The sweeper is a janitor for forgotten scopes: dashboard tabs that were
// closed without a dispose call would otherwise hold their asset handles
// for the life of the process. It disposes scopes idle past the configured
// TTL on a cron schedule.

// Start starts the sweep scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg *config.Config, reg *assets.Registry) (context.CancelFunc, error) {
	if !cfg.Sweep.Enabled {
		logger.Info("sweep_disabled")
		return func() {}, nil
	}

	cronExpr := cfg.Sweep.Cron
	if cronExpr == "" {
		cronExpr = "*/5 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("sweep_invalid_cron", "cron", cfg.Sweep.Cron)
		return nil, fmt.Errorf("invalid sweep cron expression: %s", cfg.Sweep.Cron)
	}
	ttl := cfg.IdleTTLDuration()

	logger.Info("sweep_enabled", "cron", cronExpr, "idle_ttl", ttl.String())
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, reg, cronExpr, ttl)
	return cancel, nil
}

// RunOnce performs a single sweep pass and returns how many scopes were
// disposed. Exposed for tests and admin triggers.
func RunOnce(reg *assets.Registry, ttl time.Duration) int {
	n := reg.DisposeIdle(ttl)
	if n > 0 {
		logger.Info("sweep_disposed_idle_scopes", "count", n)
	}
	return n
}

// runScheduler computes the next cron tick with gronx and sleeps until it
// fires or the context is canceled.
func runScheduler(ctx context.Context, reg *assets.Registry, cronExpr string, ttl time.Duration) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("sweep_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("sweep_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
			RunOnce(reg, ttl)
		case <-ctx.Done():
			logger.Info("sweep_scheduler_stopping")
			return
		}
	}
}
