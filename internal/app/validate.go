package app

import (
	"fmt"
	"strings"
	"time"

	"modboard/pkg/config"
)

// validateConfig fails fast on configurations that cannot serve requests.
func validateConfig(eff config.EffectiveConfigResult) error {
	if strings.TrimSpace(eff.Addr) == "" {
		return fmt.Errorf("listen address required")
	}
	if strings.TrimSpace(eff.StorePath) == "" {
		return fmt.Errorf("credential store path required")
	}
	cfg := eff.Config
	if cfg == nil {
		return fmt.Errorf("no effective config")
	}
	switch cfg.Server.Frontend {
	case "", "nethttp", "fasthttp":
	default:
		return fmt.Errorf("unknown server frontend %q (want nethttp or fasthttp)", cfg.Server.Frontend)
	}
	if cfg.Media.FetchTimeout != "" {
		if d, err := time.ParseDuration(cfg.Media.FetchTimeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid media fetch_timeout %q", cfg.Media.FetchTimeout)
		}
	}
	if cfg.Media.MaxBodyBytes < 0 {
		return fmt.Errorf("media max_body_bytes must not be negative")
	}
	if cfg.Media.AssetBasePath != "" && !strings.HasPrefix(cfg.Media.AssetBasePath, "/") {
		return fmt.Errorf("media asset_base_path must start with /")
	}
	if cfg.Sweep.Enabled && cfg.Sweep.IdleTTL != "" {
		if d, err := time.ParseDuration(cfg.Sweep.IdleTTL); err != nil || d <= 0 {
			return fmt.Errorf("invalid sweep idle_ttl %q", cfg.Sweep.IdleTTL)
		}
	}
	if (cfg.Server.TLS.CertFile == "") != (cfg.Server.TLS.KeyFile == "") {
		return fmt.Errorf("tls requires both cert_file and key_file")
	}
	return nil
}
