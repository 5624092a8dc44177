package config

import (
	"fmt"
	"time"
)

// Config is the main configuration struct.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Media    MediaConfig    `yaml:"media"`
	Security SecurityConfig `yaml:"security"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds listen address, storage and TLS settings.
type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
	// Frontend selects the HTTP transport: "nethttp" (default) or "fasthttp".
	Frontend string `yaml:"frontend"`
	// StorePath is the pebble directory holding the credential store.
	StorePath string    `yaml:"store_path"`
	TLS       TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate configuration.
type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// MediaConfig controls classification and fetching of protected media.
type MediaConfig struct {
	// ProtectedMarkers are path substrings that mark a reference as
	// requiring bearer-token authorization. Default: ["/data/"].
	ProtectedMarkers []string `yaml:"protected_markers"`
	// FetchTimeout bounds a single upstream GET, e.g. "10s".
	FetchTimeout string `yaml:"fetch_timeout"`
	// MaxBodyBytes caps the size of a fetched asset body (0 = default).
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// AssetBasePath is the URL prefix under which local asset handles are
	// served back to the dashboard. Default: "/v1/assets".
	AssetBasePath string `yaml:"asset_base_path"`
}

// SecurityConfig holds security related settings.
type SecurityConfig struct {
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	IPWhitelist []string `yaml:"ip_whitelist"`
	APIKeys     struct {
		Backend  []string `yaml:"backend"`
		Frontend []string `yaml:"frontend"`
		Admin    []string `yaml:"admin"`
	} `yaml:"api_keys"`
}

// SweepConfig holds configuration for the idle-scope janitor.
type SweepConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
	IdleTTL string `yaml:"idle_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	if c == nil {
		return ""
	}
	if c.Server.Address == "" && c.Server.Port == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// FetchTimeoutDuration parses the media fetch timeout, defaulting to 10s.
func (c *Config) FetchTimeoutDuration() time.Duration {
	if c == nil || c.Media.FetchTimeout == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(c.Media.FetchTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// IdleTTLDuration parses the sweep idle TTL, defaulting to 30m.
func (c *Config) IdleTTLDuration() time.Duration {
	if c == nil || c.Sweep.IdleTTL == "" {
		return 30 * time.Minute
	}
	d, err := time.ParseDuration(c.Sweep.IdleTTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}
