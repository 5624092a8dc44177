package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Flags holds parsed command-line flag values and which were set.
type Flags struct {
	Addr   string
	Store  string
	Config string
	Set    map[string]bool
}

// EnvResult describes which API keys were sourced from the environment and
// whether any env override was seen at all.
type EnvResult struct {
	BackendKeys  map[string]struct{}
	FrontendKeys map[string]struct{}
	AdminKeys    map[string]struct{}
	EnvUsed      bool
}

// EffectiveConfigResult holds the merged configuration along with the
// resolved listen address, store path and the source it came from.
type EffectiveConfigResult struct {
	Config    *Config
	Addr      string
	StorePath string
	Source    string // "flags", "config", or "env"
}

// ParseConfigFlags parses command-line flags and returns them as a Flags struct.
func ParseConfigFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	storePtr := flag.String("store", "./.credstore", "Pebble credential store path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return Flags{Addr: *addrPtr, Store: *storePtr, Config: *cfgPtr, Set: setFlags}
}

// ParseConfigFile resolves the config path and loads the YAML file. It
// returns the parsed config, a boolean indicating whether the file was
// present, and an error for fatal parsing problems.
func ParseConfigFile(flags Flags) (*Config, bool, error) {
	cfgPath := ResolveConfigPath(flags.Config, flags.Set["config"])
	cfg, err := Load(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, false, nil
		}
		return nil, false, err
	}
	return cfg, true, nil
}

// ParseConfigEnvs reads environment variables into a fresh Config and
// returns that env-only config plus an EnvResult describing keys present
// and whether envs were used.
func ParseConfigEnvs() (*Config, EnvResult) {
	envCfg := &Config{}
	envUsed := false
	parseList := func(v string) []string {
		if v == "" {
			return nil
		}
		parts := []string{}
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				parts = append(parts, s)
			}
		}
		return parts
	}

	if v := os.Getenv("MODBOARD_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			envCfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				envCfg.Server.Port = pi
			}
		} else {
			envCfg.Server.Address = v
		}
	} else {
		if host := os.Getenv("MODBOARD_SERVER_ADDRESS"); host != "" {
			envUsed = true
			envCfg.Server.Address = host
		}
		if port := os.Getenv("MODBOARD_SERVER_PORT"); port != "" {
			envUsed = true
			if pi, err := strconv.Atoi(port); err == nil {
				envCfg.Server.Port = pi
			}
		}
	}

	if v := os.Getenv("MODBOARD_STORE_PATH"); v != "" {
		envUsed = true
		envCfg.Server.StorePath = v
	}
	if v := os.Getenv("MODBOARD_SERVER_FRONTEND"); v != "" {
		envUsed = true
		envCfg.Server.Frontend = v
	}
	if v := os.Getenv("MODBOARD_PROTECTED_MARKERS"); v != "" {
		envUsed = true
		envCfg.Media.ProtectedMarkers = parseList(v)
	}
	if v := os.Getenv("MODBOARD_FETCH_TIMEOUT"); v != "" {
		envUsed = true
		envCfg.Media.FetchTimeout = v
	}
	if v := os.Getenv("MODBOARD_LOG_LEVEL"); v != "" {
		envUsed = true
		envCfg.Logging.Level = v
	}

	backendKeys := map[string]struct{}{}
	frontendKeys := map[string]struct{}{}
	adminKeys := map[string]struct{}{}
	for _, k := range parseList(os.Getenv("MODBOARD_BACKEND_KEYS")) {
		envUsed = true
		backendKeys[k] = struct{}{}
		envCfg.Security.APIKeys.Backend = append(envCfg.Security.APIKeys.Backend, k)
	}
	for _, k := range parseList(os.Getenv("MODBOARD_FRONTEND_KEYS")) {
		envUsed = true
		frontendKeys[k] = struct{}{}
		envCfg.Security.APIKeys.Frontend = append(envCfg.Security.APIKeys.Frontend, k)
	}
	for _, k := range parseList(os.Getenv("MODBOARD_ADMIN_KEYS")) {
		envUsed = true
		adminKeys[k] = struct{}{}
		envCfg.Security.APIKeys.Admin = append(envCfg.Security.APIKeys.Admin, k)
	}

	return envCfg, EnvResult{BackendKeys: backendKeys, FrontendKeys: frontendKeys, AdminKeys: adminKeys, EnvUsed: envUsed}
}

// LoadEffectiveConfig decides which single source to use (flags, config
// file, or env) and returns the effective config plus resolved addr and
// store path. An explicit --config requires the file to exist; explicit
// addr/store flags win over file and env values.
func LoadEffectiveConfig(flags Flags, fileCfg *Config, fileExists bool, envCfg *Config, envRes EnvResult) (EffectiveConfigResult, error) {
	var res EffectiveConfigResult

	if flags.Set["config"] {
		if !fileExists {
			return res, fmt.Errorf("config file %s not found", flags.Config)
		}
		res.Config = fileCfg
		res.Addr = fileCfg.Addr()
		res.StorePath = fileCfg.Server.StorePath
		res.Source = "config"
		return res, nil
	}

	if flags.Set["addr"] || flags.Set["store"] {
		addr := flags.Addr
		if !flags.Set["addr"] {
			addr = envCfg.Addr()
			if addr == "" {
				addr = fileCfg.Addr()
			}
		}
		storePath := flags.Store
		if !flags.Set["store"] {
			if p := strings.TrimSpace(envCfg.Server.StorePath); p != "" {
				storePath = p
			} else if p := strings.TrimSpace(fileCfg.Server.StorePath); p != "" {
				storePath = p
			}
		}
		out := &Config{}
		out.Server.Address = addr
		out.Server.Port = parsePortFromAddr(addr)
		out.Server.StorePath = storePath
		out.Media = envCfg.Media
		if fileExists && len(out.Media.ProtectedMarkers) == 0 {
			out.Media = fileCfg.Media
		}
		res.Config = out
		res.Addr = addr
		res.StorePath = storePath
		res.Source = "flags"
		return res, nil
	}

	if fileExists {
		res.Config = fileCfg
		res.Addr = fileCfg.Addr()
		res.StorePath = fileCfg.Server.StorePath
		res.Source = "config"
		return res, nil
	}
	res.Config = envCfg
	res.Addr = envCfg.Addr()
	res.StorePath = envCfg.Server.StorePath
	res.Source = "env"
	return res, nil
}

// parsePortFromAddr extracts port integer from host:port string.
func parsePortFromAddr(a string) int {
	if a == "" {
		return 0
	}
	if _, p, err := net.SplitHostPort(a); err == nil {
		if pi, err := strconv.Atoi(p); err == nil {
			return pi
		}
	}
	return 0
}
