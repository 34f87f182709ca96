// Package config loads the backend's own settings from the environment with
// sane defaults. The daemon's YAML file is deliberately not modelled here —
// it is opaque text owned by internal/configfile.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults for the MCD_* environment variables.
const (
	DefaultListen         = ":8080"
	DefaultConfigPath     = "/etc/mihomo/config.yaml"
	DefaultControllerURL  = "http://127.0.0.1:9090"
	DefaultClientTimeout  = 10 * time.Second
	DefaultWriteRateLimit = 30 // writes per minute per IP
)

// AppConfig is the backend's runtime configuration.
type AppConfig struct {
	Listen           string        // HTTP listen address
	ConfigPath       string        // path of the daemon's YAML config file
	ControllerURL    string        // daemon external-controller base URL
	ControllerSecret string        // bearer secret for the controller, may be empty
	ClientTimeout    time.Duration // timeout for daemon API calls and remote fetches
	WriteRateLimit   int           // config writes per minute per client IP
	LogLevel         string
}

// Load reads the configuration from the environment.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Listen:           ParseString("MCD_LISTEN", DefaultListen),
		ConfigPath:       ParseString("MCD_CONFIG_PATH", DefaultConfigPath),
		ControllerURL:    ParseString("MCD_CONTROLLER_URL", DefaultControllerURL),
		ControllerSecret: ParseString("MCD_CONTROLLER_SECRET", ""),
		ClientTimeout:    ParseDuration("MCD_CLIENT_TIMEOUT", DefaultClientTimeout),
		WriteRateLimit:   ParseInt("MCD_WRITE_RATE_LIMIT", DefaultWriteRateLimit),
		LogLevel:         ParseString("MCD_LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c AppConfig) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.ConfigPath == "" {
		return fmt.Errorf("config path must not be empty")
	}
	u, err := url.Parse(c.ControllerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("controller URL %q is not a valid absolute URL", c.ControllerURL)
	}
	if c.WriteRateLimit <= 0 {
		return fmt.Errorf("write rate limit must be positive, got %d", c.WriteRateLimit)
	}
	return nil
}
