// Package config holds runtime settings for the itemvault client.
package config

import "os"

// Environment variables recognized by Load. Flags parsed by the binary take
// precedence over these.
const (
	EnvServerURL = "ITEMVAULT_SERVER"
	EnvDataDir   = "ITEMVAULT_DATA_DIR"
)

// Config holds runtime settings for the client binary.
//
// Fields:
//   - ServerURL: base URL of the backend API.
//   - DataDir: directory for credentials and logs; empty means ~/.itemvault.
//   - Token: one-time token handed over out of band (OAuth redirect
//     completion). When non-empty it is persisted to the session store
//     before the current-user check runs, then forgotten.
//   - LogFile: where client logs go while the TUI owns the terminal.
type Config struct {
	ServerURL string
	DataDir   string
	Token     string
	LogFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
}

// applyEnv overlays values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
}

// Load constructs a Config from defaults overlaid with environment values.
// Command-line flags are bound by the caller and applied on top.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	return cfg
}
