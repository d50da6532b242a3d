// Package config handles configuration for the server component:
// defaults overlaid with environment variables.
package config

import (
	"os"
	"time"
)

const (
	EnvAddr      = "ITEMVAULT_ADDR"
	EnvJWTSecret = "ITEMVAULT_JWT_SECRET"
	EnvRedisAddr = "ITEMVAULT_REDIS_ADDR"
	EnvTokenTTL  = "ITEMVAULT_TOKEN_TTL"
)

// Config holds runtime settings for the itemvault server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - JWTSecret: HMAC secret for signing bearer tokens (HS256). Do not use
//     the default in prod.
//   - RedisAddr: when set, items and users live in Redis instead of memory.
//   - TokenTTL: bearer token lifetime.
type Config struct {
	Addr      string
	JWTSecret string
	RedisAddr string
	TokenTTL  time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.JWTSecret = "secretKey"
	c.RedisAddr = ""
	c.TokenTTL = 24 * time.Hour
}

func (c *Config) loadEnv() {
	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv(EnvJWTSecret); ok {
		c.JWTSecret = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		c.RedisAddr = v
	}
	if v, ok := os.LookupEnv(EnvTokenTTL); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		}
	}
}

// Load builds a Config by applying defaults and overlaying values from the
// environment. Command-line flags are bound by the caller on top of the
// returned value.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()
	return cfg
}
