// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - PublicURL: scheme and host used to build absolute media URLs.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - AccessTokenValidity / RefreshTokenValidity: token lifetimes.
//   - AdminEmail / AdminPassword: the single admin account.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - CertificateFont: TrueType font for membership certificates; empty uses
//     the built-in Go font, which has no Devanagari glyphs.
type Config struct {
	Addr                 string
	PublicURL            string
	SecretKey            string
	AccessTokenValidity  time.Duration
	RefreshTokenValidity time.Duration
	AdminEmail           string
	AdminPassword        string
	ShutdownTimeout      time.Duration
	LogLevel             string
	CertificateFont      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and admin password must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.PublicURL = "http://127.0.0.1:8000"
	c.SecretKey = "secretKey"
	c.AccessTokenValidity = 15 * time.Minute
	c.RefreshTokenValidity = 24 * time.Hour
	c.AdminEmail = "admin@example.org"
	c.AdminPassword = "admin"
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
