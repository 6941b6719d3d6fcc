package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nehruadmin/internal/flagx"
	"github.com/dmitrijs2005/nehruadmin/internal/timex"
)

// JsonConfig is the JSON form of Config. Durations accept "15m" or integer
// nanoseconds.
type JsonConfig struct {
	Addr                 string          `json:"addr"`
	PublicURL            string          `json:"public_url"`
	SecretKey            string          `json:"secret_key"`
	AccessTokenValidity  *timex.Duration `json:"access_token_validity"`
	RefreshTokenValidity *timex.Duration `json:"refresh_token_validity"`
	AdminEmail           string          `json:"admin_email"`
	AdminPassword        string          `json:"admin_password"`
	ShutdownTimeout      *timex.Duration `json:"shutdown_timeout"`
	LogLevel             string          `json:"log_level"`
	CertificateFont      string          `json:"certificate_font"`
}

// parseJson loads the file named by -c or -config into config; absent keys
// keep their current values. It panics on unreadable or invalid files.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Addr, c.Addr)
	setString(&config.PublicURL, c.PublicURL)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.CertificateFont, c.CertificateFont)
	if c.AccessTokenValidity != nil {
		config.AccessTokenValidity = c.AccessTokenValidity.Duration
	}
	if c.RefreshTokenValidity != nil {
		config.RefreshTokenValidity = c.RefreshTokenValidity.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
