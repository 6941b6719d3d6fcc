package config

import "time"

// Config holds runtime settings for the admin client and the membership form.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	SessionDB      string
	LogLevel       string

	// Headers are sent with every request.
	Headers map[string]string
	// Resources overrides collection paths by resource name.
	Resources map[string]string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.SessionDB = "session.db"
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
