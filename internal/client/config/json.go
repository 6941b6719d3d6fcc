package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nehruadmin/internal/flagx"
	"github.com/dmitrijs2005/nehruadmin/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent keys keep the values
// already in Config.
type JsonConfig struct {
	ServerBaseURL  string            `json:"server_base_url"`
	RequestTimeout *timex.Duration   `json:"request_timeout"`
	SessionDB      string            `json:"session_db"`
	LogLevel       string            `json:"log_level"`
	Headers        map[string]string `json:"headers"`
	Resources      map[string]string `json:"resources"`
}

// parseJson overlays cfg with the file given by -c or -config. It panics on
// read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.Headers != nil {
		cfg.Headers = jc.Headers
	}
	if jc.Resources != nil {
		cfg.Resources = jc.Resources
	}
}
