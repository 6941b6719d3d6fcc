package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	dir := t.TempDir()

	t.Run("overlays present keys", func(t *testing.T) {
		path := writeTempJSON(t, dir, map[string]any{
			"server_base_url": "https://example.org/api",
			"request_timeout": "20s",
			"headers":         map[string]string{"X-Client": "admin"},
			"resources":       map[string]string{"banners": "/v2/banners/"},
		})
		os.Args = []string{"admin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://example.org/api", cfg.ServerBaseURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "session.db", cfg.SessionDB, "absent keys keep defaults")
		assert.Equal(t, map[string]string{"X-Client": "admin"}, cfg.Headers)
		assert.Equal(t, "/v2/banners/", cfg.Resources["banners"])
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"admin"}
		cfg := &Config{ServerBaseURL: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.ServerBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"admin", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"admin", "-c", filepath.Join(dir, "missing.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
