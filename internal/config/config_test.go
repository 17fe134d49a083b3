package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, 15*time.Second, cfg.Timeout())
}

func TestLoadPrefersProjectConfig(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".relocate", "config.json"), `{"api_url":"http://global:1/api"}`)
	writeFile(t, filepath.Join(work, ".relocate", "config.json"), `{"api_url":"http://project:2/api"}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://project:2/api", cfg.APIURL)
	assert.Equal(t, "demo-user-123", cfg.UserID, "unset fields keep defaults")
	assert.True(t, Exists())
}

func TestLoadFallsBackToGlobal(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".relocate", "config.json"), `{"credential_backend":"sqlite","retry_max":0}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.CredentialBackend)
	assert.Zero(t, cfg.RetryMax)
}

func TestEnvOverridesFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".relocate", "config.json"), `{"log_level":"warn","user_id":"file-user"}`)
	t.Setenv("RELOCATE_LOG_LEVEL", "debug")
	t.Setenv("RELOCATE_RATE_LIMIT", "2.5")
	t.Setenv("RELOCATE_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "file-user", cfg.UserID)
	assert.InDelta(t, 2.5, cfg.RateLimit, 1e-9)
	assert.True(t, cfg.Debug)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad json", file: `{`},
		{name: "relative url", file: `{"api_url":"/api"}`},
		{name: "bad scheme", env: map[string]string{"RELOCATE_API_URL": "ftp://host/api"}},
		{name: "unknown backend", file: `{"credential_backend":"keychain"}`},
		{name: "negative retry", env: map[string]string{"RELOCATE_RETRY_MAX": "-1"}},
		{name: "negative timeout", file: `{"timeout_seconds":-5}`},
		{name: "unparseable env", env: map[string]string{"RELOCATE_TIMEOUT_SECONDS": "soon"}},
		{name: "empty user", file: `{"user_id":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, _ := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(home, ".relocate", "config.json"), tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home, work := isolate(t)
	cfg := DefaultConfig()
	cfg.APIURL = "https://relocate.example.com/api"
	cfg.DataDir = filepath.Join(home, "data")

	require.NoError(t, Save(cfg))
	assert.FileExists(t, filepath.Join(work, ".relocate", "config.json"))
	assert.FileExists(t, filepath.Join(home, ".relocate", "config.json"))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestResolveDataDir(t *testing.T) {
	home, _ := isolate(t)

	dir, err := DefaultConfig().ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".relocate"), dir)

	cfg := DefaultConfig()
	cfg.DataDir = "/srv/relocate"
	dir, err = cfg.ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/relocate", dir)
}
