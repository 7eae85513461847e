package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./src/content", cfg.ContentDir)
	assert.Equal(t, "https://api.vercel.com", cfg.VercelAPIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.False(t, cfg.WatchContent)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("UPSTREAM_TIMEOUT", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://chixitown.com,http://localhost:4321")
	t.Setenv("WATCH_CONTENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"https://chixitown.com", "http://localhost:4321"}, cfg.AllowedOrigins)
	assert.True(t, cfg.WatchContent)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:             8080,
			ContentDir:       "content",
			VercelAPIBaseURL: "https://api.vercel.com",
			UpstreamTimeout:  time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "PORT"},
		{name: "zero timeout", mutate: func(c *Config) { c.UpstreamTimeout = 0 }, wantErr: "UPSTREAM_TIMEOUT"},
		{name: "relative base url", mutate: func(c *Config) { c.VercelAPIBaseURL = "api.vercel.com" }, wantErr: "VERCEL_API_BASE_URL"},
		{name: "no content dir", mutate: func(c *Config) { c.ContentDir = "" }, wantErr: "CONTENT_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSite(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		site, err := LoadSite(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSite(), site)
	})

	t.Run("file overrides some fields", func(t *testing.T) {
		path := filepath.Join(dir, "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("site: https://example.com/\ncollections: [tech, notes]\n"), 0o644))

		site, err := LoadSite(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", site.URL)
		assert.Equal(t, "劝退师说", site.Title)
		assert.Equal(t, []string{"tech", "notes"}, site.Collections)
		assert.Equal(t, "https://example.com/tech/hello/", site.Link("/tech/hello/"))
		assert.True(t, site.HasCollection("notes"))
		assert.False(t, site.HasCollection("life"))
	})

	t.Run("bad collection name is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("collections: [../etc]\n"), 0o644))

		_, err := LoadSite(path)
		assert.ErrorContains(t, err, "invalid collection name")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("title: [unterminated\n"), 0o644))

		_, err := LoadSite(path)
		assert.ErrorContains(t, err, "parse site config")
	})
}
