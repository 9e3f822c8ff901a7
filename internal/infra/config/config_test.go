package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 15*time.Minute, cfg.FAQ.CacheTTL)
	require.Equal(t, "degrade", cfg.FAQ.CacheFailurePolicy)
	require.Contains(t, cfg.HTTP.Retry.Exclude, "/api/v1/faq/ask")
}

func TestValidateCacheTTLWindow(t *testing.T) {
	tests := []struct {
		name    string
		ttl     time.Duration
		wantErr bool
	}{
		{name: "zero", ttl: 0, wantErr: true},
		{name: "below minimum", ttl: 30 * time.Second, wantErr: true},
		{name: "minimum", ttl: time.Minute},
		{name: "one hour", ttl: time.Hour},
		{name: "maximum", ttl: 24 * time.Hour},
		{name: "above maximum", ttl: 25 * time.Hour, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.FAQ.CacheTTL = tt.ttl
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "policy", mutate: func(c *Config) { c.FAQ.CacheFailurePolicy = "ignore" }},
		{name: "backend", mutate: func(c *Config) { c.FAQ.IndexBackend = "sqlite" }},
		{name: "valkey without addr", mutate: func(c *Config) { c.FAQ.IndexBackend = IndexBackendValkey }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.FAQ.IndexBackend = IndexBackendPostgres }},
		{name: "vector dim", mutate: func(c *Config) { c.FAQ.VectorDim = 0 }},
		{name: "top k", mutate: func(c *Config) { c.FAQ.TopK = 0 }},
		{name: "ingest concurrency", mutate: func(c *Config) { c.FAQ.IngestConcurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
faq:
  cacheTtl: 30m
  topK: 5
  indexBackend: memory
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("FAQ_TOP_K", "7")
	t.Setenv("FAQ_CACHE_FAILURE_POLICY", "FAIL")
	t.Setenv("HTTP_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, cfg.FAQ.CacheTTL)
	require.Equal(t, 7, cfg.FAQ.TopK)
	require.Equal(t, "fail", cfg.FAQ.CacheFailurePolicy)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowOrigins)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faq:\n  cacheTtl: 2s\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}
