// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  user_key: "abc123"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://20.109.21.246:8080", cfg.Upstream.BaseURL)
	assert.Equal(t, "/producto/listado", cfg.Upstream.Path)
	assert.Equal(t, "abc123", cfg.Upstream.UserKey)
	assert.Equal(t, 300000, cfg.Cache.TTL)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.False(t, cfg.Cache.SkipDegraded)
	assert.Equal(t, 10, cfg.Matcher.MaxResults)
	assert.Equal(t, 5, cfg.WebSearch.MaxResults)
	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_INVENTORY_KEY", "from-placeholder")
	path := writeConfig(t, `
upstream:
  base_url: "http://inventory.local"
  user_key: "${TEST_INVENTORY_KEY}"
matcher:
  max_results: 3
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.local", cfg.Upstream.BaseURL)
	assert.Equal(t, "from-placeholder", cfg.Upstream.UserKey)
	assert.Equal(t, 3, cfg.Matcher.MaxResults)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("UPSTREAM_USER_KEY", "from-env")
	t.Setenv("CACHE_SKIP_DEGRADED", "true")
	path := writeConfig(t, `
upstream:
  user_key: "from-file"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Upstream.UserKey)
	assert.True(t, cfg.Cache.SkipDegraded)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing user key",
			body:    "app:\n  name: test\n",
			wantErr: "upstream.user_key is required",
		},
		{
			name:    "redis backend without address",
			body:    "upstream:\n  user_key: k\ncache:\n  backend: redis\n",
			wantErr: "database.redis.address is required",
		},
		{
			name:    "unknown backend",
			body:    "upstream:\n  user_key: k\ncache:\n  backend: memcached\n",
			wantErr: "cache.backend must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyDefaults_RepairsNonPositive(t *testing.T) {
	cfg := &Config{
		Upstream:  UpstreamConfig{Timeout: -1},
		Cache:     CacheConfig{TTL: 0, Backend: "REDIS"},
		WebSearch: WebSearchConfig{MaxResults: 0},
	}
	applyDefaults(cfg)

	assert.Equal(t, 15000, cfg.Upstream.Timeout)
	assert.Equal(t, 300000, cfg.Cache.TTL)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 5, cfg.WebSearch.MaxResults)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 300*time.Second, GetDuration(300000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
