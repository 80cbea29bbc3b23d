package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, env := range []string{"GOOGLE_TRANSLATE_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "LEXBRIDGE_MYSQL_PASSWORD"} {
		t.Setenv(env, "")
	}
}

func TestLoader_Load(t *testing.T) {
	phrasebook := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(phrasebook, []byte("tables: {}\n"), 0o600))

	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		want              func(t *testing.T, cfg *Config)
		wantErrorContains []string
	}{
		{
			name:          "defaults",
			configContent: "",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, LogConfig{Level: "warn", Format: "text"}, cfg.Log)
				assert.Equal(t, "english", cfg.Resolver.Pivot)
				assert.Equal(t, BackendFile, cfg.Cache.Backend)
				assert.Equal(t, 1000, cfg.Cache.MaxSize)
				assert.Equal(t, "lexbridge-cache.json", cfg.Cache.Path)
				assert.Equal(t, "none", cfg.Provider.Name)
				assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
				assert.Equal(t, 2, cfg.Provider.Retry.MaxRetries)
				assert.Equal(t, 200*time.Millisecond, cfg.Provider.Retry.BaseDelay)
				assert.Equal(t, uint32(5), cfg.Provider.Breaker.MaxFailures)
				assert.Equal(t, "lexbridge:", cfg.Cache.Redis.KeyPrefix)
			},
		},
		{
			name: "file values",
			configContent: `log:
  level: debug
  format: json
resolver:
  pivot: French
  phrasebook_file: ` + phrasebook + `
cache:
  backend: redis
  max_size: 50
  ttl: 24h
  redis:
    url: redis://localhost:6379/1
    ttl: 3600
provider:
  name: google
  timeout: 3s
  rate_limit:
    requests_per_minute: 30
`,
			env: map[string]string{"GOOGLE_TRANSLATE_API_KEY": "g-key"},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
				assert.Equal(t, "french", cfg.Resolver.Pivot)
				assert.Equal(t, phrasebook, cfg.Resolver.PhrasebookFile)
				assert.Equal(t, BackendRedis, cfg.Cache.Backend)
				assert.Equal(t, 50, cfg.Cache.MaxSize)
				assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
				assert.Equal(t, "redis://localhost:6379/1", cfg.Cache.Redis.URL)
				assert.Equal(t, 3600, cfg.Cache.Redis.TTL)
				assert.Equal(t, "google", cfg.Provider.Name)
				assert.Equal(t, "g-key", cfg.Provider.Google.APIKey)
				assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
				assert.Equal(t, 30, cfg.Provider.RateLimit.RequestsPerMinute)
			},
		},
		{
			name:          "environment overrides file",
			configContent: "cache:\n  max_size: 50\n",
			env: map[string]string{
				"LEXBRIDGE_CACHE_MAX_SIZE": "75",
				"LEXBRIDGE_PROVIDER_NAME":  "openai",
				"OPENAI_API_KEY":           "sk-test",
				"LEXBRIDGE_LOG_LEVEL":      "info",
				"LEXBRIDGE_CACHE_BACKEND":  "memory",
				"LEXBRIDGE_RESOLVER_PIVOT": "swahili",
			},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 75, cfg.Cache.MaxSize)
				assert.Equal(t, BackendMemory, cfg.Cache.Backend)
				assert.Equal(t, "openai", cfg.Provider.Name)
				assert.Equal(t, "sk-test", cfg.Provider.OpenAI.APIKey)
				assert.Equal(t, "info", cfg.Log.Level)
				assert.Equal(t, "swahili", cfg.Resolver.Pivot)
			},
		},
		{
			name:              "invalid YAML format",
			configContent:     "log:\n  level: debug\n  invalid yaml format here [[[\n",
			wantErrorContains: []string{"configuration file found but could not be read"},
		},
		{
			name:              "invalid enum values",
			configContent:     "log:\n  level: verbose\ncache:\n  backend: s3\n",
			wantErrorContains: []string{"level must be one of [debug info warn error]", "backend must be one of"},
		},
		{
			name:              "non-positive cache size",
			configContent:     "cache:\n  max_size: 0\n",
			wantErrorContains: []string{"max_size must be greater than 0"},
		},
		{
			name:              "missing provider credential",
			configContent:     "provider:\n  name: gemini\n",
			wantErrorContains: []string{"gemini.api_key is required when provider is gemini (GEMINI_API_KEY)"},
		},
		{
			name:              "redis backend without url",
			configContent:     "cache:\n  backend: redis\n",
			wantErrorContains: []string{"redis.url is required when backend is redis"},
		},
		{
			name:              "mysql backend without host",
			configContent:     "cache:\n  backend: mysql\n  mysql:\n    host: \"\"\n",
			wantErrorContains: []string{"mysql.host is required when backend is mysql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentials(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			loader, err := NewLoader(writeConfig(t, tt.configContent))
			require.NoError(t, err)

			cfg, err := loader.Load()
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, s := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), s)
				}
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestLoader_ExplicitFileMissing(t *testing.T) {
	loader, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	_, err = loader.Load()
	assert.ErrorContains(t, err, "could not be read")
}
