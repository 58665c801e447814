package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CYBERX_ADDR", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "API_KEY", "CORS_ORIGIN",
	"RATE_LIMIT", "RATE_LIMIT_WINDOW", "SCAN_WORKERS", "SCAN_PROBE_RATE", "SCAN_MAX_PORTS",
	"SCAN_DEADLINE", "TASK_TTL", "LOG_LEVEL",
}

// isolateEnv points the loader at a dotenv file in a temp dir and clears
// every variable it reads.
func isolateEnv(t *testing.T, dotenv string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if dotenv != "" {
		require.NoError(t, os.WriteFile(path, []byte(dotenv), 0o600))
	}
	t.Setenv("CYBERX_ENV_FILE", path)

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8787", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.Equal(t, int64(60), cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.ScanWorkers)
	assert.Equal(t, 0, cfg.ProbeRate)
	assert.Equal(t, 65535, cfg.MaxPorts)
	assert.Equal(t, 10*time.Minute, cfg.ScanDeadline)
	assert.Equal(t, 24*time.Hour, cfg.TaskTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_DotenvAndEnvironment(t *testing.T) {
	isolateEnv(t, "CYBERX_ADDR=:9000\nSCAN_WORKERS=8\nAPI_KEY=from-file\n")
	t.Setenv("API_KEY", "from-env")
	t.Setenv("SCAN_DEADLINE", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 8, cfg.ScanWorkers)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 90*time.Second, cfg.ScanDeadline)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolateEnv(t, "")
	t.Setenv("SCAN_WORKERS", "many")
	t.Setenv("TASK_TTL", "forever")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCAN_WORKERS")
	assert.Contains(t, err.Error(), "TASK_TTL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"no workers", func(c *Config) { c.ScanWorkers = 0 }, "SCAN_WORKERS"},
		{"no ports", func(c *Config) { c.MaxPorts = 0 }, "SCAN_MAX_PORTS"},
		{"no rate", func(c *Config) { c.RateLimit = 0 }, "RATE_LIMIT must"},
		{"no window", func(c *Config) { c.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"no deadline", func(c *Config) { c.ScanDeadline = -time.Second }, "SCAN_DEADLINE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ScanWorkers:     1,
				MaxPorts:        100,
				RateLimit:       10,
				RateLimitWindow: time.Second,
				ScanDeadline:    time.Minute,
			}
			tt.mutate(cfg)

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
