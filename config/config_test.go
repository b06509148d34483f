// Package config provides configuration management and environment variable handling for the application
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Model: ModelConfig{
			ArtifactPath: "car_price_pipeline.json",
		},
		Security: SecurityConfig{
			GlobalRateLimit: 2000,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Output: "stdout",
		},
		Cache: CacheConfig{
			Enabled:  true,
			RedisURL: "redis://localhost:6379",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port",
			mutate:      func(c *Config) { c.Server.Port = 0 },
			expectError: true,
			errContains: "SERVER_PORT",
		},
		{
			name:        "missing artifact path",
			mutate:      func(c *Config) { c.Model.ArtifactPath = "" },
			expectError: true,
			errContains: "MODEL_ARTIFACT_PATH",
		},
		{
			name:        "unknown log output",
			mutate:      func(c *Config) { c.Logging.Output = "syslog" },
			expectError: true,
			errContains: "LOG_OUTPUT",
		},
		{
			name: "file logging requires a path",
			mutate: func(c *Config) {
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
			expectError: true,
			errContains: "LOG_FILE_PATH",
		},
		{
			name: "enabled cache requires a redis url",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.RedisURL = ""
			},
			expectError: true,
			errContains: "CACHE_REDIS_URL",
		},
		{
			name: "disabled cache needs no redis url",
			mutate: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.RedisURL = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "car_price_pipeline.json", cfg.Model.ArtifactPath)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "corolla:", cfg.Cache.RedisPrefix)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("MODEL_ARTIFACT_PATH", "/opt/models/pipeline.json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CACHE_DEFAULT_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/opt/models/pipeline.json", cfg.Model.ArtifactPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Cache.DefaultTTL)
}
