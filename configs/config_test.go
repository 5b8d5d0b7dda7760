package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TUTOR_TIMEOUT", "not-a-duration")

	cfg := LoadConfig("does-not-exist.env")

	assert.Equal(t, "8001", cfg.ServerPort)
	assert.Equal(t, 180*time.Second, cfg.TutorTimeout)
	assert.Equal(t, "cp_concepts", cfg.ConceptCollection)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.DevFallbackUser)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TUTOR_TIMEOUT", "30s")
	t.Setenv("DEV_FALLBACK_USER", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CONCEPT_TOP_K", "3")

	cfg := LoadConfig("does-not-exist.env")

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.TutorTimeout)
	assert.True(t, cfg.DevFallbackUser)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.ConceptTopK)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid sqlite", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"default secret in production", func(c *Config) { c.AppEnv = "production" }, true},
		{"fallback user in production", func(c *Config) {
			c.AppEnv = "production"
			c.JWTSecret = "s3cret"
			c.DevFallbackUser = true
		}, true},
		{"zero timeout", func(c *Config) { c.TutorTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				AppEnv:       "development",
				ServerPort:   "8001",
				DBDriver:     "mysql",
				JWTSecret:    "dev-secret-change-me",
				TutorTimeout: time.Minute,
			}
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
				return
			}
			assert.NoError(t, cfg.Validate())
		})
	}
}
