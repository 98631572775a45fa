package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 11520, cfg.AccessTokenExpireMinutes)
	assert.Equal(t, 15, cfg.ResetCodeExpireMinutes)
	assert.Equal(t, "https://exp.host/--/api/v2/push/send", cfg.ExpoPushURL)
	assert.NotEmpty(t, cfg.SecretKey, "development gets a placeholder secret")
	assert.False(t, cfg.BootstrapEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("BACKEND_CORS_ORIGINS", " https://app.posco.co/ ,http://localhost:3000,")
	t.Setenv("FIRST_ENTERPRISE_NIT", "900123")
	t.Setenv("FIRST_SUPERUSER", "admin@posco.co")
	t.Setenv("FIRST_SUPERUSER_PASSWORD", "changeme")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, []string{"https://app.posco.co", "http://localhost:3000"}, cfg.AllowedOrigins())
	assert.True(t, cfg.BootstrapEnabled())
}

func TestValidate(t *testing.T) {
	t.Run("production requires a secret", func(t *testing.T) {
		cfg := &Config{Env: "production", AccessTokenExpireMinutes: 60, ResetCodeExpireMinutes: 15}
		assert.Error(t, cfg.Validate())
	})
	t.Run("token ttl must be positive", func(t *testing.T) {
		cfg := &Config{SecretKey: "x", ResetCodeExpireMinutes: 15}
		assert.Error(t, cfg.Validate())
	})
	t.Run("reset ttl must be positive", func(t *testing.T) {
		cfg := &Config{SecretKey: "x", AccessTokenExpireMinutes: 60}
		assert.Error(t, cfg.Validate())
	})
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{SecretKey: "x", AccessTokenExpireMinutes: 60, ResetCodeExpireMinutes: 15}
		assert.NoError(t, cfg.Validate())
	})
}
