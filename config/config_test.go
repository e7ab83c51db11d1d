package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "uploads", cfg.UploadsDir)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.RateLimit.RedisAddr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	base, err := Parse()
	require.NoError(t, err)

	cfg := *base
	cfg.BcryptCost = 2
	assert.Error(t, cfg.Validate())

	cfg = *base
	cfg.Seed.LeaderEmail = "lead@example.com"
	assert.Error(t, cfg.Validate(), "seed email without password")

	cfg.Seed.LeaderPassword = "secret1"
	assert.NoError(t, cfg.Validate())
}
