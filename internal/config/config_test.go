package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DOCSTORE_BACKEND", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, BackendSQL, cfg.DocstoreBackend)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Empty(t, cfg.S3Bucket, "s3 settings are read only for the s3 backend")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DOCSTORE_BACKEND", BackendS3)
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("S3_BUCKET", "study")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "study", cfg.S3Bucket)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestEnvParsers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "many")
	t.Setenv("X_NEG", "-3")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, 7, envInt("X_NEG", 7))
	assert.Equal(t, time.Second, envDuration("X_DUR", time.Second))
	assert.Equal(t, "def", envString("X_UNSET_FOR_TEST", "def"))
}
