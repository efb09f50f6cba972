package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("AUTH_TOKEN_LIFETIME", "120")
	t.Setenv("GOOGLE_PRIVATE_KEY", `-----BEGIN KEY-----\nabc\n-----END KEY-----`)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Minute, cfg.Report.TTL())
	assert.Equal(t, "-----BEGIN KEY-----\nabc\n-----END KEY-----", cfg.Google.PrivateKey)
	assert.Equal(t, "info", cfg.Log.GetLevel())
}
