package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swms/swms-console/internal/auth"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, auth.RejectUnknownRole, cfg.UnknownRolePolicy())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SWMS_API_URL", "http://api.internal:9000")
	t.Setenv("SWMS_API_TIMEOUT", "3s")
	t.Setenv("AUTH_UNKNOWN_ROLE", "employee")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://api.internal:9000", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, auth.AdmitAsEmployee, cfg.UnknownRolePolicy())
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown role policy", env: map[string]string{"AUTH_UNKNOWN_ROLE": "guest"}},
		{name: "zero rate limit", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}},
		{name: "bad timeout", env: map[string]string{"SWMS_API_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "csrf-secret")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNilConfigDefaults(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, auth.RejectUnknownRole, cfg.UnknownRolePolicy())
}
