package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ADMIN_PASSWORD", "admin")
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEFAULT_CAPACITY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("R2_ACCOUNT_ID", "")
	t.Setenv("R2_ENDPOINT", "")
	t.Setenv("R2_ACCESS_KEY_ID", "")
	t.Setenv("R2_SECRET_ACCESS_KEY", "")
	t.Setenv("R2_BUCKET_NAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("STATE_FILE", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, BackendFile, cfg.StateBackend)
	assert.Equal(t, "data.json", cfg.StateFile)
	assert.Equal(t, 8, cfg.DefaultCapacity)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing jwt secret", env: map[string]string{"JWT_SECRET_KEY": ""}},
		{name: "missing admin password", env: map[string]string{"ADMIN_PASSWORD": "", "ADMIN_PASSWORD_HASH": ""}},
		{name: "bad port", env: map[string]string{"SERVER_PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "capacity below two", env: map[string]string{"DEFAULT_CAPACITY": "1"}},
		{name: "unknown backend", env: map[string]string{"STATE_BACKEND": "redis"}},
		{name: "postgres without url", env: map[string]string{"STATE_BACKEND": "postgres"}},
		{name: "r2 without credentials", env: map[string]string{"STATE_BACKEND": "r2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
