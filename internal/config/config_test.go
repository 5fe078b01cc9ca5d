package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "http://localhost:3001", cfg.Upstream.SafetyURL)
	assert.Equal(t, "http://localhost:3002", cfg.Upstream.PhraseURL)
	assert.Equal(t, "http://localhost:3003", cfg.Upstream.ItineraryURL)
	assert.Equal(t, "http://localhost:3004", cfg.Upstream.ExportURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingDBPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:        "db.internal",
		Port:        "5432",
		User:        "app",
		Password:    "pw",
		Name:        "tripplanner",
		SSLMode:     "require",
		ConnTimeout: 10 * time.Second,
	}}

	assert.Equal(t,
		"postgres://app:pw@db.internal:5432/tripplanner?sslmode=require&connect_timeout=10",
		cfg.GetDSN())
}
