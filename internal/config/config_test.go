package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/helios/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("HELIOS_ENV", "local")
	t.Setenv("HELIOS_HTTP_PORT", "9000")
	t.Setenv("HELIOS_PROVIDER_TYPE", "google")
	t.Setenv("HELIOS_PROVIDER_KEY", "testAPIKey")
	t.Setenv("HELIOS_GEOCODE_TIMEOUT", "3s")
	t.Setenv("HELIOS_SEARCH_RADIUS", "150.5")
	t.Setenv("HELIOS_BUILDINGS_SOURCE", "postgres")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, "google", cfg.Provider.Type)
	assert.Equal(t, "testAPIKey", cfg.Provider.APIKey)
	assert.Equal(t, 2, cfg.Provider.RateLimit)
	assert.Equal(t, 3*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 5*time.Second, cfg.BuildingsTimeout)
	assert.InDelta(t, 150.5, cfg.SearchRadius, 1e-9)
	assert.Equal(t, config.SourcePostgres, cfg.Buildings.Source)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("HELIOS_PROVIDER_TYPE", "")
	t.Setenv("HELIOS_BUILDINGS_SOURCE", "file")

	cfg := config.MustLoad()

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.InDelta(t, 100.0, cfg.SearchRadius, 1e-9)
	assert.Equal(t, config.SourceFile, cfg.Buildings.Source)
	assert.Equal(t, "data/buildings.csv", cfg.Buildings.File)
}

func TestMustLoad_Panics(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		panic string
	}{
		{"http port", "HELIOS_HTTP_PORT", "error_value", "failed to parse port for api server from configuration"},
		{"health port", "HELIOS_HEALTH_PORT", "error_value", "failed to parse port for monitoring server from configuration"},
		{
			"rate limit", "HELIOS_PROVIDER_RATE_LIMIT", "fast",
			"failed to parse provider rate limit from configuration, must be an integer types",
		},
		{"geocode timeout", "HELIOS_GEOCODE_TIMEOUT", "soon", "failed to parse geocode timeout from configuration"},
		{"buildings timeout", "HELIOS_BUILDINGS_TIMEOUT", "10", "failed to parse buildings timeout from configuration"},
		{
			"negative radius", "HELIOS_SEARCH_RADIUS", "-5",
			"failed to parse search radius from configuration, must be a positive number",
		},
		{"unknown source", "HELIOS_BUILDINGS_SOURCE", "s3", "unknown buildings source, must be one of: file, postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			assert.PanicsWithValue(t, tt.panic, func() {
				config.MustLoad()
			})
		})
	}
}
