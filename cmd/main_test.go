package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/helios/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataset_File(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "LATITUDE,LONGITUDE,MAX_HEIGHT\n43.6535,-79.3830,41.2\n")
	cfg := &config.Config{Buildings: config.BuildingsConfig{Source: config.SourceFile, File: file.Name()}}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dataset, health, closeFn, err := loadDataset(t.Context(), cfg, logger)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, 1, dataset.Len())
	require.NoError(t, health(t.Context()))
}

func TestLoadDataset_EmptyFileIsUnhealthy(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "LATITUDE,LONGITUDE,MAX_HEIGHT\n")
	cfg := &config.Config{Buildings: config.BuildingsConfig{Source: config.SourceFile, File: file.Name()}}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dataset, health, _, err := loadDataset(t.Context(), cfg, logger)
	require.NoError(t, err)

	assert.Zero(t, dataset.Len())
	require.Error(t, health(t.Context()))
}

func TestLoadDataset_MissingFile(t *testing.T) {
	cfg := &config.Config{Buildings: config.BuildingsConfig{Source: config.SourceFile, File: "/no/such/export.csv"}}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_, _, _, err := loadDataset(t.Context(), cfg, logger)
	require.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "unknown"} {
		assert.NotNil(t, setupLogger(env), env)
	}

	assert.True(t, setupLogger(envLocal).Handler().Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, setupLogger(envProd).Handler().Enabled(t.Context(), slog.LevelInfo))
}

func TestMonitoringHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()

	healthy := monitoringHandler(t.Context(), logger, reg, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	unhealthy := monitoringHandler(t.Context(), logger, reg, func(context.Context) error { return assert.AnError })
	rec = httptest.NewRecorder()
	unhealthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
