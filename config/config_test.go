package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
storage:
  backend: redis
database:
  host: db
  port: 5432
  user: u
  password: p
  name: flightbook
  ssl_mode: disable
booking:
  reject_duplicates: true
  flights_cache_ttl_seconds: 30
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.True(t, cfg.Booking.RejectDuplicates)
	assert.Equal(t, 30, cfg.Booking.FlightsCacheTTL)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=flightbook sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_DefaultBackend(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":8080\"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
}

func TestLoadConfig_DefaultWorkerIntervals(t *testing.T) {
	// An omitted worker section must still yield usable ticker periods.
	path := writeConfig(t, "http:\n  address: \":8080\"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Worker.ReconcileSweepMinutes)
	assert.Equal(t, 72, cfg.Worker.CleanupAfterHours)

	path = writeConfig(t, "worker:\n  reconcile_sweep_minutes: 0\n  cleanup_after_hours: -1\n")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Worker.ReconcileSweepMinutes)
	assert.Equal(t, 72, cfg.Worker.CleanupAfterHours)

	path = writeConfig(t, "worker:\n  reconcile_sweep_minutes: 5\n  cleanup_after_hours: 24\n")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Worker.ReconcileSweepMinutes)
	assert.Equal(t, 24, cfg.Worker.CleanupAfterHours)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: sqlite\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD", "secret-db")
	t.Setenv("ADMIN_PASSWORD", "secret-admin")

	path := writeConfig(t, `
database:
  password: from-file
admin:
  username: admin
  password: from-file
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-db", cfg.Database.Password)
	assert.Equal(t, "secret-admin", cfg.Admin.Password)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
