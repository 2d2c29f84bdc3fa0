package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "eventdesk.db", cfg.SQLite.Path)
	assert.Equal(t, uint64(5), cfg.Postgres.ConnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.Postgres.ConnectBackoff)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=eventdesk sslmode=disable", cfg.Postgres.DSN())
}

func TestLoadServerRejectsUnknownStore(t *testing.T) {
	t.Setenv("EVENTDESK_STORE", "mongo")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store")
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("EVENTDESK_STORE", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("EVENTDESK_ADMIN_PASSWORD", "s3cret")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, "s3cret", cfg.Seed.AdminPassword)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("EVENTDESK_TIMEOUT", "soon")

	_, err := LoadClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadClientFillsSessionPath(t *testing.T) {
	t.Setenv("EVENTDESK_SESSION_PATH", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.SessionPath)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}
