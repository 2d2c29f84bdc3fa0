package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/config"
)

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateSQLite(ctx, db, zap.NewNop()))
	// Second run is a no-op.
	require.NoError(t, MigrateSQLite(ctx, db, zap.NewNop()))

	for _, table := range []string{"events", "users", "enrollments"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	path := t.TempDir() + "/catalog.db"
	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestNewPoolGivesUp(t *testing.T) {
	cfg := config.Postgres{
		Host:            "127.0.0.1",
		Port:            "1",
		User:            "x",
		Password:        "x",
		DBName:          "x",
		SSLMode:         "disable",
		ConnectAttempts: 2,
		ConnectBackoff:  time.Millisecond,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := NewPool(ctx, cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to postgres")
}
