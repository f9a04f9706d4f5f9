package database

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTestDB returns a migrated, empty in-memory SQLite database that is
// closed when the test ends.
func OpenTestDB(t *testing.T) *DBConnection {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	conn, err := NewDBConnection("test", DriverSQLite, dsn, logger, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, conn.Migrate())

	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
