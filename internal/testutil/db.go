package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/joestump/linkboard/internal/db"
)

// NewTestDB opens a SQLite database in the test's temp dir and runs all
// goose migrations. The database is closed when the test finishes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	db.SetLogger(quiet)

	// A file rather than a shared-cache in-memory DB: shared cache uses
	// table locks that ignore busy_timeout under concurrent writers.
	dsn := "file:" + filepath.Join(t.TempDir(), "links.db") + "?_pragma=busy_timeout(5000)"
	conn, err := db.New("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return conn
}
