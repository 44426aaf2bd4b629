package migrations

// The links table needs per-dialect column types: MySQL cannot index TEXT
// primary keys and needs utf8mb4 for emoji, PostgreSQL keeps timestamps as
// TIMESTAMPTZ, and modernc/sqlite only parses columns declared TIMESTAMP back
// into time.Time.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateLinks, downCreateLinks)
}

func upCreateLinks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    emoji       TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id          VARCHAR(36) PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    emoji       VARCHAR(64) NOT NULL,
    description TEXT NOT NULL,
    created_at  TIMESTAMP(6) NOT NULL
) DEFAULT CHARSET=utf8mb4`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    emoji       TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create links table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_links_created_at ON links (created_at)`)
	return err
}

func downCreateLinks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS links`)
	return err
}
