package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLStore is the sqlx-backed, identifier-addressed implementation of
// LinkStore and LinkUpdater. Every mutation is a single-row statement, so
// concurrent callers never race on a client-side read-modify-write.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// timestamp returns the current time at the precision every supported
// database keeps, so a record reads back exactly as it was written.
func (s *SQLStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Seed inserts DefaultLinks when the links table is empty. The defaults get
// descending creation times so List returns them in their canonical order.
func (s *SQLStore) Seed(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, unavailable("begin seed", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM links`); err != nil {
		return 0, unavailable("count links", err)
	}
	if count > 0 {
		return 0, nil
	}

	base := s.timestamp()
	defaults := DefaultLinks()
	for i, l := range defaults {
		l.ID = uuid.New().String()
		l.CreatedAt = base.Add(-time.Duration(i) * time.Millisecond)
		if _, err := tx.NamedExecContext(ctx, insertLinkSQL, l); err != nil {
			return 0, unavailable("seed link", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, unavailable("commit seed", err)
	}
	return len(defaults), nil
}

const insertLinkSQL = `
	INSERT INTO links (id, title, url, emoji, description, created_at)
	VALUES (:id, :title, :url, :emoji, :description, :created_at)`

// List returns all links, newest first.
func (s *SQLStore) List(ctx context.Context) ([]*Link, error) {
	links := []*Link{}
	err := s.db.SelectContext(ctx, &links, `
		SELECT id, title, url, emoji, description, created_at
		FROM links
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, unavailable("list links", err)
	}
	return links, nil
}

// GetByID returns the link matching id, or ErrNotFound.
func (s *SQLStore) GetByID(ctx context.Context, id string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.db.Rebind(`
		SELECT id, title, url, emoji, description, created_at
		FROM links WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, unavailable("get link", err)
	}
	return &l, nil
}

// Create validates in, inserts it under a fresh UUID, and returns the stored record.
func (s *SQLStore) Create(ctx context.Context, in LinkInput) (*Link, error) {
	link, err := NewLink(in)
	if err != nil {
		return nil, err
	}
	link.ID = uuid.New().String()
	link.CreatedAt = s.timestamp()

	if _, err := s.db.NamedExecContext(ctx, insertLinkSQL, link); err != nil {
		return nil, unavailable("insert link", err)
	}
	return s.GetByID(ctx, link.ID)
}

// Update overwrites the fields present in patch and returns the updated link.
// The partial overwrite happens in one UPDATE statement: absent fields are
// bound as NULL and COALESCE keeps the stored value.
func (s *SQLStore) Update(ctx context.Context, id string, patch LinkPatch) (*Link, error) {
	patch, err := ValidatePatch(patch)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetByID(ctx, id)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE links SET
			title = COALESCE(?, title),
			url = COALESCE(?, url),
			emoji = COALESCE(?, emoji),
			description = COALESCE(?, description)
		WHERE id = ?`),
		patch.Title, patch.URL, patch.Emoji, patch.Description, id)
	if err != nil {
		return nil, unavailable("update link", err)
	}
	// MySQL reports zero affected rows for a no-op update, so existence is
	// decided by reading the row back.
	return s.GetByID(ctx, id)
}

// Delete removes the link with the given id and returns it.
func (s *SQLStore) Delete(ctx context.Context, id string) (*Link, error) {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM links WHERE id = ?`), id)
	if err != nil {
		return nil, unavailable("delete link", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, unavailable("delete link", err)
	}
	if n == 0 {
		// Removed by a concurrent caller between the read and the delete.
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return link, nil
}

// Count returns the number of stored links.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM links`); err != nil {
		return 0, unavailable("count links", err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping database", err)
	}
	return nil
}
