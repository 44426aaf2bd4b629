package store

//go:generate mockgen -source=store.go -destination=../mocks/store_mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an index or id does not name a live link.
	ErrNotFound = errors.New("link not found")

	// ErrStorageUnavailable is returned when the backend could not be read or written.
	// The backend cause is wrapped alongside it.
	ErrStorageUnavailable = errors.New("link storage unavailable")
)

// ValidationError reports caller-supplied data that violates the link schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// unavailable wraps a backend failure so callers can match ErrStorageUnavailable
// while the underlying cause stays inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// LinkStore exposes every link data operation. Handlers never touch the
// backend directly; all access goes through this interface.
//
// Delete takes a backend-specific reference: a decimal position for the file
// backend, a generated id for the SQL backend.
type LinkStore interface {
	List(ctx context.Context) ([]*Link, error)
	Create(ctx context.Context, in LinkInput) (*Link, error)
	Delete(ctx context.Context, ref string) (*Link, error)
	Ping(ctx context.Context) error
}

// LinkUpdater is implemented by identifier-addressed stores only. Positional
// ids shift on every delete, so the file backend does not offer updates.
type LinkUpdater interface {
	Update(ctx context.Context, id string, patch LinkPatch) (*Link, error)
}
