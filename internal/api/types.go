package api

import (
	"time"

	"github.com/joestump/linkboard/internal/store"
)

// CreateLinkRequest is the request body for POST /api/links.
type CreateLinkRequest = store.LinkInput

// UpdateLinkRequest is the request body for PUT and PATCH /api/links/{ref}.
// Omitted fields keep their stored value.
type UpdateLinkRequest = store.LinkPatch

// LinkMutationResponse wraps the link a create, update, or delete touched.
type LinkMutationResponse struct {
	Success bool        `json:"success"`
	Link    *store.Link `json:"link"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}
