package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/linkboard/internal/build"
	"github.com/joestump/linkboard/internal/store"
)

type healthHandler struct {
	links store.LinkStore
}

func registerHealthRoutes(r chi.Router, links store.LinkStore) {
	h := &healthHandler{links: links}
	r.Get("/health", h.Health)
}

// Health reports whether the link store is reachable.
// GET /api/health
//
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Version:   build.Version,
		Timestamp: time.Now().UTC(),
	}
	if err := h.links.Ping(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Error = "storage unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
