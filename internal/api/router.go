package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/joestump/linkboard/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Links  store.LinkStore
	Logger logrus.FieldLogger
}

// NewAPIRouter creates a chi sub-router for /api. All routes return
// application/json.
func NewAPIRouter(deps Deps) chi.Router {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)

	registerLinkRoutes(r, deps.Links, log)
	registerHealthRoutes(r, deps.Links)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", codeNotFound)
	})
	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
