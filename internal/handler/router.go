package handler

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/linkboard/docs/swagger"
	"github.com/joestump/linkboard/internal/api"
	"github.com/joestump/linkboard/internal/store"
	"github.com/joestump/linkboard/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Links  store.LinkStore
	Logger logrus.FieldLogger

	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
	// StaticDir serves the UI from disk instead of the embedded copy.
	StaticDir string
	// RequestTimeout bounds every request; zero disables the deadline.
	RequestTimeout time.Duration
}

// NewRouter assembles the full chi router with all middleware and routes.
// Named routes are registered before the static catch-all.
func NewRouter(deps Deps) (http.Handler, error) {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI. Must precede the /api mount so chi does not hand
	// /api/docs/* to the API sub-router.
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	r.Mount("/api", api.NewAPIRouter(api.Deps{
		Links:  deps.Links,
		Logger: log,
	}))

	static, err := staticHandler(deps.StaticDir)
	if err != nil {
		return nil, err
	}
	r.Handle("/*", handlers.CompressHandler(static))

	cors := handlers.CORS(
		handlers.AllowedOrigins(deps.CORSOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r), nil
}

// staticHandler serves the UI from dir, or from the embedded copy when dir is empty.
func staticHandler(dir string) (http.Handler, error) {
	if dir != "" {
		return http.FileServer(http.Dir(dir)), nil
	}
	// fs.Sub so the file server sees index.html, not static/index.html.
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("sub static FS: %w", err)
	}
	return http.FileServerFS(sub), nil
}
