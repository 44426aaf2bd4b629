package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/linkboard/internal/handler"
	"github.com/joestump/linkboard/internal/store"
)

func newRouter(t *testing.T, deps handler.Deps) (http.Handler, *bytes.Buffer) {
	t.Helper()
	if deps.Links == nil {
		s := store.NewFileStore(afero.NewMemMapFs(), "/links.json")
		require.NoError(t, s.Init(context.Background()))
		deps.Links = s
	}
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	deps.Logger = l
	if deps.CORSOrigins == nil {
		deps.CORSOrigins = []string{"*"}
	}

	h, err := handler.NewRouter(deps)
	require.NoError(t, err)
	return h, &buf
}

func get(h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_APIMounted(t *testing.T) {
	h, logs := newRouter(t, handler.Deps{RequestTimeout: 5 * time.Second})

	rec := get(h, "/api/links", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LMS Kampus")

	rec = get(h, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, logs.String(), `"path":"/api/links"`)
	assert.Contains(t, logs.String(), `"request_id"`)
}

func TestRouter_CORS(t *testing.T) {
	h, _ := newRouter(t, handler.Deps{})

	rec := get(h, "/api/links", http.Header{"Origin": {"https://elsewhere.example"}})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	h, _ := newRouter(t, handler.Deps{CORSOrigins: []string{"https://ok.example"}})

	rec := get(h, "/api/links", http.Header{"Origin": {"https://ok.example"}})
	assert.Equal(t, "https://ok.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/api/links", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_EmbeddedUI(t *testing.T) {
	h, _ := newRouter(t, handler.Deps{})

	rec := get(h, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/api/links")
}

func TestRouter_StaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>custom</h1>"), 0o644))
	h, _ := newRouter(t, handler.Deps{StaticDir: dir})

	rec := get(h, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>custom</h1>", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newRouter(t, handler.Deps{})

	get(h, "/api/links", nil)
	rec := get(h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "linkboard_store_operations_total"), "store counter not exported")
	assert.Contains(t, body, "linkboard_links_total")
}

func TestRouter_SwaggerUI(t *testing.T) {
	h, _ := newRouter(t, handler.Deps{})

	rec := get(h, "/api/docs", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = get(h, "/api/docs/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "linkboard API")
}
