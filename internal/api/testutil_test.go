package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/joestump/linkboard/internal/api"
	"github.com/joestump/linkboard/internal/store"
	"github.com/joestump/linkboard/internal/testutil"
)

// quietLogger discards handler logs during tests.
func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newFileRouter wires the API router over a seeded in-memory file store.
func newFileRouter(t *testing.T) http.Handler {
	t.Helper()
	s := store.NewFileStore(afero.NewMemMapFs(), "/links.json")
	require.NoError(t, s.Init(context.Background()))
	return api.NewAPIRouter(api.Deps{Links: s, Logger: quietLogger()})
}

// newSQLRouter wires the API router over a migrated, seeded SQLite store.
func newSQLRouter(t *testing.T) (http.Handler, *store.SQLStore) {
	t.Helper()
	s := store.NewSQLStore(testutil.NewTestDB(t))
	_, err := s.Seed(context.Background())
	require.NoError(t, err)
	return api.NewAPIRouter(api.Deps{Links: s, Logger: quietLogger()}), s
}

// do sends a request with an optional JSON body and returns the recorder.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}
