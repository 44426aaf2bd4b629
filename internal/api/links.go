package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/joestump/linkboard/internal/metrics"
	"github.com/joestump/linkboard/internal/store"
)

// maxBodyBytes caps request bodies on link mutations.
const maxBodyBytes = 1 << 20

// linksAPIHandler provides REST handlers for the link collection.
type linksAPIHandler struct {
	links   store.LinkStore
	updater store.LinkUpdater // nil when the backend is index-addressed
	log     logrus.FieldLogger
}

// registerLinkRoutes registers link routes on r. Update routes exist only
// when the store can address links by a stable id; otherwise chi answers
// PUT and PATCH with 405.
func registerLinkRoutes(r chi.Router, links store.LinkStore, log logrus.FieldLogger) {
	h := &linksAPIHandler{links: links, log: log}
	h.updater, _ = links.(store.LinkUpdater)

	r.Get("/links", h.List)
	r.Post("/links", h.Create)
	r.Delete("/links/{ref}", h.Delete)
	if h.updater != nil {
		r.Put("/links/{ref}", h.Update)
		r.Patch("/links/{ref}", h.Update)
	}
}

// List returns the whole collection.
// GET /api/links
//
// @Summary      List links
// @Description  Returns every link. The file backend keeps insertion order; the SQL backend returns newest first.
// @Tags         Links
// @Produce      json
// @Success      200  {array}   store.Link
// @Failure      500  {object}  ErrorResponse
// @Router       /links [get]
func (h *linksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	links, err := h.links.List(r.Context())
	observe("list", start, err)
	if err != nil {
		writeStoreError(w, h.log, "list", err)
		return
	}
	metrics.LinksTotal.Set(float64(len(links)))
	writeJSON(w, http.StatusOK, links)
}

// Create appends a new link.
// POST /api/links
//
// @Summary      Create a link
// @Description  Title and url are required. An empty emoji becomes the default link emoji.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        body  body      CreateLinkRequest  true  "Link to create"
// @Success      200   {object}  LinkMutationResponse  "file backend"
// @Success      201   {object}  LinkMutationResponse  "SQL backend"
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /links [post]
func (h *linksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	link, err := h.links.Create(r.Context(), req)
	observe("create", start, err)
	if err != nil {
		writeStoreError(w, h.log, "create", err)
		return
	}

	h.log.WithField("title", link.Title).Debug("link created")
	status := http.StatusOK
	if h.updater != nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, LinkMutationResponse{Success: true, Link: link})
}

// Update changes the supplied fields of a link.
// PUT /api/links/{ref}
// PATCH /api/links/{ref}
//
// @Summary      Update a link
// @Description  Only available on the SQL backend. Omitted fields keep their stored value.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        ref   path      string             true  "Link id"
// @Param        body  body      UpdateLinkRequest  true  "Fields to change"
// @Success      200   {object}  LinkMutationResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /links/{ref} [put]
// @Router       /links/{ref} [patch]
func (h *linksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var req UpdateLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	link, err := h.updater.Update(r.Context(), ref, req)
	observe("update", start, err)
	if err != nil {
		writeStoreError(w, h.log, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, LinkMutationResponse{Success: true, Link: link})
}

// Delete removes a link and echoes it back.
// DELETE /api/links/{ref}
//
// @Summary      Delete a link
// @Description  ref is a zero-based position on the file backend and a link id on the SQL backend.
// @Tags         Links
// @Produce      json
// @Param        ref  path      string  true  "Link position or id"
// @Success      200  {object}  LinkMutationResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /links/{ref} [delete]
func (h *linksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	start := time.Now()
	link, err := h.links.Delete(r.Context(), ref)
	observe("delete", start, err)
	if err != nil {
		writeStoreError(w, h.log, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, LinkMutationResponse{Success: true, Link: link})
}

// decodeBody reads a JSON object into v. An empty body decodes as {} so
// missing fields surface as validation errors rather than a parse error.
// It writes a 400 and returns false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
	return false
}

// observe records the outcome and latency of one store call.
func observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case store.IsValidation(err):
		result = "invalid"
	case errors.Is(err, store.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(op, result).Inc()
	metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
