// Package api implements the hosted Carscope REST API.
// It provides scoring, inspection and report-share endpoints backed by
// Postgres and blob storage.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/carscope/carscope/internal/company"
	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/pkg/checklist"
)

// maxBodyBytes bounds request bodies; a full form with a custom template fits comfortably.
const maxBodyBytes = 1 << 20

// Handler is the top-level API handler for the hosted Carscope service.
type Handler struct {
	inspections *inspection.Service
	companies   *company.Service
	scorer      inspection.Scorer
	template    *checklist.Template
	cache       *ReportCache
	now         func() time.Time
}

// NewHandler creates a new API handler. A nil template means the built-in
// default checklist.
func NewHandler(inspections *inspection.Service, companies *company.Service, scorer inspection.Scorer, tmpl *checklist.Template, cache *ReportCache) *Handler {
	if cache == nil {
		cache = NewReportCache(0)
	}
	return &Handler{
		inspections: inspections,
		companies:   companies,
		scorer:      scorer,
		template:    tmpl,
		cache:       cache,
		now:         time.Now,
	}
}

// RegisterScoringRoutes registers the stateless endpoints, which need no
// database.
func (h *Handler) RegisterScoringRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/score", h.handleScore)
	mux.HandleFunc("GET /api/v1/templates/default", h.handleDefaultTemplate)
	mux.HandleFunc("GET /api/v1/work-done/{itemType}", h.handleWorkDoneOptions)
}

// RegisterRoutes registers all authenticated API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	h.RegisterScoringRoutes(mux)

	// Companies
	mux.HandleFunc("POST /api/companies", h.handleCreateCompany)
	mux.HandleFunc("GET /api/companies", h.handleListCompanies)
	mux.HandleFunc("GET /api/companies/{companyID}/inspectors", h.handleListInspectors)
	mux.HandleFunc("POST /api/companies/{companyID}/inspectors", h.handleAddInspector)

	// Inspections
	mux.HandleFunc("POST /api/inspections", h.handleCreateInspection)
	mux.HandleFunc("GET /api/inspections", h.handleListInspections)
	mux.HandleFunc("GET /api/inspections/{id}", h.handleGetInspection)
	mux.HandleFunc("PUT /api/inspections/{id}", h.handleSaveInspection)
	mux.HandleFunc("GET /api/inspections/{id}/summary", h.handleInspectionSummary)
	mux.HandleFunc("POST /api/inspections/{id}/finalize", h.handleFinalize)
	mux.HandleFunc("POST /api/inspections/{id}/reopen", h.handleReopen)
	mux.HandleFunc("GET /api/inspections/{id}/revisions", h.handleListRevisions)
	mux.HandleFunc("GET /api/inspections/{id}/revisions/{n}", h.handleGetRevision)
	mux.HandleFunc("POST /api/inspections/{id}/shares", h.handleCreateShare)
}

// RegisterPublicRoutes registers unauthenticated routes. Callers are expected
// to wrap them with RateLimit.
func (h *Handler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /r/{token}", h.handlePublicReport)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, inspection.ErrInvalidForm),
		errors.Is(err, company.ErrInvalidName),
		errors.Is(err, company.ErrInvalidEmail),
		errors.Is(err, company.ErrInvalidRole),
		errors.Is(err, company.ErrForeignInspector):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, company.ErrReadOnly):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, inspection.ErrNotFound),
		errors.Is(err, company.ErrNotFound),
		errors.Is(err, inspection.ErrBlobNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, inspection.ErrFinalized),
		errors.Is(err, company.ErrExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeOptionalBody is decodeBody for endpoints whose body may be omitted.
// An empty body, chunked or not, leaves v untouched.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID returns a UUID path value, answering 404 for anything malformed so
// bad IDs never reach Postgres.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if err := uuid.Validate(id); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return id, true
}
