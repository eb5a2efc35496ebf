package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/carscope/carscope/internal/inspection"
)

type createInspectionRequest struct {
	CompanyID   string `json:"company_id"`
	InspectorID string `json:"inspector_id,omitempty"`
	inspection.Form
}

func (h *Handler) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var req createInspectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if uuid.Validate(req.CompanyID) != nil {
		writeError(w, http.StatusBadRequest, "company_id must be a UUID")
		return
	}
	if req.InspectorID != "" && uuid.Validate(req.InspectorID) != nil {
		writeError(w, http.StatusBadRequest, "inspector_id must be a UUID")
		return
	}

	ins, err := h.inspections.Create(r.Context(), req.CompanyID, req.InspectorID, req.Form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ins)
}

func (h *Handler) handleListInspections(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if uuid.Validate(companyID) != nil {
		writeError(w, http.StatusBadRequest, "company_id query parameter must be a UUID")
		return
	}

	list, err := h.inspections.List(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []inspection.Inspection{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ins, err := h.inspections.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (h *Handler) handleSaveInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form inspection.Form
	if !decodeBody(w, r, &form) {
		return
	}

	ins, err := h.inspections.Save(r.Context(), id, form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (h *Handler) handleInspectionSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ins, err := h.inspections.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSummary(w, r, ins)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rev, err := h.inspections.Finalize(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (h *Handler) handleReopen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ins, err := h.inspections.Reopen(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (h *Handler) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	revs, err := h.inspections.ListRevisions(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if revs == nil {
		revs = []inspection.Revision{}
	}
	writeJSON(w, http.StatusOK, revs)
}

func (h *Handler) handleGetRevision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "revision must be a positive integer")
		return
	}

	snap, err := h.inspections.GetRevision(r.Context(), id, n)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
