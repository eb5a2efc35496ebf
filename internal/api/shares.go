package api

import (
	"net/http"

	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/pkg/surface"
)

type createShareRequest struct {
	Profile  string `json:"profile,omitempty"`
	AllowPDF bool   `json:"allow_pdf,omitempty"`
}

type publicReportResponse struct {
	Code     string           `json:"code"`
	Status   string           `json:"status"`
	Profile  string           `json:"profile"`
	AllowPDF bool             `json:"allow_pdf"`
	Summary  *surface.Summary `json:"summary"`
}

func (h *Handler) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req createShareRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	sh, err := h.inspections.CreateShare(r.Context(), id, req.Profile, req.AllowPDF)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sh)
}

// handlePublicReport serves the report summary behind a share token.
func (h *Handler) handlePublicReport(w http.ResponseWriter, r *http.Request) {
	sh, ins, err := h.inspections.ResolveShare(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	summary, err := h.summary(r, ins)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicReportResponse{
		Code:     ins.Code,
		Status:   string(ins.Status),
		Profile:  sh.Profile,
		AllowPDF: sh.AllowPDF,
		Summary:  summary,
	})
}

func (h *Handler) writeSummary(w http.ResponseWriter, r *http.Request, ins *inspection.Inspection) {
	summary, err := h.summary(r, ins)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
