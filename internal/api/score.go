package api

import (
	"io"
	"net/http"

	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

type scoreResponse struct {
	*scoring.ScoreOutput
	Grade      scoring.Grade     `json:"grade"`
	GradeColor string            `json:"grade_color"`
	Counts     *checklist.Counts `json:"counts,omitempty"`
}

func newScoreResponse(report *surface.Report) scoreResponse {
	return scoreResponse{
		ScoreOutput: report.Output,
		Grade:       report.Grade,
		GradeColor:  scoring.GradeColor(report.Grade).Hex(),
		Counts:      report.Counts,
	}
}

// handleScore scores a raw engine input or an inspection form without storing anything.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := inspection.ScoreDocument(h.scorer, data, inspection.FormatJSON, inspection.DocumentOptions{
		Template: h.template,
		Now:      h.now(),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newScoreResponse(report))
}

func (h *Handler) handleDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := h.template
	if tmpl == nil {
		tmpl = checklist.Default()
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// handleWorkDoneOptions lists the repair history choices offered for an item type.
func (h *Handler) handleWorkDoneOptions(w http.ResponseWriter, r *http.Request) {
	t := scoring.ItemType(r.PathValue("itemType"))
	if !t.Valid() {
		writeError(w, http.StatusNotFound, "unknown item type")
		return
	}
	opts := checklist.WorkDoneOptions(t)
	if opts == nil {
		opts = []string{}
	}
	writeJSON(w, http.StatusOK, opts)
}
