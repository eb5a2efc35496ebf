package api

import (
	"net/http"

	"github.com/carscope/carscope/internal/company"
)

type createCompanyRequest struct {
	Name string `json:"name"`
}

type addInspectorRequest struct {
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Role        company.Role `json:"role,omitempty"`
}

func (h *Handler) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.companies.CreateCompany(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	list, err := h.companies.ListCompanies(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []company.Company{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleListInspectors(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(w, r, "companyID")
	if !ok {
		return
	}
	list, err := h.companies.ListInspectors(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []company.Inspector{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleAddInspector(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(w, r, "companyID")
	if !ok {
		return
	}
	var req addInspectorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := h.companies.GetCompany(r.Context(), companyID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := h.companies.AddInspector(r.Context(), companyID, req.Email, req.DisplayName, req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}
