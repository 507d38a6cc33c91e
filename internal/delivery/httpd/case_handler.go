package httpd

import (
	"net/http"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req models.CreateCaseRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.caseService.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCases(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	cases, err := h.caseService.List(r.Context(), claims.UserID, claims.Role)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if cases == nil {
		cases = []models.Case{}
	}

	utils.WriteJSON(w, http.StatusOK, cases)
}

func (h *Handler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	caseID := chi.URLParam(r, "id")
	if caseID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Case ID is required")
		return
	}

	if err := h.caseService.Delete(r.Context(), caseID, claims.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
