package httpd

import (
	"net/http"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/pkg/utils"
)

func (h *Handler) CreateResearch(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req models.CreateResearchRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.researchService.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetResearch(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	research, err := h.researchService.List(r.Context(), claims.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if research == nil {
		research = []models.Research{}
	}

	utils.WriteJSON(w, http.StatusOK, research)
}
