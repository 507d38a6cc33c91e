package httpd

import (
	"net/http"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/pkg/utils"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
