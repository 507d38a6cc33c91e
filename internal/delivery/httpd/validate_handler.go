package httpd

import (
	"net/http"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ValidateItem(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	itemType := chi.URLParam(r, "type")
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	if err := h.validationService.Validate(r.Context(), claims.Role, itemType, itemID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
