package httpd

import (
	"net/http"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/pkg/utils"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	dashboard, err := h.dashboardService.Get(r.Context(), claims.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dashboard)
}
