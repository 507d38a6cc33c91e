package httpd

import (
	"errors"
	"net/http"
	"time"

	"github.com/dentaltrack/student-progress/internal/service"
	"github.com/dentaltrack/student-progress/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	authService       service.AuthService
	caseService       service.CaseService
	researchService   service.ResearchService
	dashboardService  service.DashboardService
	validationService service.ValidationService
	logger            zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	caseService service.CaseService,
	researchService service.ResearchService,
	dashboardService service.DashboardService,
	validationService service.ValidationService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		caseService:       caseService,
		researchService:   researchService,
		dashboardService:  dashboardService,
		validationService: validationService,
		logger:            logger,
	}
}

// RegisterRoutes mounts the public routes and, behind authMiddleware,
// the identity-scoped ones.
func (h *Handler) RegisterRoutes(router chi.Router, authMiddleware func(http.Handler) http.Handler) {
	router.Get("/health", h.HealthCheck)
	router.Post("/auth/login", h.Login)

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.GetCases)
			r.Post("/", h.CreateCase)
			r.Delete("/{id}", h.DeleteCase)
		})

		r.Route("/research", func(r chi.Router) {
			r.Get("/", h.GetResearch)
			r.Post("/", h.CreateResearch)
		})

		r.Post("/validate/{type}/{id}", h.ValidateItem)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "student-progress",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidEmail):
		utils.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTeacherOnly):
		utils.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCaseNotFound),
		errors.Is(err, service.ErrResearchNotFound),
		errors.Is(err, service.ErrUserNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidProcedure),
		errors.Is(err, service.ErrInvalidResearchType),
		errors.Is(err, service.ErrInvalidResearchStatus),
		errors.Is(err, service.ErrInvalidValidateType),
		errors.Is(err, service.ErrStudentOnly):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
