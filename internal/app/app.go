package app

import (
	"context"
	"net/http"
	"time"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/internal/config"
	"github.com/dentaltrack/student-progress/internal/delivery/httpd"
	"github.com/dentaltrack/student-progress/internal/repository"
	"github.com/dentaltrack/student-progress/internal/service"
	"github.com/dentaltrack/student-progress/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	store  *storage.Store
}

func New(cfg *config.Config, log zerolog.Logger, store *storage.Store) (*App, error) {
	userRepo := repository.NewUserRepository(store, log)
	caseRepo := repository.NewCaseRepository(store, log)
	badgeRepo := repository.NewBadgeRepository(store, log)

	authService := service.NewAuthService(userRepo, cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, log)
	caseService := service.NewCaseService(caseRepo, userRepo, badgeRepo, log)
	researchService := service.NewResearchService(userRepo, log)
	dashboardService := service.NewDashboardService(caseRepo, userRepo, badgeRepo, log)
	validationService := service.NewValidationService(caseRepo, userRepo, log)

	handler := httpd.NewHandler(
		authService,
		caseService,
		researchService,
		dashboardService,
		validationService,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router, auth.Middleware(cfg.Auth.Secret, log))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		store:  store,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting student progress service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down student progress service...")
	return a.server.Shutdown(ctx)
}
