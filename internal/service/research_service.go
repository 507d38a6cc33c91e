package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidResearchType   = errors.New("invalid research type")
	ErrInvalidResearchStatus = errors.New("invalid research status")
	ErrResearchNotFound      = errors.New("research not found")
)

type ResearchService interface {
	Create(ctx context.Context, userID string, req *models.CreateResearchRequest) (*models.CreateResearchResponse, error)
	List(ctx context.Context, userID string) ([]models.Research, error)
}

type researchService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewResearchService(userRepo repository.UserRepository, logger zerolog.Logger) ResearchService {
	return &researchService{userRepo: userRepo, logger: logger}
}

// Create stores a research entry on the owning user. Research never
// touches quota, streaks or badges.
func (s *researchService) Create(ctx context.Context, userID string, req *models.CreateResearchRequest) (*models.CreateResearchResponse, error) {
	if !models.IsValidResearchType(req.Type) {
		return nil, ErrInvalidResearchType
	}
	if !models.IsValidResearchStatus(req.Status) {
		return nil, ErrInvalidResearchStatus
	}

	research := &models.Research{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Type:        models.ResearchType(req.Type),
		Description: req.Description,
		Status:      models.ResearchStatus(req.Status),
		ClientRef:   req.ClientRef,
		CreatedAt:   time.Now().UTC(),
	}

	stored, err := s.userRepo.AppendResearch(ctx, userID, research)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create research: %w", err)
	}

	s.logger.Info().
		Str("research_id", stored.ID).
		Str("user_id", userID).
		Str("type", req.Type).
		Msg("Research created")

	return &models.CreateResearchResponse{Success: true, Research: stored}, nil
}

func (s *researchService) List(ctx context.Context, userID string) ([]models.Research, error) {
	return s.userRepo.ListResearch(ctx, userID)
}
