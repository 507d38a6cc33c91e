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
	ErrUserNotFound     = errors.New("user not found")
	ErrStudentOnly      = errors.New("student account required")
	ErrCaseNotFound     = errors.New("case not found")
	ErrInvalidProcedure = errors.New("invalid procedure")
)

type CaseService interface {
	Create(ctx context.Context, studentID string, req *models.CreateCaseRequest) (*models.CreateCaseResponse, error)
	List(ctx context.Context, userID string, role models.Role) ([]models.Case, error)
	Delete(ctx context.Context, id, studentID string) error
}

type caseService struct {
	caseRepo  repository.CaseRepository
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
	logger    zerolog.Logger
}

func NewCaseService(
	caseRepo repository.CaseRepository,
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	logger zerolog.Logger,
) CaseService {
	return &caseService{
		caseRepo:  caseRepo,
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		logger:    logger,
	}
}

func (s *caseService) Create(ctx context.Context, studentID string, req *models.CreateCaseRequest) (*models.CreateCaseResponse, error) {
	if !models.IsValidProcedure(req.Procedure) {
		return nil, ErrInvalidProcedure
	}

	owner, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}
	if !owner.IsStudent() {
		return nil, ErrStudentOnly
	}

	// The catalog is immutable, so reading it outside the update is safe.
	catalog, err := s.badgeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	kase := &models.Case{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		Procedure:  models.Procedure(req.Procedure),
		PatientAge: req.PatientAge,
		Notes:      req.Notes,
		ClientRef:  req.ClientRef,
		CreatedAt:  time.Now().UTC(),
	}

	var earned []models.Badge
	created, duplicate, err := s.caseRepo.Create(ctx, kase, func(owner *models.User) {
		earned = ApplyCaseCreated(owner, kase.Procedure, catalog)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	if duplicate {
		// Replay of a write the server already accepted: no derived
		// state is touched a second time.
		s.logger.Info().
			Str("case_id", created.ID).
			Str("client_ref", created.ClientRef).
			Msg("Duplicate case submission deduplicated")
		return &models.CreateCaseResponse{Success: true, Case: created, NewBadges: []string{}}, nil
	}

	names := make([]string, 0, len(earned))
	for _, badge := range earned {
		names = append(names, badge.Name)
	}

	s.logger.Info().
		Str("case_id", created.ID).
		Str("student_id", studentID).
		Str("procedure", req.Procedure).
		Strs("new_badges", names).
		Msg("Case created")

	return &models.CreateCaseResponse{Success: true, Case: created, NewBadges: names}, nil
}

// List returns the caller's own cases for students and every case for
// teachers.
func (s *caseService) List(ctx context.Context, userID string, role models.Role) ([]models.Case, error) {
	if role == models.RoleStudent {
		return s.caseRepo.ListByStudent(ctx, userID)
	}
	return s.caseRepo.ListAll(ctx)
}

func (s *caseService) Delete(ctx context.Context, id, studentID string) error {
	err := s.caseRepo.Delete(ctx, id, studentID, ApplyCaseDeleted)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCaseNotFound
		}
		return fmt.Errorf("failed to delete case: %w", err)
	}

	s.logger.Info().Str("case_id", id).Str("student_id", studentID).Msg("Case deleted")
	return nil
}
