package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrTeacherOnly         = errors.New("teacher only")
	ErrInvalidValidateType = errors.New("invalid validation type")
)

// ValidationService flips the validated flag on a case or research
// entry. Teacher identity is required.
type ValidationService interface {
	Validate(ctx context.Context, role models.Role, itemType, id string) error
}

type validationService struct {
	caseRepo repository.CaseRepository
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewValidationService(caseRepo repository.CaseRepository, userRepo repository.UserRepository, logger zerolog.Logger) ValidationService {
	return &validationService{caseRepo: caseRepo, userRepo: userRepo, logger: logger}
}

func (s *validationService) Validate(ctx context.Context, role models.Role, itemType, id string) error {
	if role != models.RoleTeacher {
		return ErrTeacherOnly
	}

	switch itemType {
	case "case":
		found, err := s.caseRepo.MarkValidated(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to validate case: %w", err)
		}
		if !found {
			return ErrCaseNotFound
		}
	case "research":
		found, err := s.userRepo.MarkResearchValidated(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to validate research: %w", err)
		}
		if !found {
			return ErrResearchNotFound
		}
	default:
		return ErrInvalidValidateType
	}

	s.logger.Info().Str("type", itemType).Str("id", id).Msg("Item validated")
	return nil
}
