package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dentaltrack/student-progress/internal/auth"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email")
)

type AuthService interface {
	Login(ctx context.Context, email string) (*models.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   string
	issuer   string
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, secret, issuer string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   secret,
		issuer:   issuer,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login looks the user up by email and issues a bearer token carrying
// id, role and name.
func (s *authService) Login(ctx context.Context, email string) (*models.LoginResponse, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidEmail
	}

	token, err := auth.NewToken(s.secret, s.issuer, s.tokenTTL, auth.Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Login successful")

	return &models.LoginResponse{Token: token, User: user}, nil
}
