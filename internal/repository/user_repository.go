package repository

import (
	"context"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/storage"
	"github.com/rs/zerolog"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListStudents(ctx context.Context) ([]models.User, error)
	ListResearch(ctx context.Context, userID string) ([]models.Research, error)
	AppendResearch(ctx context.Context, userID string, research *models.Research) (*models.Research, error)
	MarkResearchValidated(ctx context.Context, researchID string) (bool, error)
}

type userRepository struct {
	store  *storage.Store
	logger zerolog.Logger
}

func NewUserRepository(store *storage.Store, logger zerolog.Logger) UserRepository {
	return &userRepository{store: store, logger: logger}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user *models.User
	err := r.store.View(ctx, func(data *models.Database) error {
		if u := data.FindUser(id); u != nil {
			copied := *u
			user = &copied
		}
		return nil
	})
	return user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.store.View(ctx, func(data *models.Database) error {
		if u := data.FindUserByEmail(email); u != nil {
			copied := *u
			user = &copied
		}
		return nil
	})
	return user, err
}

func (r *userRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	var students []models.User
	err := r.store.View(ctx, func(data *models.Database) error {
		for _, u := range data.Users {
			if u.Role == models.RoleStudent {
				students = append(students, u)
			}
		}
		return nil
	})
	return students, err
}

func (r *userRepository) ListResearch(ctx context.Context, userID string) ([]models.Research, error) {
	var research []models.Research
	err := r.store.View(ctx, func(data *models.Database) error {
		u := data.FindUser(userID)
		if u == nil || u.StudentProfile == nil {
			return nil
		}
		research = append(research, u.Research...)
		return nil
	})
	return research, err
}

// AppendResearch adds a research entry to the owning user. When the
// entry carries a client ref already present on that user, the stored
// entry is returned instead and nothing is written.
func (r *userRepository) AppendResearch(ctx context.Context, userID string, research *models.Research) (*models.Research, error) {
	var result *models.Research
	err := r.store.Update(ctx, func(data *models.Database) error {
		u := data.FindUser(userID)
		if u == nil {
			return ErrNotFound
		}
		if u.StudentProfile == nil {
			u.StudentProfile = &models.StudentProfile{Badges: []string{}}
		}
		if research.ClientRef != "" {
			for i := range u.Research {
				if u.Research[i].ClientRef == research.ClientRef {
					copied := u.Research[i]
					result = &copied
					return nil
				}
			}
		}
		u.Research = append(u.Research, *research)
		copied := *research
		result = &copied
		return nil
	})
	return result, err
}

// MarkResearchValidated searches every user's research for the given id.
func (r *userRepository) MarkResearchValidated(ctx context.Context, researchID string) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(data *models.Database) error {
		for i := range data.Users {
			u := &data.Users[i]
			if u.StudentProfile == nil {
				continue
			}
			for j := range u.Research {
				if u.Research[j].ID == researchID {
					u.Research[j].Validated = true
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}
