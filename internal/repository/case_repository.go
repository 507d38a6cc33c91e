package repository

import (
	"context"
	"errors"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/storage"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned by write operations whose target entity does
// not exist. Read operations return nil instead.
var ErrNotFound = errors.New("entity not found")

type CaseRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Case, error)
	ListAll(ctx context.Context) ([]models.Case, error)
	CountByStudent(ctx context.Context, studentID string) (int, error)
	// Create appends the case and applies applyOwner to the owning user
	// in the same atomic update. When the case carries a client ref the
	// owner already submitted, the stored duplicate is returned and
	// nothing is written.
	Create(ctx context.Context, kase *models.Case, applyOwner func(owner *models.User)) (created *models.Case, duplicate bool, err error)
	// Delete removes the case when it exists and is owned by studentID,
	// applying onDeleted to the owner atomically with the removal.
	Delete(ctx context.Context, id, studentID string, onDeleted func(owner *models.User)) error
	MarkValidated(ctx context.Context, id string) (bool, error)
}

type caseRepository struct {
	store  *storage.Store
	logger zerolog.Logger
}

func NewCaseRepository(store *storage.Store, logger zerolog.Logger) CaseRepository {
	return &caseRepository{store: store, logger: logger}
}

func (r *caseRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Case, error) {
	var cases []models.Case
	err := r.store.View(ctx, func(data *models.Database) error {
		for _, c := range data.Cases {
			if c.StudentID == studentID {
				cases = append(cases, c)
			}
		}
		return nil
	})
	return cases, err
}

func (r *caseRepository) ListAll(ctx context.Context) ([]models.Case, error) {
	var cases []models.Case
	err := r.store.View(ctx, func(data *models.Database) error {
		cases = append(cases, data.Cases...)
		return nil
	})
	return cases, err
}

func (r *caseRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	count := 0
	err := r.store.View(ctx, func(data *models.Database) error {
		for _, c := range data.Cases {
			if c.StudentID == studentID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *caseRepository) Create(ctx context.Context, kase *models.Case, applyOwner func(owner *models.User)) (*models.Case, bool, error) {
	var created *models.Case
	duplicate := false
	err := r.store.Update(ctx, func(data *models.Database) error {
		owner := data.FindUser(kase.StudentID)
		if owner == nil {
			return ErrNotFound
		}
		if kase.ClientRef != "" {
			for i := range data.Cases {
				if data.Cases[i].StudentID == kase.StudentID && data.Cases[i].ClientRef == kase.ClientRef {
					copied := data.Cases[i]
					created = &copied
					duplicate = true
					return nil
				}
			}
		}
		data.Cases = append(data.Cases, *kase)
		if applyOwner != nil {
			applyOwner(owner)
		}
		copied := *kase
		created = &copied
		return nil
	})
	return created, duplicate, err
}

func (r *caseRepository) Delete(ctx context.Context, id, studentID string, onDeleted func(owner *models.User)) error {
	return r.store.Update(ctx, func(data *models.Database) error {
		for i := range data.Cases {
			if data.Cases[i].ID == id && data.Cases[i].StudentID == studentID {
				data.Cases = append(data.Cases[:i], data.Cases[i+1:]...)
				if owner := data.FindUser(studentID); owner != nil && onDeleted != nil {
					onDeleted(owner)
				}
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r *caseRepository) MarkValidated(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(data *models.Database) error {
		if c := data.FindCase(id); c != nil {
			c.Validated = true
			found = true
		}
		return nil
	})
	return found, err
}
