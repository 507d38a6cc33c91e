package repository

import (
	"context"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/storage"
	"github.com/rs/zerolog"
)

// BadgeRepository reads the immutable badge catalog.
type BadgeRepository interface {
	List(ctx context.Context) ([]models.Badge, error)
}

type badgeRepository struct {
	store  *storage.Store
	logger zerolog.Logger
}

func NewBadgeRepository(store *storage.Store, logger zerolog.Logger) BadgeRepository {
	return &badgeRepository{store: store, logger: logger}
}

func (r *badgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.store.View(ctx, func(data *models.Database) error {
		badges = append(badges, data.Badges...)
		return nil
	})
	return badges, err
}
