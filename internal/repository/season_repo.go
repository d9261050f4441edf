package repository

import (
	"context"

	"rentalops/internal/model"

	"gorm.io/gorm"
)

type SeasonRepository interface {
	Create(ctx context.Context, season *model.SeasonDefinition) error
	List(ctx context.Context) ([]model.SeasonDefinition, error)
}

type seasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) Create(ctx context.Context, season *model.SeasonDefinition) error {
	return GetDB(ctx, r.db).Create(season).Error
}

func (r *seasonRepository) List(ctx context.Context) ([]model.SeasonDefinition, error) {
	var seasons []model.SeasonDefinition
	if err := GetDB(ctx, r.db).Order("created_at asc").Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}
