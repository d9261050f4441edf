package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TierRepository interface {
	Create(ctx context.Context, tier *model.RentalDurationTier) error
	CreateBatch(ctx context.Context, tiers []model.RentalDurationTier) error
	Update(ctx context.Context, tier *model.RentalDurationTier) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RentalDurationTier, error)
	ListOrdered(ctx context.Context) ([]model.RentalDurationTier, error)
	Count(ctx context.Context) (int64, error)
}

type tierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) Create(ctx context.Context, tier *model.RentalDurationTier) error {
	return GetDB(ctx, r.db).Create(tier).Error
}

func (r *tierRepository) CreateBatch(ctx context.Context, tiers []model.RentalDurationTier) error {
	return GetDB(ctx, r.db).Create(&tiers).Error
}

func (r *tierRepository) Update(ctx context.Context, tier *model.RentalDurationTier) error {
	return GetDB(ctx, r.db).Save(tier).Error
}

func (r *tierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RentalDurationTier{}).Error
}

func (r *tierRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RentalDurationTier, error) {
	var tier model.RentalDurationTier
	if err := GetDB(ctx, r.db).First(&tier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *tierRepository) ListOrdered(ctx context.Context) ([]model.RentalDurationTier, error) {
	var tiers []model.RentalDurationTier
	if err := GetDB(ctx, r.db).Order("min_days asc").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *tierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.RentalDurationTier{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
