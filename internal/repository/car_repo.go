package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarRepository is the CarAvailability collaborator: the contract
// lifecycle flips the status column through it. The reason accompanies
// the transition into the audit trail written by the caller.
type CarRepository interface {
	Create(ctx context.Context, car *model.CompanyCar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CompanyCar, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.CompanyCar, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.CompanyCar, int64, error)
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.CompanyCar) error {
	return GetDB(ctx, r.db).Create(car).Error
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CompanyCar, error) {
	var car model.CompanyCar
	if err := GetDB(ctx, r.db).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.CompanyCar, error) {
	var car model.CompanyCar
	if err := lockForUpdate(GetDB(ctx, r.db)).
		First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error {
	return GetDB(ctx, r.db).Model(&model.CompanyCar{}).Where("id = ?", id).Update("status", status).Error
}

func (r *carRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, page, limit int) ([]model.CompanyCar, int64, error) {
	var cars []model.CompanyCar
	var total int64

	db := GetDB(ctx, r.db).Model(&model.CompanyCar{}).Where("company_id = ?", companyID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&cars).Error; err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}
