package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DistrictRepository is the DistrictPricing collaborator: a delivery
// district resolves to its flat delivery fee.
type DistrictRepository interface {
	Create(ctx context.Context, district *model.District) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.District, error)
}

type districtRepository struct {
	db *gorm.DB
}

func NewDistrictRepository(db *gorm.DB) DistrictRepository {
	return &districtRepository{db: db}
}

func (r *districtRepository) Create(ctx context.Context, district *model.District) error {
	return GetDB(ctx, r.db).Create(district).Error
}

func (r *districtRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.District, error) {
	var district model.District
	if err := GetDB(ctx, r.db).First(&district, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &district, nil
}
