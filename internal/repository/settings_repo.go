package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsRepository is the CompanySettingsProvider collaborator.
type SettingsRepository interface {
	Create(ctx context.Context, settings *model.CompanySettings) error
	GetByCompany(ctx context.Context, companyID uuid.UUID) (*model.CompanySettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Create(ctx context.Context, settings *model.CompanySettings) error {
	return GetDB(ctx, r.db).Create(settings).Error
}

func (r *settingsRepository) GetByCompany(ctx context.Context, companyID uuid.UUID) (*model.CompanySettings, error) {
	var settings model.CompanySettings
	if err := GetDB(ctx, r.db).Preload("Company").First(&settings, "company_id = ?", companyID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
