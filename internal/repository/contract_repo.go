package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract) error
	Save(ctx context.Context, contract *model.Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	List(ctx context.Context, companyID *uuid.UUID, status string, page, limit int) ([]model.Contract, int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return GetDB(ctx, r.db).Create(contract).Error
}

func (r *contractRepository) Save(ctx context.Context, contract *model.Contract) error {
	return GetDB(ctx, r.db).Save(contract).Error
}

func (r *contractRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := GetDB(ctx, r.db).
		Preload("CompanyCar").
		Preload("Client").
		First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindByIDForUpdate locks the contract row for the duration of the
// surrounding transaction. The close path uses it so two concurrent
// closes serialize on the row and the second one sees CLOSED.
func (r *contractRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := lockForUpdate(GetDB(ctx, r.db)).
		First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context, companyID *uuid.UUID, status string, page, limit int) ([]model.Contract, int64, error) {
	var contracts []model.Contract
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Contract{})
	if companyID != nil {
		db = db.Joins("JOIN company_cars ON company_cars.id = contracts.company_car_id").
			Where("company_cars.company_id = ?", *companyID)
	}
	if status != "" {
		db = db.Where("contracts.status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("CompanyCar").Preload("Client").
		Order("contracts.created_at desc").Offset(offset).Limit(limit).
		Find(&contracts).Error; err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}
