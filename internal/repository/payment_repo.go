package repository

import (
	"context"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository is the PaymentLedger collaborator. Rows are
// append-only: there is deliberately no update or delete.
type PaymentRepository interface {
	CreateBatch(ctx context.Context, records []model.PaymentRecord) error
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.PaymentRecord, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateBatch(ctx context.Context, records []model.PaymentRecord) error {
	if len(records) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&records).Error
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	if err := GetDB(ctx, r.db).
		Preload("PaymentType").
		Where("contract_id = ?", contractID).
		Order("created_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
