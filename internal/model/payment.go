package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod enum constants
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// PaymentStatus enum constants
const (
	PaymentCompleted = "COMPLETED"
	PaymentPending   = "PENDING"
)

// PaymentType classifies ledger rows. Sign is +1 for income and -1 for
// expense (e.g. rental fee vs. deposit refund).
type PaymentType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Sign      int       `gorm:"not null;default:1" json:"sign"` // +1 income, -1 expense
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *PaymentType) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PaymentRecord is one append-only ledger row. Rows are created in
// batches when a contract closes and are never updated or deleted.
type PaymentRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract      *Contract       `gorm:"foreignKey:ContractID" json:"-"`
	PaymentTypeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"payment_type_id"`
	PaymentType   *PaymentType    `gorm:"foreignKey:PaymentTypeID" json:"payment_type,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null" json:"currency"`
	Method        string          `gorm:"type:varchar(20);not null" json:"method"` // CASH, CARD, TRANSFER
	Status        string          `gorm:"type:varchar(20);not null;default:'COMPLETED'" json:"status"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
