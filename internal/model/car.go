package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CarStatus enum constants
const (
	CarAvailable   = "AVAILABLE"
	CarBooked      = "BOOKED"
	CarRented      = "RENTED"
	CarMaintenance = "MAINTENANCE"
)

// CompanyCar is a rentable vehicle. Status is mutated only by the
// contract lifecycle (and maintenance flows outside this service).
type CompanyCar struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Make        string          `gorm:"type:varchar(100);not null" json:"make"`
	Model       string          `gorm:"type:varchar(100);not null" json:"model"`
	PlateNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"plate_number"`
	PricePerDay decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price_per_day"`
	Deposit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deposit"`
	Status      string          `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"` // AVAILABLE, BOOKED, RENTED, MAINTENANCE
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CompanyCar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
