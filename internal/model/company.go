package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company owns a fleet of cars and a pricing configuration.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'THB'" json:"currency"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanySettings holds the per-company add-on price list consumed by the
// pricing calculator.
type CompanySettings struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"company_id"`
	Company              *Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	FullInsuranceMinPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"full_insurance_min_price"` // per day
	BabySeatPricePerDay  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"baby_seat_price_per_day"`
	IslandTripPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"island_trip_price"` // flat
	KrabiTripPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"krabi_trip_price"`  // flat
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
