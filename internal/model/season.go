package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeasonDefinition is a recurring month-day range with a price
// coefficient (1.0 = baseline). Ranges may wrap the year end
// (e.g. Nov 1 – Feb 28 for high season).
type SeasonDefinition struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	StartMonth       int             `gorm:"not null" json:"start_month"`
	StartDay         int             `gorm:"not null" json:"start_day"`
	EndMonth         int             `gorm:"not null" json:"end_month"`
	EndDay           int             `gorm:"not null" json:"end_day"`
	PriceCoefficient decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"price_coefficient"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *SeasonDefinition) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Contains reports whether the given date falls inside the recurring
// month-day range, handling ranges that wrap the year end.
func (s *SeasonDefinition) Contains(date time.Time) bool {
	md := int(date.Month())*100 + date.Day()
	start := s.StartMonth*100 + s.StartDay
	end := s.EndMonth*100 + s.EndDay

	if start <= end {
		return md >= start && md <= end
	}
	// Wrapping range, e.g. Nov 1 – Feb 28
	return md >= start || md <= end
}
