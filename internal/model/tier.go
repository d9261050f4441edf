package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentalDurationTier is one contiguous day-count range with a price
// multiplier. The stored set must partition [1, ∞): sorted by MinDays the
// ranges are gapless and non-overlapping, and exactly the last tier has
// MaxDays = NULL (unbounded tail).
type RentalDurationTier struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RangeName       string          `gorm:"type:varchar(100);not null" json:"range_name"`
	MinDays         int             `gorm:"not null" json:"min_days"`
	MaxDays         *int            `gorm:"" json:"max_days"` // NULL = unbounded
	PriceMultiplier decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"price_multiplier"`
	DiscountLabel   string          `gorm:"type:varchar(100)" json:"discount_label"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *RentalDurationTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Covers reports whether the given rental length falls inside this tier.
func (t *RentalDurationTier) Covers(days int) bool {
	if days < t.MinDays {
		return false
	}
	return t.MaxDays == nil || days <= *t.MaxDays
}
