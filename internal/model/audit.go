package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateTier = "CREATE_DURATION_TIER"
	ActionUpdateTier = "UPDATE_DURATION_TIER"
	ActionDeleteTier = "DELETE_DURATION_TIER"
	ActionSeedTiers  = "SEED_DURATION_TIERS"

	ActionCreateContract   = "CREATE_CONTRACT"
	ActionActivateContract = "ACTIVATE_CONTRACT"
	ActionCloseContract    = "CLOSE_CONTRACT"
	ActionCancelContract   = "CANCEL_CONTRACT"

	ActionCreateSeason = "CREATE_SEASON"
)

// AuditLog tracks Who, What, and When for critical changes, with
// before/after snapshots of the mutated fields.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	EntityType string     `gorm:"type:varchar(50);not null;index" json:"entity_type"` // contract, duration_tier, ...
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	Before     string     `gorm:"type:jsonb" json:"before"` // Serialized JSON snapshot pre-change
	After      string     `gorm:"type:jsonb" json:"after"`  // Serialized JSON snapshot post-change
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
