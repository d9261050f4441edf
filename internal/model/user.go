package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the claim subject for API calls and the FK target of audit rows.
// Authentication itself happens outside this service — tokens arrive
// already issued.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Role      string     `gorm:"type:varchar(50);not null" json:"role"` // admin, manager, staff
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`     // nil for platform admins
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
