package repository

import (
	"context"
	"encoding/json"

	"rentalops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository is the AuditLogger collaborator: before/after change
// records for critical mutations. Record joins the caller's transaction
// so an audit write failure rolls the whole operation back.
type AuditRepository interface {
	Record(ctx context.Context, entityType, entityID, action string, before, after interface{}, userID *uuid.UUID) error
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, entityType, entityID, action string, before, after interface{}, userID *uuid.UUID) error {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	entry := model.AuditLog{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Before:     string(beforeJSON),
		After:      string(afterJSON),
	}
	return GetDB(ctx, r.db).Create(&entry).Error
}

func (r *auditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
