package database

import (
	"rentalops/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates the core models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.CompanySettings{},
		&model.CompanyCar{},
		&model.Client{},
		&model.District{},
		&model.RentalDurationTier{},
		&model.SeasonDefinition{},
		&model.Contract{},
		&model.PaymentType{},
		&model.PaymentRecord{},
		&model.AuditLog{},
	)
}
