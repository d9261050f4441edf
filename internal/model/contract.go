package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractStatus enum constants. DRAFT is the only initial state;
// CLOSED and CANCELLED are terminal.
const (
	ContractDraft     = "DRAFT"
	ContractActive    = "ACTIVE"
	ContractClosed    = "CLOSED"
	ContractCancelled = "CANCELLED"
)

// FuelLevel enum constants (eighths of a tank).
const (
	FuelFull          = "FULL"
	FuelSevenEighths  = "SEVEN_EIGHTHS"
	FuelThreeQuarters = "THREE_QUARTERS"
	FuelFiveEighths   = "FIVE_EIGHTHS"
	FuelHalf          = "HALF"
	FuelThreeEighths  = "THREE_EIGHTHS"
	FuelQuarter       = "QUARTER"
	FuelOneEighth     = "ONE_EIGHTH"
	FuelEmpty         = "EMPTY"
)

// Cleanliness enum constants
const (
	CleanlinessClean = "CLEAN"
	CleanlinessDirty = "DIRTY"
)

// ValidFuelLevel reports whether s is one of the eighths-of-a-tank values.
func ValidFuelLevel(s string) bool {
	switch s {
	case FuelFull, FuelSevenEighths, FuelThreeQuarters, FuelFiveEighths,
		FuelHalf, FuelThreeEighths, FuelQuarter, FuelOneEighth, FuelEmpty:
		return true
	}
	return false
}

// ValidCleanliness reports whether s is CLEAN or DIRTY.
func ValidCleanliness(s string) bool {
	return s == CleanlinessClean || s == CleanlinessDirty
}

// Contract is the record of one rental agreement from booking through
// return. Rows are never deleted; terminal states are CLOSED/CANCELLED.
// Add-on and delivery prices are captured at booking time so later
// settings changes cannot drift the charged total.
type Contract struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyCarID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_car_id"`
	CompanyCar    *CompanyCar `gorm:"foreignKey:CompanyCarID" json:"company_car,omitempty"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time  `gorm:"type:date;not null" json:"end_date"`
	ActualEndDate *time.Time `gorm:"type:date" json:"actual_end_date"` // set at close

	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Currency    string          `gorm:"type:varchar(3);not null" json:"currency"`
	Status      string          `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"` // DRAFT, ACTIVE, CLOSED, CANCELLED

	FullInsurance      bool            `gorm:"not null;default:false" json:"full_insurance"`
	FullInsurancePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"full_insurance_price"`
	BabySeat           bool            `gorm:"not null;default:false" json:"baby_seat"`
	BabySeatPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"baby_seat_price"`
	IslandTrip         bool            `gorm:"not null;default:false" json:"island_trip"`
	IslandTripPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"island_trip_price"`
	KrabiTrip          bool            `gorm:"not null;default:false" json:"krabi_trip"`
	KrabiTripPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"krabi_trip_price"`

	PickupDistrictID *uuid.UUID      `gorm:"type:uuid" json:"pickup_district_id"`
	PickupHotel      string          `gorm:"type:varchar(255)" json:"pickup_hotel"`
	PickupRoom       string          `gorm:"type:varchar(50)" json:"pickup_room"`
	PickupCost       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"pickup_cost"`
	ReturnDistrictID *uuid.UUID      `gorm:"type:uuid" json:"return_district_id"`
	ReturnHotel      string          `gorm:"type:varchar(255)" json:"return_hotel"`
	ReturnRoom       string          `gorm:"type:varchar(50)" json:"return_room"`
	ReturnCost       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"return_cost"`

	StartMileage int    `gorm:"not null;default:0" json:"start_mileage"`
	EndMileage   int    `gorm:"not null;default:0" json:"end_mileage"`
	FuelLevel    string `gorm:"type:varchar(20)" json:"fuel_level"`   // FULL … EMPTY in eighths
	Cleanliness  string `gorm:"type:varchar(10)" json:"cleanliness"`  // CLEAN, DIRTY
	Notes        string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the contract is in a terminal state.
func (c *Contract) Terminal() bool {
	return c.Status == ContractClosed || c.Status == ContractCancelled
}
