package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rentalops/internal/database"
	"rentalops/internal/model"
	"rentalops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named in-memory SQLite database and migrates
// the full schema into it. cache=shared keeps the database alive across
// the pooled connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fixture is the minimal world a contract needs: one company with an
// add-on price list, one available car, one client, one delivery
// district and one payment type.
type fixture struct {
	company     model.Company
	settings    model.CompanySettings
	car         model.CompanyCar
	client      model.Client
	district    model.District
	paymentType model.PaymentType
	user        model.User

	actor Actor
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		company: model.Company{Name: "Phuket Wheels", Currency: "THB"},
	}
	require.NoError(t, db.Create(&f.company).Error)

	f.settings = model.CompanySettings{
		CompanyID:             f.company.ID,
		FullInsuranceMinPrice: decimal.RequireFromString("200"),
		BabySeatPricePerDay:   decimal.RequireFromString("100"),
		IslandTripPrice:       decimal.RequireFromString("2500"),
		KrabiTripPrice:        decimal.RequireFromString("3200"),
	}
	require.NoError(t, repository.NewSettingsRepository(db).Create(context.Background(), &f.settings))

	f.car = model.CompanyCar{
		CompanyID:   f.company.ID,
		Make:        "Toyota",
		Model:       "Yaris",
		PlateNumber: "AB-" + uuid.NewString()[:8],
		PricePerDay: decimal.RequireFromString("1000"),
		Status:      model.CarAvailable,
	}
	require.NoError(t, db.Create(&f.car).Error)

	f.client = model.Client{FullName: "Anna Miller", Phone: "+66810000000"}
	require.NoError(t, repository.NewClientRepository(db).Create(context.Background(), &f.client))

	f.district = model.District{Name: "Patong", DeliveryPrice: decimal.RequireFromString("500")}
	require.NoError(t, repository.NewDistrictRepository(db).Create(context.Background(), &f.district))

	f.paymentType = model.PaymentType{Name: "Rental fee", Sign: 1}
	require.NoError(t, db.Create(&f.paymentType).Error)

	f.user = model.User{
		Username:  "staff-" + uuid.NewString()[:8],
		Role:      "staff",
		CompanyID: &f.company.ID,
	}
	require.NoError(t, db.Create(&f.user).Error)

	f.actor = Actor{
		UserID:    f.user.ID.String(),
		Role:      "staff",
		CompanyID: f.company.ID.String(),
	}
	return f
}

// fakeBroadcaster captures published lifecycle events.
type fakeBroadcaster struct {
	mu       sync.Mutex
	messages [][]byte
}

func (b *fakeBroadcaster) Publish(message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

var errCarStore = errors.New("car store unavailable")

// failingCarRepository fails every status update, simulating a storage
// fault between the contract write and the car write.
type failingCarRepository struct {
	repository.CarRepository
}

func (r *failingCarRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error {
	return errCarStore
}
