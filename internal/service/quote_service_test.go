package service

import (
	"context"
	"testing"

	"rentalops/internal/model"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuoteService(t *testing.T) (QuoteService, *gorm.DB, fixture) {
	t.Helper()
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewQuoteService(
		repository.NewCarRepository(db),
		repository.NewTierRepository(db),
		repository.NewSeasonRepository(db),
	)
	return svc, db, f
}

func TestQuoteMatrixForCar(t *testing.T) {
	svc, db, f := newQuoteService(t)
	ctx := context.Background()

	three := 3
	require.NoError(t, db.Create(&[]model.RentalDurationTier{
		{RangeName: "1-3 days", MinDays: 1, MaxDays: &three, PriceMultiplier: decimal.RequireFromString("1.00")},
		{RangeName: "4+ days", MinDays: 4, PriceMultiplier: decimal.RequireFromString("0.90")},
	}).Error)
	require.NoError(t, db.Create(&model.SeasonDefinition{
		Name: "High", StartMonth: 11, StartDay: 1, EndMonth: 2, EndDay: 28,
		PriceCoefficient: decimal.RequireFromString("1.2"),
	}).Error)

	cells, err := svc.QuoteMatrix(ctx, f.car.ID.String(), 30)
	require.NoError(t, err)
	require.Len(t, cells, 2)

	assert.Equal(t, "High", cells[0].SeasonName)
	assert.Equal(t, "1-3 days", cells[0].TierName)
	// 1000 * 1.2 * 1.00
	assert.Equal(t, "1200.00", cells[0].DailyPrice.StringFixed(2))
	// Unbounded tier priced at the 30-day sample: 1000 * 1.2 * 0.90 * 30.
	assert.Equal(t, 30, cells[1].Days)
	assert.Equal(t, "32400.00", cells[1].TotalForTier.StringFixed(2))
}

func TestQuoteMatrixErrors(t *testing.T) {
	svc, _, _ := newQuoteService(t)
	ctx := context.Background()

	_, err := svc.QuoteMatrix(ctx, "not-a-uuid", 30)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.QuoteMatrix(ctx, "00000000-0000-0000-0000-000000000000", 30)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
