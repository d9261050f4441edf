package service

import (
	"context"
	"testing"

	"rentalops/internal/model"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTierService(t *testing.T) (TierService, *gorm.DB, fixture) {
	t.Helper()
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewTierService(
		repository.NewTierRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
	return svc, db, f
}

func storedTiers(t *testing.T, db *gorm.DB) []model.RentalDurationTier {
	t.Helper()
	var tiers []model.RentalDurationTier
	require.NoError(t, db.Order("min_days asc").Find(&tiers).Error)
	return tiers
}

func TestSeedDefaultTiers(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	seeded, err := svc.SeedDefaultTiers(ctx, f.actor.UserID)
	require.NoError(t, err)
	require.Len(t, seeded, 5)

	stored := storedTiers(t, db)
	require.Len(t, stored, 5)
	assert.Equal(t, 1, stored[0].MinDays)
	assert.Nil(t, stored[4].MaxDays)

	// Re-running must not clobber an existing set.
	_, err = svc.SeedDefaultTiers(ctx, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Len(t, storedTiers(t, db), 5)
}

func TestCreateTierRejectsGapLeavingStorageUntouched(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	// First tier must start at day 1.
	_, err := svc.CreateTier(ctx, TierRequest{
		RangeName:       "late start",
		MinDays:         2,
		MaxDays:         0,
		PriceMultiplier: "1.0",
	}, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, storedTiers(t, db))

	var auditRows int64
	require.NoError(t, db.Model(&model.AuditLog{}).Count(&auditRows).Error)
	assert.Zero(t, auditRows)
}

func TestCreateTierAcceptsUnboundedFirstTier(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	created, err := svc.CreateTier(ctx, TierRequest{
		RangeName:       "any length",
		MinDays:         1,
		MaxDays:         0,
		PriceMultiplier: "1.0",
	}, f.actor.UserID)
	require.NoError(t, err)
	assert.Nil(t, created.MaxDays)

	stored := storedTiers(t, db)
	require.Len(t, stored, 1)
	assert.Equal(t, "any length", stored[0].RangeName)

	var auditRows int64
	require.NoError(t, db.Model(&model.AuditLog{}).
		Where("action = ?", model.ActionCreateTier).Count(&auditRows).Error)
	assert.EqualValues(t, 1, auditRows)
}

func TestDeleteMiddleTierRejected(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	_, err := svc.SeedDefaultTiers(ctx, f.actor.UserID)
	require.NoError(t, err)
	before := storedTiers(t, db)
	require.Len(t, before, 5)

	// Removing 8-14 days would leave days 8-14 uncovered.
	err = svc.DeleteTier(ctx, before[2].ID.String(), f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "day 8")

	after := storedTiers(t, db)
	require.Len(t, after, 5)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].MinDays, after[i].MinDays)
	}
}

func TestDeleteOnlyTierEmptiesSet(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	// An empty set is valid, so deleting the sole tier is allowed.
	created, err := svc.CreateTier(ctx, TierRequest{
		RangeName:       "any length",
		MinDays:         1,
		PriceMultiplier: "1.0",
	}, f.actor.UserID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTier(ctx, created.ID, f.actor.UserID))
	assert.Empty(t, storedTiers(t, db))
}

func TestUpdateTierRejectsOverlapLeavingRowUnchanged(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	_, err := svc.SeedDefaultTiers(ctx, f.actor.UserID)
	require.NoError(t, err)
	stored := storedTiers(t, db)
	second := stored[1] // 4-7 days

	// Stretching it to 4-9 overlaps the 8-14 tier.
	_, err = svc.UpdateTier(ctx, second.ID.String(), TierRequest{
		RangeName:       second.RangeName,
		MinDays:         4,
		MaxDays:         9,
		PriceMultiplier: "0.95",
	}, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "day 8")

	var reloaded model.RentalDurationTier
	require.NoError(t, db.First(&reloaded, "id = ?", second.ID).Error)
	require.NotNil(t, reloaded.MaxDays)
	assert.Equal(t, 7, *reloaded.MaxDays)
}

func TestUpdateTierAdjustsBoundaryPair(t *testing.T) {
	svc, db, f := newTierService(t)
	ctx := context.Background()

	_, err := svc.SeedDefaultTiers(ctx, f.actor.UserID)
	require.NoError(t, err)
	stored := storedTiers(t, db)

	// Moving the 7/8 boundary one tier at a time always passes through an
	// invalid intermediate state, so both single-step updates fail.
	_, err = svc.UpdateTier(ctx, stored[1].ID.String(), TierRequest{
		RangeName:       stored[1].RangeName,
		MinDays:         4,
		MaxDays:         6,
		PriceMultiplier: "0.95",
	}, f.actor.UserID)
	require.Error(t, err, "shrinking first opens a gap at day 7")

	_, err = svc.UpdateTier(ctx, stored[2].ID.String(), TierRequest{
		RangeName:       stored[2].RangeName,
		MinDays:         7,
		MaxDays:         14,
		PriceMultiplier: "0.90",
	}, f.actor.UserID)
	require.Error(t, err, "growing second first overlaps day 7")

	assert.Len(t, storedTiers(t, db), 5)
}

func TestTierRequestValidation(t *testing.T) {
	svc, _, f := newTierService(t)
	ctx := context.Background()

	_, err := svc.CreateTier(ctx, TierRequest{
		RangeName:       "bad",
		MinDays:         5,
		MaxDays:         3,
		PriceMultiplier: "1.0",
	}, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateTier(ctx, TierRequest{
		RangeName:       "bad",
		MinDays:         1,
		PriceMultiplier: "not-a-number",
	}, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateTier(ctx, TierRequest{
		RangeName:       "bad",
		MinDays:         1,
		PriceMultiplier: "-0.5",
	}, f.actor.UserID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
