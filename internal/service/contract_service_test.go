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

type contractHarness struct {
	svc    ContractService
	db     *gorm.DB
	f      fixture
	events *fakeBroadcaster
}

// newContractHarness wires a contract service over a fresh database.
func newContractHarness(t *testing.T) *contractHarness {
	t.Helper()
	db := newTestDB(t)
	h := &contractHarness{
		db:     db,
		f:      seedFixture(t, db),
		events: &fakeBroadcaster{},
	}
	h.svc = newContractService(db, repository.NewCarRepository(db), h.events)
	return h
}

func newContractService(db *gorm.DB, carRepo repository.CarRepository, events EventBroadcaster) ContractService {
	return NewContractService(
		repository.NewContractRepository(db),
		carRepo,
		repository.NewClientRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTierRepository(db),
		repository.NewSeasonRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewDistrictRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		events,
	)
}

func (h *contractHarness) carStatus(t *testing.T) string {
	t.Helper()
	var car model.CompanyCar
	require.NoError(t, h.db.First(&car, "id = ?", h.f.car.ID).Error)
	return car.Status
}

func (h *contractHarness) contractStatus(t *testing.T, id string) string {
	t.Helper()
	var contract model.Contract
	require.NoError(t, h.db.First(&contract, "id = ?", id).Error)
	return contract.Status
}

func (h *contractHarness) paymentCount(t *testing.T, contractID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.db.Model(&model.PaymentRecord{}).
		Where("contract_id = ?", contractID).Count(&count).Error)
	return count
}

func (h *contractHarness) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.db.Model(&model.AuditLog{}).
		Where("action = ?", action).Count(&count).Error)
	return count
}

func (h *contractHarness) createDraft(t *testing.T, mutate func(*CreateContractRequest)) ContractResponse {
	t.Helper()
	req := CreateContractRequest{
		CarID:     h.f.car.ID.String(),
		ClientID:  h.f.client.ID.String(),
		StartDate: "2026-03-01",
		EndDate:   "2026-03-06",
	}
	if mutate != nil {
		mutate(&req)
	}
	resp, err := h.svc.CreateContract(context.Background(), req, h.f.actor)
	require.NoError(t, err)
	return resp
}

func validClose(paymentTypeID string) CloseContractRequest {
	return CloseContractRequest{
		ActualEndDate: "2026-03-06",
		EndMileage:    12500,
		FuelLevel:     model.FuelFull,
		Cleanliness:   model.CleanlinessClean,
		Payments: []PaymentLine{
			{PaymentTypeID: paymentTypeID, Amount: "6500.00", Currency: "THB", Method: "CARD"},
		},
	}
}

func TestCreateContractWorkedExample(t *testing.T) {
	h := newContractHarness(t)

	// 1000/day for 5 days, insurance 200/day, one 500 delivery leg.
	resp := h.createDraft(t, func(req *CreateContractRequest) {
		req.FullInsurance = true
		req.PickupDistrictID = h.f.district.ID.String()
	})

	assert.Equal(t, model.ContractDraft, resp.Status)
	assert.Equal(t, "6500.00", resp.TotalAmount)
	assert.Equal(t, "THB", resp.Currency)
	assert.Equal(t, "500.00", resp.PickupCost)
	assert.Equal(t, model.CarBooked, h.carStatus(t))
	assert.EqualValues(t, 1, h.auditCount(t, model.ActionCreateContract))
	assert.Equal(t, 1, h.events.count())
}

func TestCreateContractAppliesTierMultiplier(t *testing.T) {
	h := newContractHarness(t)

	tierSvc := NewTierService(
		repository.NewTierRepository(h.db),
		repository.NewAuditRepository(h.db),
		repository.NewTransactionManager(h.db),
	)
	_, err := tierSvc.SeedDefaultTiers(context.Background(), h.f.actor.UserID)
	require.NoError(t, err)

	// 8 days falls in the 8-14 tier: 1000 * 0.90 * 8 = 7200.
	resp := h.createDraft(t, func(req *CreateContractRequest) {
		req.StartDate = "2026-03-01"
		req.EndDate = "2026-03-09"
	})
	assert.Equal(t, "7200.00", resp.TotalAmount)
}

func TestCreateContractRejectsUnavailableCar(t *testing.T) {
	h := newContractHarness(t)
	require.NoError(t, h.db.Model(&model.CompanyCar{}).
		Where("id = ?", h.f.car.ID).Update("status", model.CarRented).Error)

	_, err := h.svc.CreateContract(context.Background(), CreateContractRequest{
		CarID:     h.f.car.ID.String(),
		ClientID:  h.f.client.ID.String(),
		StartDate: "2026-03-01",
		EndDate:   "2026-03-06",
	}, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	var contracts int64
	require.NoError(t, h.db.Model(&model.Contract{}).Count(&contracts).Error)
	assert.Zero(t, contracts)
}

func TestCreateContractRejectsSubDaySpan(t *testing.T) {
	h := newContractHarness(t)

	_, err := h.svc.CreateContract(context.Background(), CreateContractRequest{
		CarID:     h.f.car.ID.String(),
		ClientID:  h.f.client.ID.String(),
		StartDate: "2026-03-06",
		EndDate:   "2026-03-06",
	}, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, model.CarAvailable, h.carStatus(t))
}

func TestCreateContractForbiddenForOtherCompany(t *testing.T) {
	h := newContractHarness(t)

	other := model.Company{Name: "Krabi Cars", Currency: "THB"}
	require.NoError(t, h.db.Create(&other).Error)

	_, err := h.svc.CreateContract(context.Background(), CreateContractRequest{
		CarID:     h.f.car.ID.String(),
		ClientID:  h.f.client.ID.String(),
		StartDate: "2026-03-01",
		EndDate:   "2026-03-06",
	}, Actor{UserID: h.f.actor.UserID, Role: "staff", CompanyID: other.ID.String()})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	assert.Equal(t, model.CarAvailable, h.carStatus(t))
}

func TestAdminBypassesOwnership(t *testing.T) {
	h := newContractHarness(t)

	resp, err := h.svc.CreateContract(context.Background(), CreateContractRequest{
		CarID:     h.f.car.ID.String(),
		ClientID:  h.f.client.ID.String(),
		StartDate: "2026-03-01",
		EndDate:   "2026-03-06",
	}, Actor{UserID: h.f.actor.UserID, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, resp.Status)
}

func TestActivateContract(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	resp, err := h.svc.ActivateContract(context.Background(), draft.ID, ActivateContractRequest{
		StartMileage: 12000,
		FuelLevel:    model.FuelFull,
	}, h.f.actor)
	require.NoError(t, err)

	assert.Equal(t, model.ContractActive, resp.Status)
	assert.Equal(t, 12000, resp.StartMileage)
	assert.Equal(t, model.CarRented, h.carStatus(t))

	// Only DRAFT contracts activate.
	_, err = h.svc.ActivateContract(context.Background(), draft.ID, ActivateContractRequest{
		StartMileage: 12000,
		FuelLevel:    model.FuelFull,
	}, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCloseContract(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)
	_, err := h.svc.ActivateContract(context.Background(), draft.ID, ActivateContractRequest{
		StartMileage: 12000,
		FuelLevel:    model.FuelFull,
	}, h.f.actor)
	require.NoError(t, err)

	req := validClose(h.f.paymentType.ID.String())
	req.Payments = append(req.Payments, PaymentLine{
		PaymentTypeID: h.f.paymentType.ID.String(),
		Amount:        "500",
		Currency:      "THB",
		Method:        "CASH",
	})

	resp, err := h.svc.CloseContract(context.Background(), draft.ID, req, h.f.actor)
	require.NoError(t, err)

	assert.Equal(t, model.ContractClosed, resp.Status)
	require.NotNil(t, resp.ActualEndDate)
	assert.Equal(t, "2026-03-06", *resp.ActualEndDate)
	assert.Equal(t, 12500, resp.EndMileage)
	assert.Equal(t, model.CarAvailable, h.carStatus(t))
	assert.EqualValues(t, 2, h.paymentCount(t, draft.ID))
	assert.EqualValues(t, 1, h.auditCount(t, model.ActionCloseContract))
}

func TestCloseContractFromDraftEarlyReturn(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	resp, err := h.svc.CloseContract(context.Background(), draft.ID,
		validClose(h.f.paymentType.ID.String()), h.f.actor)
	require.NoError(t, err)
	assert.Equal(t, model.ContractClosed, resp.Status)
	assert.Equal(t, model.CarAvailable, h.carStatus(t))
}

func TestDoubleCloseYieldsConflictAndOnePaymentBatch(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	_, err := h.svc.CloseContract(context.Background(), draft.ID,
		validClose(h.f.paymentType.ID.String()), h.f.actor)
	require.NoError(t, err)
	require.EqualValues(t, 1, h.paymentCount(t, draft.ID))

	_, err = h.svc.CloseContract(context.Background(), draft.ID,
		validClose(h.f.paymentType.ID.String()), h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Contains(t, err.Error(), "already closed")

	// The second attempt must not touch the ledger.
	assert.EqualValues(t, 1, h.paymentCount(t, draft.ID))
	assert.EqualValues(t, 1, h.auditCount(t, model.ActionCloseContract))
}

func TestCloseContractRejectsNonPositivePayment(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	req := validClose(h.f.paymentType.ID.String())
	req.Payments[0].Amount = "0"

	_, err := h.svc.CloseContract(context.Background(), draft.ID, req, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "payment line 1")

	assert.Equal(t, model.ContractDraft, h.contractStatus(t, draft.ID))
	assert.Zero(t, h.paymentCount(t, draft.ID))
}

func TestCloseContractRejectsBadReturnCondition(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	req := validClose(h.f.paymentType.ID.String())
	req.FuelLevel = "MOSTLY_FULL"
	_, err := h.svc.CloseContract(context.Background(), draft.ID, req, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	req = validClose(h.f.paymentType.ID.String())
	req.Cleanliness = "SPOTLESS"
	_, err = h.svc.CloseContract(context.Background(), draft.ID, req, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	assert.Equal(t, model.ContractDraft, h.contractStatus(t, draft.ID))
}

// A storage fault after the contract write but before the car write must
// roll back the whole close: contract status, payment batch and car
// status all revert.
func TestCloseContractRollsBackOnCarUpdateFailure(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	realCars := repository.NewCarRepository(db)
	h := &contractHarness{db: db, f: f, events: &fakeBroadcaster{}}
	h.svc = newContractService(db, realCars, h.events)
	draft := h.createDraft(t, nil)

	// Swap in a car repository that fails UpdateStatus.
	h.svc = newContractService(db, &failingCarRepository{CarRepository: realCars}, h.events)

	_, err := h.svc.CloseContract(context.Background(), draft.ID,
		validClose(f.paymentType.ID.String()), f.actor)
	require.Error(t, err)

	assert.Equal(t, model.ContractDraft, h.contractStatus(t, draft.ID))
	assert.Zero(t, h.paymentCount(t, draft.ID))
	assert.Equal(t, model.CarBooked, h.carStatus(t))
	assert.Zero(t, h.auditCount(t, model.ActionCloseContract))
}

func TestCancelContract(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	resp, err := h.svc.CancelContract(context.Background(), draft.ID, h.f.actor)
	require.NoError(t, err)
	assert.Equal(t, model.ContractCancelled, resp.Status)
	assert.Equal(t, model.CarAvailable, h.carStatus(t))

	// Terminal contracts cannot be cancelled again or closed.
	_, err = h.svc.CancelContract(context.Background(), draft.ID, h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = h.svc.CloseContract(context.Background(), draft.ID,
		validClose(h.f.paymentType.ID.String()), h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestListContractsScopesToCompany(t *testing.T) {
	h := newContractHarness(t)
	h.createDraft(t, nil)

	list, total, err := h.svc.ListContracts(context.Background(), "", 1, 20, h.f.actor)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)

	// A non-admin caller without a company scope is rejected.
	_, _, err = h.svc.ListContracts(context.Background(), "", 1, 20, Actor{Role: "staff"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	// Status filter.
	list, _, err = h.svc.ListContracts(context.Background(), model.ContractClosed, 1, 20, h.f.actor)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetContract(t *testing.T) {
	h := newContractHarness(t)
	draft := h.createDraft(t, nil)

	resp, err := h.svc.GetContract(context.Background(), draft.ID, h.f.actor)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, resp.ID)
	assert.Equal(t, h.f.car.PlateNumber, resp.CarPlate)
	assert.Equal(t, h.f.client.FullName, resp.ClientName)
	assert.Empty(t, resp.Payments)

	// The detail view carries the payment ledger once closed.
	_, err = h.svc.CloseContract(context.Background(), draft.ID,
		validClose(h.f.paymentType.ID.String()), h.f.actor)
	require.NoError(t, err)

	resp, err = h.svc.GetContract(context.Background(), draft.ID, h.f.actor)
	require.NoError(t, err)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "6500.00", resp.Payments[0].Amount)
	assert.Equal(t, "Rental fee", resp.Payments[0].PaymentType)
	assert.Equal(t, model.PaymentCompleted, resp.Payments[0].Status)

	_, err = h.svc.GetContract(context.Background(), "00000000-0000-0000-0000-000000000000", h.f.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
