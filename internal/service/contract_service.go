package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rentalops/internal/model"
	"rentalops/internal/pricing"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// EventBroadcaster pushes lifecycle events to connected ops dashboards.
type EventBroadcaster interface {
	Publish(message []byte)
}

// Actor identifies the caller for ownership checks and audit rows.
// CompanyID is empty for platform admins.
type Actor struct {
	UserID    string
	Role      string
	CompanyID string
}

// --- DTOs ---

type CreateContractRequest struct {
	CarID     string `json:"car_id" binding:"required"`
	ClientID  string `json:"client_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD

	FullInsurance bool `json:"full_insurance"`
	BabySeat      bool `json:"baby_seat"`
	IslandTrip    bool `json:"island_trip"`
	KrabiTrip     bool `json:"krabi_trip"`

	PickupDistrictID string `json:"pickup_district_id"`
	PickupHotel      string `json:"pickup_hotel"`
	PickupRoom       string `json:"pickup_room"`
	ReturnDistrictID string `json:"return_district_id"`
	ReturnHotel      string `json:"return_hotel"`
	ReturnRoom       string `json:"return_room"`

	Notes string `json:"notes"`
}

type ActivateContractRequest struct {
	StartMileage int    `json:"start_mileage" binding:"min=0"`
	FuelLevel    string `json:"fuel_level" binding:"required"`
}

type PaymentLine struct {
	PaymentTypeID string `json:"payment_type_id" binding:"required"`
	Amount        string `json:"amount" binding:"required"` // decimal string
	Currency      string `json:"currency" binding:"required"`
	Method        string `json:"method" binding:"required,oneof=CASH CARD TRANSFER"`
}

type CloseContractRequest struct {
	ActualEndDate string        `json:"actual_end_date" binding:"required"` // YYYY-MM-DD
	EndMileage    int           `json:"end_mileage" binding:"min=0"`
	FuelLevel     string        `json:"fuel_level" binding:"required"`
	Cleanliness   string        `json:"cleanliness" binding:"required"`
	Notes         string        `json:"notes"`
	Payments      []PaymentLine `json:"payments"`
}

type PaymentResponse struct {
	ID            string `json:"id"`
	PaymentTypeID string `json:"payment_type_id"`
	PaymentType   string `json:"payment_type,omitempty"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type ContractResponse struct {
	ID            string  `json:"id"`
	CompanyCarID  string  `json:"company_car_id"`
	CarPlate      string  `json:"car_plate,omitempty"`
	ClientID      string  `json:"client_id"`
	ClientName    string  `json:"client_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	ActualEndDate *string `json:"actual_end_date"`
	TotalAmount   string  `json:"total_amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	FullInsurance bool    `json:"full_insurance"`
	BabySeat      bool    `json:"baby_seat"`
	IslandTrip    bool    `json:"island_trip"`
	KrabiTrip     bool    `json:"krabi_trip"`
	PickupCost    string  `json:"pickup_cost"`
	ReturnCost    string  `json:"return_cost"`
	StartMileage  int     `json:"start_mileage"`
	EndMileage    int     `json:"end_mileage"`
	FuelLevel     string  `json:"fuel_level"`
	Cleanliness   string  `json:"cleanliness"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`

	Payments []PaymentResponse `json:"payments,omitempty"` // detail view only
}

// --- Interface ---

// ContractService drives the rental contract state machine:
// DRAFT → ACTIVE → CLOSED, with CANCELLED reachable from DRAFT/ACTIVE
// and DRAFT → CLOSED for early returns. Every transition mutates the
// contract, the car status and the ledger inside one transaction.
type ContractService interface {
	CreateContract(ctx context.Context, req CreateContractRequest, actor Actor) (ContractResponse, error)
	ActivateContract(ctx context.Context, id string, req ActivateContractRequest, actor Actor) (ContractResponse, error)
	CloseContract(ctx context.Context, id string, req CloseContractRequest, actor Actor) (ContractResponse, error)
	CancelContract(ctx context.Context, id string, actor Actor) (ContractResponse, error)
	GetContract(ctx context.Context, id string, actor Actor) (ContractResponse, error)
	ListContracts(ctx context.Context, status string, page, limit int, actor Actor) ([]ContractResponse, int64, error)
}

type contractService struct {
	contractRepo repository.ContractRepository
	carRepo      repository.CarRepository
	clientRepo   repository.ClientRepository
	paymentRepo  repository.PaymentRepository
	tierRepo     repository.TierRepository
	seasonRepo   repository.SeasonRepository
	settingsRepo repository.SettingsRepository
	districtRepo repository.DistrictRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	events       EventBroadcaster
}

func NewContractService(
	contractRepo repository.ContractRepository,
	carRepo repository.CarRepository,
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
	tierRepo repository.TierRepository,
	seasonRepo repository.SeasonRepository,
	settingsRepo repository.SettingsRepository,
	districtRepo repository.DistrictRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events EventBroadcaster,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		carRepo:      carRepo,
		clientRepo:   clientRepo,
		paymentRepo:  paymentRepo,
		tierRepo:     tierRepo,
		seasonRepo:   seasonRepo,
		settingsRepo: settingsRepo,
		districtRepo: districtRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		events:       events,
	}
}

// --- Implementation ---

func (s *contractService) CreateContract(ctx context.Context, req CreateContractRequest, actor Actor) (ContractResponse, error) {
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid car id %q", req.CarID)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid client id %q", req.ClientID)
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid start_date %q (expected YYYY-MM-DD)", req.StartDate)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid end_date %q (expected YYYY-MM-DD)", req.EndDate)
	}

	days := pricing.RentalDays(startDate, endDate)
	if days < 1 {
		return ContractResponse{}, apperror.Validation("rental must span at least one day")
	}

	var contract model.Contract
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		car, findErr := s.carRepo.FindByIDForUpdate(txCtx, carID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("car %s not found", req.CarID)
			}
			return apperror.Persistence(findErr, "failed to fetch car")
		}

		if ownErr := s.checkOwnership(car, actor); ownErr != nil {
			return ownErr
		}
		if car.Status != model.CarAvailable {
			return apperror.Validation("car %s is not available (status %s)", car.PlateNumber, car.Status)
		}

		if _, clientErr := s.clientRepo.FindByID(txCtx, clientID); clientErr != nil {
			if errors.Is(clientErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("client %s not found", req.ClientID)
			}
			return apperror.Persistence(clientErr, "failed to fetch client")
		}

		input, buildErr := s.buildBookingInput(txCtx, car, startDate, endDate, days, req)
		if buildErr != nil {
			return buildErr
		}

		quote, calcErr := pricing.BookingTotal(*input)
		if calcErr != nil {
			return calcErr
		}

		contract = model.Contract{
			CompanyCarID:       car.ID,
			ClientID:           clientID,
			StartDate:          startDate,
			EndDate:            endDate,
			TotalAmount:        quote.Total,
			Currency:           s.currencyFor(txCtx, car),
			Status:             model.ContractDraft,
			FullInsurance:      req.FullInsurance,
			FullInsurancePrice: quote.FullInsurancePrice,
			BabySeat:           req.BabySeat,
			BabySeatPrice:      quote.BabySeatPrice,
			IslandTrip:         req.IslandTrip,
			IslandTripPrice:    quote.IslandTripPrice,
			KrabiTrip:          req.KrabiTrip,
			KrabiTripPrice:     quote.KrabiTripPrice,
			PickupHotel:        req.PickupHotel,
			PickupRoom:         req.PickupRoom,
			PickupCost:         quote.PickupCost,
			ReturnHotel:        req.ReturnHotel,
			ReturnRoom:         req.ReturnRoom,
			ReturnCost:         quote.ReturnCost,
			Notes:              req.Notes,
		}
		if req.PickupDistrictID != "" {
			id, parseErr := uuid.Parse(req.PickupDistrictID)
			if parseErr != nil {
				return apperror.Validation("invalid pickup_district_id %q", req.PickupDistrictID)
			}
			contract.PickupDistrictID = &id
		}
		if req.ReturnDistrictID != "" {
			id, parseErr := uuid.Parse(req.ReturnDistrictID)
			if parseErr != nil {
				return apperror.Validation("invalid return_district_id %q", req.ReturnDistrictID)
			}
			contract.ReturnDistrictID = &id
		}

		if createErr := s.contractRepo.Create(txCtx, &contract); createErr != nil {
			return apperror.Persistence(createErr, "failed to create contract")
		}

		if carErr := s.carRepo.UpdateStatus(txCtx, car.ID, model.CarBooked, "contract created"); carErr != nil {
			return apperror.Persistence(carErr, "failed to update car status")
		}

		after := map[string]interface{}{"status": contract.Status, "total_amount": contract.TotalAmount.StringFixed(2)}
		return s.auditRepo.Record(txCtx, "contract", contract.ID.String(), model.ActionCreateContract, nil, after, parseUserID(actor.UserID))
	})
	if err != nil {
		return ContractResponse{}, err
	}

	s.publish("contract.created", &contract)
	return toContractResponse(contract), nil
}

func (s *contractService) ActivateContract(ctx context.Context, id string, req ActivateContractRequest, actor Actor) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid contract id %q", id)
	}
	if !model.ValidFuelLevel(req.FuelLevel) {
		return ContractResponse{}, apperror.Validation("invalid fuel_level %q", req.FuelLevel)
	}

	var contract *model.Contract
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		contract, txErr = s.lockContractWithOwnership(txCtx, contractID, actor)
		if txErr != nil {
			return txErr
		}

		if contract.Status != model.ContractDraft {
			return apperror.Conflict("contract is %s, only DRAFT contracts can be activated", contract.Status)
		}

		before := lifecycleSnapshot(contract)
		contract.Status = model.ContractActive
		contract.StartMileage = req.StartMileage
		contract.FuelLevel = req.FuelLevel

		if saveErr := s.contractRepo.Save(txCtx, contract); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update contract")
		}
		if carErr := s.carRepo.UpdateStatus(txCtx, contract.CompanyCarID, model.CarRented, "contract activated"); carErr != nil {
			return apperror.Persistence(carErr, "failed to update car status")
		}

		return s.auditRepo.Record(txCtx, "contract", id, model.ActionActivateContract, before, lifecycleSnapshot(contract), parseUserID(actor.UserID))
	})
	if err != nil {
		return ContractResponse{}, err
	}

	s.publish("contract.activated", contract)
	return toContractResponse(*contract), nil
}

// CloseContract finalizes a contract: records the return condition,
// posts the payment batch, frees the vehicle and writes the audit row —
// all inside one transaction, so a failure at any step rolls every
// effect back. Closing an already-terminal contract returns a conflict
// without touching the ledger.
func (s *contractService) CloseContract(ctx context.Context, id string, req CloseContractRequest, actor Actor) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid contract id %q", id)
	}
	actualEnd, err := time.Parse(dateLayout, req.ActualEndDate)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid actual_end_date %q (expected YYYY-MM-DD)", req.ActualEndDate)
	}
	if !model.ValidFuelLevel(req.FuelLevel) {
		return ContractResponse{}, apperror.Validation("invalid fuel_level %q", req.FuelLevel)
	}
	if !model.ValidCleanliness(req.Cleanliness) {
		return ContractResponse{}, apperror.Validation("invalid cleanliness %q", req.Cleanliness)
	}

	lines, err := parsePaymentLines(req.Payments)
	if err != nil {
		return ContractResponse{}, err
	}

	var contract *model.Contract
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		contract, txErr = s.lockContractWithOwnership(txCtx, contractID, actor)
		if txErr != nil {
			return txErr
		}

		if contract.Status == model.ContractClosed {
			return apperror.Conflict("contract %s is already closed", id)
		}
		if contract.Status == model.ContractCancelled {
			return apperror.Conflict("contract %s is cancelled and cannot be closed", id)
		}

		before := lifecycleSnapshot(contract)
		contract.Status = model.ContractClosed
		contract.ActualEndDate = &actualEnd
		contract.EndMileage = req.EndMileage
		contract.FuelLevel = req.FuelLevel
		contract.Cleanliness = req.Cleanliness
		if req.Notes != "" {
			contract.Notes = req.Notes
		}

		if saveErr := s.contractRepo.Save(txCtx, contract); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update contract")
		}

		records := make([]model.PaymentRecord, 0, len(lines))
		for _, line := range lines {
			records = append(records, model.PaymentRecord{
				ContractID:    contract.ID,
				PaymentTypeID: line.typeID,
				Amount:        line.amount,
				Currency:      line.currency,
				Method:        line.method,
				Status:        model.PaymentCompleted,
				CreatedBy:     parseUserID(actor.UserID),
			})
		}
		if payErr := s.paymentRepo.CreateBatch(txCtx, records); payErr != nil {
			return apperror.Persistence(payErr, "failed to insert payment records")
		}

		if carErr := s.carRepo.UpdateStatus(txCtx, contract.CompanyCarID, model.CarAvailable, "contract closed"); carErr != nil {
			return apperror.Persistence(carErr, "failed to update car status")
		}

		return s.auditRepo.Record(txCtx, "contract", id, model.ActionCloseContract, before, lifecycleSnapshot(contract), parseUserID(actor.UserID))
	})
	if err != nil {
		return ContractResponse{}, err
	}

	s.publish("contract.closed", contract)
	return toContractResponse(*contract), nil
}

func (s *contractService) CancelContract(ctx context.Context, id string, actor Actor) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid contract id %q", id)
	}

	var contract *model.Contract
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		contract, txErr = s.lockContractWithOwnership(txCtx, contractID, actor)
		if txErr != nil {
			return txErr
		}

		if contract.Terminal() {
			return apperror.Conflict("contract %s is already %s", id, contract.Status)
		}

		before := lifecycleSnapshot(contract)
		contract.Status = model.ContractCancelled

		if saveErr := s.contractRepo.Save(txCtx, contract); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update contract")
		}
		if carErr := s.carRepo.UpdateStatus(txCtx, contract.CompanyCarID, model.CarAvailable, "contract cancelled"); carErr != nil {
			return apperror.Persistence(carErr, "failed to update car status")
		}

		return s.auditRepo.Record(txCtx, "contract", id, model.ActionCancelContract, before, lifecycleSnapshot(contract), parseUserID(actor.UserID))
	})
	if err != nil {
		return ContractResponse{}, err
	}

	s.publish("contract.cancelled", contract)
	return toContractResponse(*contract), nil
}

func (s *contractService) GetContract(ctx context.Context, id string, actor Actor) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, apperror.Validation("invalid contract id %q", id)
	}

	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, apperror.NotFound("contract %s not found", id)
		}
		return ContractResponse{}, apperror.Persistence(err, "failed to fetch contract")
	}

	if contract.CompanyCar != nil {
		if ownErr := s.checkOwnership(contract.CompanyCar, actor); ownErr != nil {
			return ContractResponse{}, ownErr
		}
	}

	payments, err := s.paymentRepo.ListByContract(ctx, contract.ID)
	if err != nil {
		return ContractResponse{}, apperror.Persistence(err, "failed to fetch payments")
	}

	resp := toContractResponse(*contract)
	resp.Payments = make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp, nil
}

func (s *contractService) ListContracts(ctx context.Context, status string, page, limit int, actor Actor) ([]ContractResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var companyID *uuid.UUID
	if actor.Role != "admin" {
		id, err := uuid.Parse(actor.CompanyID)
		if err != nil {
			return nil, 0, apperror.Forbidden("caller has no company scope")
		}
		companyID = &id
	}

	contracts, total, err := s.contractRepo.List(ctx, companyID, status, page, limit)
	if err != nil {
		return nil, 0, apperror.Persistence(err, "failed to fetch contracts")
	}

	res := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		res = append(res, toContractResponse(c))
	}
	return res, total, nil
}

// --- Helpers ---

// lockContractWithOwnership loads the contract row FOR UPDATE and
// verifies the actor's company owns the car. Ownership failures happen
// before any mutation, so a Forbidden result has no partial effect.
func (s *contractService) lockContractWithOwnership(txCtx context.Context, contractID uuid.UUID, actor Actor) (*model.Contract, error) {
	contract, err := s.contractRepo.FindByIDForUpdate(txCtx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("contract %s not found", contractID)
		}
		return nil, apperror.Persistence(err, "failed to fetch contract")
	}

	car, err := s.carRepo.FindByID(txCtx, contract.CompanyCarID)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch car")
	}
	if err := s.checkOwnership(car, actor); err != nil {
		return nil, err
	}

	return contract, nil
}

func (s *contractService) checkOwnership(car *model.CompanyCar, actor Actor) error {
	if actor.Role == "admin" {
		return nil
	}
	if actor.CompanyID == "" || actor.CompanyID != car.CompanyID.String() {
		return apperror.Forbidden("car belongs to another company")
	}
	return nil
}

// buildBookingInput resolves tier, season, company settings and delivery
// districts so BookingTotal stays a pure function of explicit inputs.
func (s *contractService) buildBookingInput(txCtx context.Context, car *model.CompanyCar, startDate, endDate time.Time, days int, req CreateContractRequest) (*pricing.BookingInput, error) {
	input := &pricing.BookingInput{
		PricePerDay:   car.PricePerDay,
		StartDate:     startDate,
		EndDate:       endDate,
		FullInsurance: req.FullInsurance,
		BabySeat:      req.BabySeat,
		IslandTrip:    req.IslandTrip,
		KrabiTrip:     req.KrabiTrip,
	}

	tiers, err := s.tierRepo.ListOrdered(txCtx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch duration tiers")
	}
	if tier := pricing.ResolveTier(toTierRanges(tiers), days); tier != nil {
		input.TierMultiplier = tier.PriceMultiplier
	}

	seasons, err := s.seasonRepo.List(txCtx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch seasons")
	}
	if season := resolveSeason(seasons, startDate); season != nil {
		input.SeasonCoefficient = season.PriceCoefficient
	}

	if req.FullInsurance || req.BabySeat || req.IslandTrip || req.KrabiTrip {
		settings, settingsErr := s.settingsRepo.GetByCompany(txCtx, car.CompanyID)
		if settingsErr != nil {
			if errors.Is(settingsErr, gorm.ErrRecordNotFound) {
				return nil, apperror.Validation("company has no add-on price list configured")
			}
			return nil, apperror.Persistence(settingsErr, "failed to fetch company settings")
		}
		input.FullInsuranceMinPrice = settings.FullInsuranceMinPrice
		input.BabySeatPricePerDay = settings.BabySeatPricePerDay
		input.IslandTripPrice = settings.IslandTripPrice
		input.KrabiTripPrice = settings.KrabiTripPrice
	}

	if req.PickupDistrictID != "" {
		price, distErr := s.deliveryPrice(txCtx, req.PickupDistrictID, "pickup")
		if distErr != nil {
			return nil, distErr
		}
		input.PickupDeliveryPrice = price
	}
	if req.ReturnDistrictID != "" {
		price, distErr := s.deliveryPrice(txCtx, req.ReturnDistrictID, "return")
		if distErr != nil {
			return nil, distErr
		}
		input.ReturnDeliveryPrice = price
	}

	return input, nil
}

func (s *contractService) deliveryPrice(txCtx context.Context, districtID, leg string) (*decimal.Decimal, error) {
	id, err := uuid.Parse(districtID)
	if err != nil {
		return nil, apperror.Validation("invalid %s district id %q", leg, districtID)
	}
	district, err := s.districtRepo.FindByID(txCtx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("%s district %s not found", leg, districtID)
		}
		return nil, apperror.Persistence(err, "failed to fetch district")
	}
	price := district.DeliveryPrice
	return &price, nil
}

func (s *contractService) currencyFor(txCtx context.Context, car *model.CompanyCar) string {
	settings, err := s.settingsRepo.GetByCompany(txCtx, car.CompanyID)
	if err == nil && settings.Company != nil {
		return settings.Company.Currency
	}
	return "THB"
}

type parsedPaymentLine struct {
	typeID   uuid.UUID
	amount   decimal.Decimal
	currency string
	method   string
}

// parsePaymentLines rejects zero or negative amounts outright rather
// than silently skipping them, so bad input surfaces to the caller.
func parsePaymentLines(lines []PaymentLine) ([]parsedPaymentLine, error) {
	parsed := make([]parsedPaymentLine, 0, len(lines))
	for i, line := range lines {
		typeID, err := uuid.Parse(line.PaymentTypeID)
		if err != nil {
			return nil, apperror.Validation("payment line %d: invalid payment_type_id %q", i+1, line.PaymentTypeID)
		}
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return nil, apperror.Validation("payment line %d: invalid amount %q", i+1, line.Amount)
		}
		if !amount.IsPositive() {
			return nil, apperror.Validation("payment line %d: amount must be positive, got %s", i+1, amount)
		}
		parsed = append(parsed, parsedPaymentLine{
			typeID:   typeID,
			amount:   amount.Round(2),
			currency: line.Currency,
			method:   line.Method,
		})
	}
	return parsed, nil
}

func lifecycleSnapshot(c *model.Contract) map[string]interface{} {
	snap := map[string]interface{}{
		"status":      c.Status,
		"end_mileage": c.EndMileage,
	}
	if c.ActualEndDate != nil {
		snap["actual_end_date"] = c.ActualEndDate.Format(dateLayout)
	}
	return snap
}

func (s *contractService) publish(event string, contract *model.Contract) {
	if s.events == nil || contract == nil {
		return
	}
	payload, err := json.Marshal(map[string]string{
		"event":       event,
		"contract_id": contract.ID.String(),
		"status":      contract.Status,
	})
	if err != nil {
		return
	}
	s.events.Publish(payload)
}

func toPaymentResponse(p model.PaymentRecord) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID.String(),
		PaymentTypeID: p.PaymentTypeID.String(),
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		Method:        p.Method,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaymentType != nil {
		resp.PaymentType = p.PaymentType.Name
	}
	return resp
}

func toContractResponse(c model.Contract) ContractResponse {
	resp := ContractResponse{
		ID:            c.ID.String(),
		CompanyCarID:  c.CompanyCarID.String(),
		ClientID:      c.ClientID.String(),
		StartDate:     c.StartDate.Format(dateLayout),
		EndDate:       c.EndDate.Format(dateLayout),
		TotalAmount:   c.TotalAmount.StringFixed(2),
		Currency:      c.Currency,
		Status:        c.Status,
		FullInsurance: c.FullInsurance,
		BabySeat:      c.BabySeat,
		IslandTrip:    c.IslandTrip,
		KrabiTrip:     c.KrabiTrip,
		PickupCost:    c.PickupCost.StringFixed(2),
		ReturnCost:    c.ReturnCost.StringFixed(2),
		StartMileage:  c.StartMileage,
		EndMileage:    c.EndMileage,
		FuelLevel:     c.FuelLevel,
		Cleanliness:   c.Cleanliness,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.ActualEndDate != nil {
		d := c.ActualEndDate.Format(dateLayout)
		resp.ActualEndDate = &d
	}
	if c.CompanyCar != nil {
		resp.CarPlate = c.CompanyCar.PlateNumber
	}
	if c.Client != nil {
		resp.ClientName = c.Client.FullName
	}
	return resp
}
