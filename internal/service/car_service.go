package service

import (
	"context"

	"rentalops/internal/model"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateCarRequest struct {
	CompanyID   string `json:"company_id" binding:"required"`
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model" binding:"required"`
	PlateNumber string `json:"plate_number" binding:"required"`
	PricePerDay string `json:"price_per_day" binding:"required"` // decimal string
	Deposit     string `json:"deposit"`
}

type CarResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	PricePerDay string `json:"price_per_day"`
	Deposit     string `json:"deposit"`
	Status      string `json:"status"`
}

// --- Interface ---

type CarService interface {
	CreateCar(ctx context.Context, req CreateCarRequest, actor Actor) (CarResponse, error)
	ListCars(ctx context.Context, page, limit int, actor Actor) ([]CarResponse, int64, error)
}

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

// --- Implementation ---

func (s *carService) CreateCar(ctx context.Context, req CreateCarRequest, actor Actor) (CarResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return CarResponse{}, apperror.Validation("invalid company id %q", req.CompanyID)
	}
	if actor.Role != "admin" && actor.CompanyID != req.CompanyID {
		return CarResponse{}, apperror.Forbidden("cannot add cars to another company's fleet")
	}

	price, err := decimal.NewFromString(req.PricePerDay)
	if err != nil || !price.IsPositive() {
		return CarResponse{}, apperror.Validation("invalid price_per_day %q", req.PricePerDay)
	}

	deposit := decimal.Zero
	if req.Deposit != "" {
		deposit, err = decimal.NewFromString(req.Deposit)
		if err != nil || deposit.IsNegative() {
			return CarResponse{}, apperror.Validation("invalid deposit %q", req.Deposit)
		}
	}

	car := model.CompanyCar{
		CompanyID:   companyID,
		Make:        req.Make,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		PricePerDay: price.Round(2),
		Deposit:     deposit.Round(2),
		Status:      model.CarAvailable,
	}
	if err := s.carRepo.Create(ctx, &car); err != nil {
		return CarResponse{}, apperror.Persistence(err, "failed to create car")
	}

	return toCarResponse(car), nil
}

func (s *carService) ListCars(ctx context.Context, page, limit int, actor Actor) ([]CarResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return nil, 0, apperror.Forbidden("caller has no company scope")
	}

	cars, total, err := s.carRepo.ListByCompany(ctx, companyID, page, limit)
	if err != nil {
		return nil, 0, apperror.Persistence(err, "failed to fetch cars")
	}

	res := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		res = append(res, toCarResponse(car))
	}
	return res, total, nil
}

// --- Helpers ---

func toCarResponse(car model.CompanyCar) CarResponse {
	return CarResponse{
		ID:          car.ID.String(),
		CompanyID:   car.CompanyID.String(),
		Make:        car.Make,
		Model:       car.Model,
		PlateNumber: car.PlateNumber,
		PricePerDay: car.PricePerDay.StringFixed(2),
		Deposit:     car.Deposit.StringFixed(2),
		Status:      car.Status,
	}
}
