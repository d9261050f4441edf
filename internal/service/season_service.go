package service

import (
	"context"
	"time"

	"rentalops/internal/model"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateSeasonRequest struct {
	Name             string `json:"name" binding:"required"`
	StartMonth       int    `json:"start_month" binding:"required,min=1,max=12"`
	StartDay         int    `json:"start_day" binding:"required,min=1,max=31"`
	EndMonth         int    `json:"end_month" binding:"required,min=1,max=12"`
	EndDay           int    `json:"end_day" binding:"required,min=1,max=31"`
	PriceCoefficient string `json:"price_coefficient" binding:"required"` // decimal string, 1.0 = baseline
}

type SeasonResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StartMonth       int    `json:"start_month"`
	StartDay         int    `json:"start_day"`
	EndMonth         int    `json:"end_month"`
	EndDay           int    `json:"end_day"`
	PriceCoefficient string `json:"price_coefficient"`
}

// --- Interface ---

// SeasonService is the read-mostly season table. Contracts and quotes
// resolve a date to the first season (in insertion order) whose
// recurring month-day range contains it; no match means baseline 1.0.
type SeasonService interface {
	GetSeasons(ctx context.Context) ([]SeasonResponse, error)
	CreateSeason(ctx context.Context, req CreateSeasonRequest, userID string) (SeasonResponse, error)
}

type seasonService struct {
	seasonRepo repository.SeasonRepository
	auditRepo  repository.AuditRepository
}

func NewSeasonService(seasonRepo repository.SeasonRepository, auditRepo repository.AuditRepository) SeasonService {
	return &seasonService{seasonRepo: seasonRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *seasonService) GetSeasons(ctx context.Context) ([]SeasonResponse, error) {
	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch seasons")
	}

	res := make([]SeasonResponse, 0, len(seasons))
	for _, season := range seasons {
		res = append(res, toSeasonResponse(season))
	}
	return res, nil
}

func (s *seasonService) CreateSeason(ctx context.Context, req CreateSeasonRequest, userID string) (SeasonResponse, error) {
	coef, err := decimal.NewFromString(req.PriceCoefficient)
	if err != nil {
		return SeasonResponse{}, apperror.Validation("invalid price_coefficient %q", req.PriceCoefficient)
	}
	if !coef.IsPositive() {
		return SeasonResponse{}, apperror.Validation("price_coefficient must be positive, got %s", coef)
	}
	if !validMonthDay(req.StartMonth, req.StartDay) || !validMonthDay(req.EndMonth, req.EndDay) {
		return SeasonResponse{}, apperror.Validation("invalid month-day boundary")
	}

	season := model.SeasonDefinition{
		Name:             req.Name,
		StartMonth:       req.StartMonth,
		StartDay:         req.StartDay,
		EndMonth:         req.EndMonth,
		EndDay:           req.EndDay,
		PriceCoefficient: coef,
	}
	if err := s.seasonRepo.Create(ctx, &season); err != nil {
		return SeasonResponse{}, apperror.Persistence(err, "failed to create season")
	}

	// Best-effort audit outside any transaction; season creation is a
	// single-row write.
	_ = s.auditRepo.Record(ctx, "season", season.ID.String(), model.ActionCreateSeason, nil, req, parseUserID(userID))

	return toSeasonResponse(season), nil
}

// --- Helpers ---

func validMonthDay(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// Use a leap year so Feb 29 is accepted as a recurring boundary.
	return day <= time.Date(2024, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// resolveSeason returns the first season containing the date, or nil.
func resolveSeason(seasons []model.SeasonDefinition, date time.Time) *model.SeasonDefinition {
	for i := range seasons {
		if seasons[i].Contains(date) {
			return &seasons[i]
		}
	}
	return nil
}

func toSeasonResponse(s model.SeasonDefinition) SeasonResponse {
	return SeasonResponse{
		ID:               s.ID.String(),
		Name:             s.Name,
		StartMonth:       s.StartMonth,
		StartDay:         s.StartDay,
		EndMonth:         s.EndMonth,
		EndDay:           s.EndDay,
		PriceCoefficient: s.PriceCoefficient.StringFixed(4),
	}
}
