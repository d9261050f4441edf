package service

import (
	"context"
	"errors"

	"rentalops/internal/pricing"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxQuoteSeasons caps how many seasons the preview matrix displays.
// When exceeded, seasons rank by coefficient descending (insertion order
// breaks ties) and the tail is dropped.
const maxQuoteSeasons = 4

// QuoteService builds the informational price preview. It is read-only
// and never feeds a charge — ContractService.CreateContract computes the
// authoritative total.
type QuoteService interface {
	QuoteMatrix(ctx context.Context, carID string, sampleDays int) ([]pricing.QuoteCell, error)
}

type quoteService struct {
	carRepo    repository.CarRepository
	tierRepo   repository.TierRepository
	seasonRepo repository.SeasonRepository
}

func NewQuoteService(carRepo repository.CarRepository, tierRepo repository.TierRepository, seasonRepo repository.SeasonRepository) QuoteService {
	return &quoteService{carRepo: carRepo, tierRepo: tierRepo, seasonRepo: seasonRepo}
}

func (s *quoteService) QuoteMatrix(ctx context.Context, carID string, sampleDays int) ([]pricing.QuoteCell, error) {
	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, apperror.Validation("invalid car id %q", carID)
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("car %s not found", carID)
		}
		return nil, apperror.Persistence(err, "failed to fetch car")
	}

	tiers, err := s.tierRepo.ListOrdered(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch duration tiers")
	}

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch seasons")
	}

	pricingSeasons := make([]pricing.Season, 0, len(seasons))
	for _, season := range seasons {
		pricingSeasons = append(pricingSeasons, pricing.Season{
			Name:        season.Name,
			Coefficient: season.PriceCoefficient,
		})
	}

	return pricing.QuoteMatrix(pricing.QuoteMatrixInput{
		BasePricePerDay: car.PricePerDay,
		Seasons:         pricingSeasons,
		Tiers:           toTierRanges(tiers),
		SampleDays:      sampleDays,
		MaxSeasons:      maxQuoteSeasons,
	}), nil
}
