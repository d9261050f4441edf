package service

import (
	"context"
	"errors"

	"rentalops/internal/model"
	"rentalops/internal/pricing"
	"rentalops/internal/repository"
	"rentalops/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// TierRequest carries tier fields over the wire. MaxDays 0 is the
// sentinel for the unbounded tail tier.
type TierRequest struct {
	RangeName       string `json:"range_name" binding:"required"`
	MinDays         int    `json:"min_days" binding:"required,min=1"`
	MaxDays         int    `json:"max_days"` // 0 = unlimited
	PriceMultiplier string `json:"price_multiplier" binding:"required"` // decimal string, e.g. "0.95"
	DiscountLabel   string `json:"discount_label"`
}

type TierResponse struct {
	ID              string `json:"id"`
	RangeName       string `json:"range_name"`
	MinDays         int    `json:"min_days"`
	MaxDays         *int   `json:"max_days"`
	PriceMultiplier string `json:"price_multiplier"`
	DiscountLabel   string `json:"discount_label"`
}

// --- Interface ---

// TierService owns the rental-length tier set and guarantees that every
// stored state gaplessly and non-overlappingly covers [1, ∞). Each
// mutation validates the full merged tier list before any write; a
// failed validation leaves storage untouched.
type TierService interface {
	GetTiers(ctx context.Context) ([]TierResponse, error)
	CreateTier(ctx context.Context, req TierRequest, userID string) (TierResponse, error)
	UpdateTier(ctx context.Context, id string, req TierRequest, userID string) (TierResponse, error)
	DeleteTier(ctx context.Context, id string, userID string) error
	SeedDefaultTiers(ctx context.Context, userID string) ([]TierResponse, error)
}

type tierService struct {
	tierRepo  repository.TierRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewTierService(tierRepo repository.TierRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) TierService {
	return &tierService{tierRepo: tierRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *tierService) GetTiers(ctx context.Context) ([]TierResponse, error) {
	tiers, err := s.tierRepo.ListOrdered(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to fetch duration tiers")
	}

	res := make([]TierResponse, 0, len(tiers))
	for _, t := range tiers {
		res = append(res, toTierResponse(t))
	}
	return res, nil
}

func (s *tierService) CreateTier(ctx context.Context, req TierRequest, userID string) (TierResponse, error) {
	tier, err := tierFromRequest(req)
	if err != nil {
		return TierResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, listErr := s.tierRepo.ListOrdered(txCtx)
		if listErr != nil {
			return apperror.Persistence(listErr, "failed to fetch duration tiers")
		}

		merged := append(toTierRanges(existing), toTierRange(*tier))
		if covErr := pricing.ValidateCoverage(merged); covErr != nil {
			return covErr
		}

		if createErr := s.tierRepo.Create(txCtx, tier); createErr != nil {
			return apperror.Persistence(createErr, "failed to create duration tier")
		}

		return s.auditRepo.Record(txCtx, "duration_tier", tier.ID.String(), model.ActionCreateTier, nil, req, parseUserID(userID))
	})
	if err != nil {
		return TierResponse{}, err
	}

	return toTierResponse(*tier), nil
}

func (s *tierService) UpdateTier(ctx context.Context, id string, req TierRequest, userID string) (TierResponse, error) {
	tierID, err := uuid.Parse(id)
	if err != nil {
		return TierResponse{}, apperror.Validation("invalid tier id %q", id)
	}

	updated, err := tierFromRequest(req)
	if err != nil {
		return TierResponse{}, err
	}

	var before model.RentalDurationTier
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.tierRepo.FindByID(txCtx, tierID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("duration tier %s not found", id)
			}
			return apperror.Persistence(findErr, "failed to fetch duration tier")
		}
		before = *current

		existing, listErr := s.tierRepo.ListOrdered(txCtx)
		if listErr != nil {
			return apperror.Persistence(listErr, "failed to fetch duration tiers")
		}

		// Merge: replace the stored row with the candidate, keep the rest.
		merged := make([]pricing.TierRange, 0, len(existing))
		for _, t := range existing {
			if t.ID == tierID {
				continue
			}
			merged = append(merged, toTierRange(t))
		}
		merged = append(merged, toTierRange(*updated))
		if covErr := pricing.ValidateCoverage(merged); covErr != nil {
			return covErr
		}

		current.RangeName = updated.RangeName
		current.MinDays = updated.MinDays
		current.MaxDays = updated.MaxDays
		current.PriceMultiplier = updated.PriceMultiplier
		current.DiscountLabel = updated.DiscountLabel

		if saveErr := s.tierRepo.Update(txCtx, current); saveErr != nil {
			return apperror.Persistence(saveErr, "failed to update duration tier")
		}
		*updated = *current

		return s.auditRepo.Record(txCtx, "duration_tier", id, model.ActionUpdateTier, toTierResponse(before), req, parseUserID(userID))
	})
	if err != nil {
		return TierResponse{}, err
	}

	return toTierResponse(*updated), nil
}

// DeleteTier removes a tier only when the remaining set still covers
// every rental length — a delete that reopens a gap is rejected exactly
// like a bad create.
func (s *tierService) DeleteTier(ctx context.Context, id string, userID string) error {
	tierID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid tier id %q", id)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.tierRepo.FindByID(txCtx, tierID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("duration tier %s not found", id)
			}
			return apperror.Persistence(findErr, "failed to fetch duration tier")
		}

		existing, listErr := s.tierRepo.ListOrdered(txCtx)
		if listErr != nil {
			return apperror.Persistence(listErr, "failed to fetch duration tiers")
		}

		remaining := make([]pricing.TierRange, 0, len(existing)-1)
		for _, t := range existing {
			if t.ID == tierID {
				continue
			}
			remaining = append(remaining, toTierRange(t))
		}
		if covErr := pricing.ValidateCoverage(remaining); covErr != nil {
			return covErr
		}

		if delErr := s.tierRepo.Delete(txCtx, tierID); delErr != nil {
			return apperror.Persistence(delErr, "failed to delete duration tier")
		}

		return s.auditRepo.Record(txCtx, "duration_tier", id, model.ActionDeleteTier, toTierResponse(*current), nil, parseUserID(userID))
	})
}

// SeedDefaultTiers bulk-loads the stock tier set. Rejected when any
// tiers already exist so a re-run cannot clobber a curated set.
func (s *tierService) SeedDefaultTiers(ctx context.Context, userID string) ([]TierResponse, error) {
	defaults := defaultTierSet()

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		count, countErr := s.tierRepo.Count(txCtx)
		if countErr != nil {
			return apperror.Persistence(countErr, "failed to count duration tiers")
		}
		if count > 0 {
			return apperror.Conflict("duration tiers already configured, seed refused")
		}

		if covErr := pricing.ValidateCoverage(toTierRanges(defaults)); covErr != nil {
			return covErr
		}

		if createErr := s.tierRepo.CreateBatch(txCtx, defaults); createErr != nil {
			return apperror.Persistence(createErr, "failed to seed duration tiers")
		}

		return s.auditRepo.Record(txCtx, "duration_tier", "", model.ActionSeedTiers, nil, len(defaults), parseUserID(userID))
	})
	if err != nil {
		return nil, err
	}

	res := make([]TierResponse, 0, len(defaults))
	for _, t := range defaults {
		res = append(res, toTierResponse(t))
	}
	return res, nil
}

// --- Helpers ---

func tierFromRequest(req TierRequest) (*model.RentalDurationTier, error) {
	mult, err := decimal.NewFromString(req.PriceMultiplier)
	if err != nil {
		return nil, apperror.Validation("invalid price_multiplier %q", req.PriceMultiplier)
	}
	if !mult.IsPositive() {
		return nil, apperror.Validation("price_multiplier must be positive, got %s", mult)
	}

	tier := &model.RentalDurationTier{
		RangeName:       req.RangeName,
		MinDays:         req.MinDays,
		PriceMultiplier: mult,
		DiscountLabel:   req.DiscountLabel,
	}
	if req.MaxDays != 0 {
		if req.MaxDays < req.MinDays {
			return nil, apperror.Validation("max_days %d is less than min_days %d", req.MaxDays, req.MinDays)
		}
		maxDays := req.MaxDays
		tier.MaxDays = &maxDays
	}
	return tier, nil
}

func toTierRange(t model.RentalDurationTier) pricing.TierRange {
	return pricing.TierRange{
		RangeName:       t.RangeName,
		MinDays:         t.MinDays,
		MaxDays:         t.MaxDays,
		PriceMultiplier: t.PriceMultiplier,
		DiscountLabel:   t.DiscountLabel,
	}
}

func toTierRanges(tiers []model.RentalDurationTier) []pricing.TierRange {
	ranges := make([]pricing.TierRange, 0, len(tiers))
	for _, t := range tiers {
		ranges = append(ranges, toTierRange(t))
	}
	return ranges
}

func toTierResponse(t model.RentalDurationTier) TierResponse {
	return TierResponse{
		ID:              t.ID.String(),
		RangeName:       t.RangeName,
		MinDays:         t.MinDays,
		MaxDays:         t.MaxDays,
		PriceMultiplier: t.PriceMultiplier.StringFixed(4),
		DiscountLabel:   t.DiscountLabel,
	}
}

func defaultTierSet() []model.RentalDurationTier {
	intPtr := func(v int) *int { return &v }
	dec := func(s string) decimal.Decimal { d, _ := decimal.NewFromString(s); return d }

	return []model.RentalDurationTier{
		{RangeName: "1-3 days", MinDays: 1, MaxDays: intPtr(3), PriceMultiplier: dec("1.00")},
		{RangeName: "4-7 days", MinDays: 4, MaxDays: intPtr(7), PriceMultiplier: dec("0.95"), DiscountLabel: "5% off"},
		{RangeName: "8-14 days", MinDays: 8, MaxDays: intPtr(14), PriceMultiplier: dec("0.90"), DiscountLabel: "10% off"},
		{RangeName: "15-29 days", MinDays: 15, MaxDays: intPtr(29), PriceMultiplier: dec("0.85"), DiscountLabel: "15% off"},
		{RangeName: "30+ days", MinDays: 30, PriceMultiplier: dec("0.80"), DiscountLabel: "20% off"},
	}
}

func parseUserID(userID string) *uuid.UUID {
	if userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}
