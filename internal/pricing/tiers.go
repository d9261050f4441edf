package pricing

import (
	"sort"

	"rentalops/pkg/apperror"

	"github.com/shopspring/decimal"
)

// TierRange is the pure-engine view of a rental duration tier.
// MaxDays == nil marks the unbounded tail.
type TierRange struct {
	RangeName       string
	MinDays         int
	MaxDays         *int
	PriceMultiplier decimal.Decimal
	DiscountLabel   string
}

// ValidateCoverage checks that the tiers, sorted by MinDays, partition
// [1, ∞): the first tier starts at day 1, each tier ends exactly one day
// before the next begins, and only the last tier is unbounded. An empty
// set is valid (no tiers configured is a legitimate degenerate state).
// The input slice is not modified.
func ValidateCoverage(tiers []TierRange) error {
	if len(tiers) == 0 {
		return nil
	}

	sorted := make([]TierRange, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinDays < sorted[j].MinDays
	})

	for _, t := range sorted {
		if t.MinDays < 1 {
			return apperror.Validation("tier %q: min_days must be at least 1, got %d", t.RangeName, t.MinDays)
		}
		if t.MaxDays != nil && *t.MaxDays < t.MinDays {
			return apperror.Validation("tier %q: max_days %d is less than min_days %d", t.RangeName, *t.MaxDays, t.MinDays)
		}
		if !t.PriceMultiplier.IsPositive() {
			return apperror.Validation("tier %q: price_multiplier must be positive", t.RangeName)
		}
	}

	if sorted[0].MinDays != 1 {
		return apperror.Validation("tier set must start at day 1, first tier starts at day %d", sorted[0].MinDays)
	}

	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]
		if cur.MaxDays == nil {
			return apperror.Validation("tier %q is unbounded but is not the last tier: day %d is covered twice", cur.RangeName, next.MinDays)
		}
		if next.MinDays != *cur.MaxDays+1 {
			if next.MinDays > *cur.MaxDays+1 {
				return apperror.Validation("gap in tier coverage: day %d is not covered by any tier", *cur.MaxDays+1)
			}
			return apperror.Validation("overlapping tiers: day %d is covered by both %q and %q", next.MinDays, cur.RangeName, next.RangeName)
		}
	}

	if sorted[len(sorted)-1].MaxDays != nil {
		return apperror.Validation("last tier %q must be unbounded to cover all rental lengths", sorted[len(sorted)-1].RangeName)
	}

	return nil
}

// ResolveTier returns the tier covering the given rental length, or nil
// when no tier set is configured.
func ResolveTier(tiers []TierRange, days int) *TierRange {
	for i := range tiers {
		t := &tiers[i]
		if days >= t.MinDays && (t.MaxDays == nil || days <= *t.MaxDays) {
			return t
		}
	}
	return nil
}
