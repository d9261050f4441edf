package pricing

import (
	"testing"

	"rentalops/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func tier(name string, min int, max *int, mult string) TierRange {
	return TierRange{
		RangeName:       name,
		MinDays:         min,
		MaxDays:         max,
		PriceMultiplier: decimal.RequireFromString(mult),
	}
}

func TestValidateCoverage(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []TierRange
		wantErr string
	}{
		{
			name:  "empty set is valid",
			tiers: nil,
		},
		{
			name: "contiguous partition with unbounded tail",
			tiers: []TierRange{
				tier("short", 1, intPtr(3), "1.0"),
				tier("week", 4, intPtr(7), "0.95"),
				tier("long", 8, nil, "0.9"),
			},
		},
		{
			name: "unsorted input is sorted before checking",
			tiers: []TierRange{
				tier("long", 8, nil, "0.9"),
				tier("short", 1, intPtr(3), "1.0"),
				tier("week", 4, intPtr(7), "0.95"),
			},
		},
		{
			name: "single unbounded tier",
			tiers: []TierRange{
				tier("any", 1, nil, "1.0"),
			},
		},
		{
			name: "first tier must start at day 1",
			tiers: []TierRange{
				tier("short", 2, intPtr(7), "1.0"),
				tier("long", 8, nil, "0.9"),
			},
			wantErr: "tier set must start at day 1, first tier starts at day 2",
		},
		{
			name: "gap between tiers names the uncovered day",
			tiers: []TierRange{
				tier("short", 1, intPtr(3), "1.0"),
				tier("long", 6, nil, "0.9"),
			},
			wantErr: "gap in tier coverage: day 4 is not covered by any tier",
		},
		{
			name: "overlap names the doubly covered day",
			tiers: []TierRange{
				tier("short", 1, intPtr(4), "1.0"),
				tier("week", 4, intPtr(7), "0.95"),
				tier("long", 8, nil, "0.9"),
			},
			wantErr: `overlapping tiers: day 4 is covered by both "short" and "week"`,
		},
		{
			name: "max below min",
			tiers: []TierRange{
				tier("bad", 5, intPtr(3), "1.0"),
			},
			wantErr: `tier "bad": max_days 3 is less than min_days 5`,
		},
		{
			name: "min below 1",
			tiers: []TierRange{
				tier("bad", 0, nil, "1.0"),
			},
			wantErr: `tier "bad": min_days must be at least 1, got 0`,
		},
		{
			name: "unbounded tier in the middle",
			tiers: []TierRange{
				tier("tail", 8, nil, "0.9"),
				tier("short", 1, intPtr(7), "1.0"),
				tier("also", 8, intPtr(14), "0.85"),
			},
			wantErr: `tier "tail" is unbounded but is not the last tier: day 8 is covered twice`,
		},
		{
			name: "bounded last tier leaves the tail uncovered",
			tiers: []TierRange{
				tier("short", 1, intPtr(7), "1.0"),
				tier("long", 8, intPtr(30), "0.9"),
			},
			wantErr: `last tier "long" must be unbounded to cover all rental lengths`,
		},
		{
			name: "non-positive multiplier",
			tiers: []TierRange{
				tier("free", 1, nil, "0"),
			},
			wantErr: `tier "free": price_multiplier must be positive`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCoverage(tc.tiers)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestValidateCoverageDoesNotMutateInput(t *testing.T) {
	tiers := []TierRange{
		tier("long", 8, nil, "0.9"),
		tier("short", 1, intPtr(7), "1.0"),
	}
	require.NoError(t, ValidateCoverage(tiers))
	assert.Equal(t, "long", tiers[0].RangeName)
	assert.Equal(t, "short", tiers[1].RangeName)
}

func TestResolveTier(t *testing.T) {
	tiers := []TierRange{
		tier("short", 1, intPtr(3), "1.0"),
		tier("week", 4, intPtr(7), "0.95"),
		tier("long", 8, nil, "0.9"),
	}

	assert.Equal(t, "short", ResolveTier(tiers, 1).RangeName)
	assert.Equal(t, "short", ResolveTier(tiers, 3).RangeName)
	assert.Equal(t, "week", ResolveTier(tiers, 4).RangeName)
	assert.Equal(t, "long", ResolveTier(tiers, 8).RangeName)
	assert.Equal(t, "long", ResolveTier(tiers, 365).RangeName)
	assert.Nil(t, ResolveTier(nil, 5))
}
