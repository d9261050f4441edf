package pricing

import (
	"sort"
	"time"

	"rentalops/pkg/apperror"

	"github.com/shopspring/decimal"
)

// All monetary arithmetic rounds half away from zero to 2 decimal places
// (the currency minor unit), applied to every line and to the total, so a
// displayed quote and a charged total are reproducible.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Season is the pure-engine view of a seasonal coefficient.
type Season struct {
	Name        string
	Coefficient decimal.Decimal
}

// EffectiveDailyRate is the single per-day price formula: base price
// scaled by the season coefficient and the duration-tier multiplier.
// It feeds both the quote matrix and the authoritative booking total.
func EffectiveDailyRate(base, seasonCoef, tierMult decimal.Decimal) decimal.Decimal {
	if seasonCoef.IsZero() {
		seasonCoef = decimal.NewFromInt(1)
	}
	if tierMult.IsZero() {
		tierMult = decimal.NewFromInt(1)
	}
	return roundMoney(base.Mul(seasonCoef).Mul(tierMult))
}

// QuoteCell is one (season, tier) entry of the preview matrix.
type QuoteCell struct {
	SeasonName   string          `json:"season_name"`
	TierName     string          `json:"tier_name"`
	Days         int             `json:"days"` // tier max, or sample days for the unbounded tier
	DailyPrice   decimal.Decimal `json:"daily_price"`
	TotalForTier decimal.Decimal `json:"total_for_tier"`
}

// QuoteMatrixInput bundles everything the preview needs. SampleDays is
// the day count used for the unbounded tail tier. When MaxSeasons > 0
// and more seasons exist, seasons are ranked by coefficient descending
// (stable, so insertion order breaks ties) and the list truncated.
type QuoteMatrixInput struct {
	BasePricePerDay decimal.Decimal
	Seasons         []Season
	Tiers           []TierRange
	SampleDays      int
	MaxSeasons      int
}

// QuoteMatrix computes the informational price preview. It never feeds a
// charge; BookingTotal is the authoritative path.
func QuoteMatrix(in QuoteMatrixInput) []QuoteCell {
	seasons := in.Seasons
	if len(seasons) == 0 {
		seasons = []Season{{Name: "Standard", Coefficient: decimal.NewFromInt(1)}}
	}
	if in.MaxSeasons > 0 && len(seasons) > in.MaxSeasons {
		ranked := make([]Season, len(seasons))
		copy(ranked, seasons)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Coefficient.GreaterThan(ranked[j].Coefficient)
		})
		seasons = ranked[:in.MaxSeasons]
	}

	sampleDays := in.SampleDays
	if sampleDays < 1 {
		sampleDays = 30
	}

	cells := make([]QuoteCell, 0, len(seasons)*len(in.Tiers))
	for _, season := range seasons {
		for _, tier := range in.Tiers {
			days := sampleDays
			if tier.MaxDays != nil {
				days = *tier.MaxDays
			}
			daily := EffectiveDailyRate(in.BasePricePerDay, season.Coefficient, tier.PriceMultiplier)
			cells = append(cells, QuoteCell{
				SeasonName:   season.Name,
				TierName:     tier.RangeName,
				Days:         days,
				DailyPrice:   daily,
				TotalForTier: roundMoney(daily.Mul(decimal.NewFromInt(int64(days)))),
			})
		}
	}
	return cells
}

// RentalDays is the chargeable day count: the date span rounded up to
// whole days.
func RentalDays(start, end time.Time) int {
	span := end.Sub(start)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// BookingInput bundles the inputs of the authoritative charged total.
// Zero SeasonCoefficient/TierMultiplier mean "not configured" and scale
// by 1. Delivery prices are per chosen leg; nil means no delivery.
type BookingInput struct {
	PricePerDay decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time

	SeasonCoefficient decimal.Decimal
	TierMultiplier    decimal.Decimal

	FullInsurance         bool
	FullInsuranceMinPrice decimal.Decimal // per day
	BabySeat              bool
	BabySeatPricePerDay   decimal.Decimal
	IslandTrip            bool
	IslandTripPrice       decimal.Decimal // flat
	KrabiTrip             bool
	KrabiTripPrice        decimal.Decimal // flat

	PickupDeliveryPrice *decimal.Decimal
	ReturnDeliveryPrice *decimal.Decimal
}

// BookingQuote itemizes the charged total. Total is exactly the sum of
// the lines, each rounded with the single money rounding rule.
type BookingQuote struct {
	Days               int             `json:"days"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	Base               decimal.Decimal `json:"base"`
	FullInsurancePrice decimal.Decimal `json:"full_insurance_price"`
	BabySeatPrice      decimal.Decimal `json:"baby_seat_price"`
	IslandTripPrice    decimal.Decimal `json:"island_trip_price"`
	KrabiTripPrice     decimal.Decimal `json:"krabi_trip_price"`
	PickupCost         decimal.Decimal `json:"pickup_cost"`
	ReturnCost         decimal.Decimal `json:"return_cost"`
	Total              decimal.Decimal `json:"total"`
}

// BookingTotal computes the authoritative charged total: effective daily
// rate times days, plus per-day and flat add-on lines, plus flat delivery
// fees. Rejects spans shorter than one day.
func BookingTotal(in BookingInput) (BookingQuote, error) {
	days := RentalDays(in.StartDate, in.EndDate)
	if days < 1 {
		return BookingQuote{}, apperror.Validation("rental must span at least one day, got start %s and end %s",
			in.StartDate.Format("2006-01-02"), in.EndDate.Format("2006-01-02"))
	}

	nDays := decimal.NewFromInt(int64(days))
	daily := EffectiveDailyRate(in.PricePerDay, in.SeasonCoefficient, in.TierMultiplier)

	q := BookingQuote{
		Days:      days,
		DailyRate: daily,
		Base:      roundMoney(daily.Mul(nDays)),
	}

	if in.FullInsurance {
		q.FullInsurancePrice = roundMoney(in.FullInsuranceMinPrice.Mul(nDays))
	}
	if in.BabySeat {
		q.BabySeatPrice = roundMoney(in.BabySeatPricePerDay.Mul(nDays))
	}
	if in.IslandTrip {
		q.IslandTripPrice = roundMoney(in.IslandTripPrice)
	}
	if in.KrabiTrip {
		q.KrabiTripPrice = roundMoney(in.KrabiTripPrice)
	}
	if in.PickupDeliveryPrice != nil {
		q.PickupCost = roundMoney(*in.PickupDeliveryPrice)
	}
	if in.ReturnDeliveryPrice != nil {
		q.ReturnCost = roundMoney(*in.ReturnDeliveryPrice)
	}

	q.Total = q.Base.
		Add(q.FullInsurancePrice).
		Add(q.BabySeatPrice).
		Add(q.IslandTripPrice).
		Add(q.KrabiTripPrice).
		Add(q.PickupCost).
		Add(q.ReturnCost)

	return q, nil
}
