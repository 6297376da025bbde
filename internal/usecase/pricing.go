package usecase

import (
	"fmt"
	"math"
	"time"
)

// Tier thresholds in hours.
const (
	tier7DaysHours  = 168
	tier15DaysHours = 360
	tier30DaysHours = 720
)

// RateTiers are the optional flat prices that override the hourly rate
// for 7/15/30-day rentals. A nil entry means the tier is not offered.
type RateTiers struct {
	Price7Days  *float64
	Price15Days *float64
	Price30Days *float64
}

// Percentages are the configurable rates applied on top of the base
// price. They come from the settings table with config defaults as
// fallback, never hard-coded at call sites.
type Percentages struct {
	GST            float64
	ServiceFee     float64
	AdvancePayment float64
}

// PriceBreakdown is the derived pricing for one rental window. All
// amounts are whole rupees; each component is rounded exactly once, so
// TotalAmount == BasePrice + GST + ServiceFee always holds.
type PriceBreakdown struct {
	DurationHours  int
	BasePrice      float64
	GST            float64
	ServiceFee     float64
	TotalAmount    float64
	AdvancePayment float64
}

// DurationHours returns the billable hours between pickup and dropoff,
// rounded up to the next full hour.
func DurationHours(pickup, dropoff time.Time) (int, error) {
	if !dropoff.After(pickup) {
		return 0, fmt.Errorf("invalid duration: dropoff must be after pickup")
	}

	hours := int(math.Ceil(dropoff.Sub(pickup).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// ComputePrice turns a rental window, hourly rate and tier rates into a
// full price breakdown. Pure function, no side effects.
//
// Base price selection: durations within a tier window use the flat
// tier price when the vehicle offers one, otherwise hourly x hours.
// Beyond 30 days it is always hourly x hours.
func ComputePrice(pickup, dropoff time.Time, hourlyRate float64, tiers RateTiers, pct Percentages) (PriceBreakdown, error) {
	hours, err := DurationHours(pickup, dropoff)
	if err != nil {
		return PriceBreakdown{}, err
	}

	var base float64
	switch {
	case hours <= tier7DaysHours && hasRate(tiers.Price7Days):
		base = *tiers.Price7Days
	case hours <= tier7DaysHours:
		base = hourlyRate * float64(hours)
	case hours <= tier15DaysHours && hasRate(tiers.Price15Days):
		base = *tiers.Price15Days
	case hours <= tier15DaysHours:
		base = hourlyRate * float64(hours)
	case hours <= tier30DaysHours && hasRate(tiers.Price30Days):
		base = *tiers.Price30Days
	case hours <= tier30DaysHours:
		base = hourlyRate * float64(hours)
	default:
		base = hourlyRate * float64(hours)
	}

	base = math.Round(base)
	gst := math.Round(base * pct.GST / 100)
	serviceFee := math.Round(base * pct.ServiceFee / 100)
	total := base + gst + serviceFee
	advance := math.Round(total * pct.AdvancePayment / 100)

	return PriceBreakdown{
		DurationHours:  hours,
		BasePrice:      base,
		GST:            gst,
		ServiceFee:     serviceFee,
		TotalAmount:    total,
		AdvancePayment: advance,
	}, nil
}

func hasRate(rate *float64) bool {
	return rate != nil && *rate > 0
}
