package usecase

import (
	"testing"
	"time"
)

func ptr(f float64) *float64 { return &f }

func window(hours int) (time.Time, time.Time) {
	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func TestDurationHours(t *testing.T) {
	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dropoff time.Time
		want    int
		wantErr bool
	}{
		{"exact hours", start.Add(4 * time.Hour), 4, false},
		{"partial hour rounds up", start.Add(90 * time.Minute), 2, false},
		{"sub hour bills one hour", start.Add(20 * time.Minute), 1, false},
		{"seven days", start.Add(168 * time.Hour), 168, false},
		{"zero duration", start, 0, true},
		{"dropoff before pickup", start.Add(-1 * time.Hour), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationHours(start, tt.dropoff)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d hours, want %d", got, tt.want)
			}
		})
	}
}

func TestComputePrice(t *testing.T) {
	pct := Percentages{GST: 18, ServiceFee: 5, AdvancePayment: 5}

	tests := []struct {
		name       string
		hours      int
		hourlyRate float64
		tiers      RateTiers
		want       PriceBreakdown
	}{
		{
			name:       "hourly pricing no tiers",
			hours:      4,
			hourlyRate: 100,
			want: PriceBreakdown{
				DurationHours:  4,
				BasePrice:      400,
				GST:            72,
				ServiceFee:     20,
				TotalAmount:    492,
				AdvancePayment: 25,
			},
		},
		{
			name:       "7 day tier overrides hourly",
			hours:      150,
			hourlyRate: 100,
			tiers:      RateTiers{Price7Days: ptr(5000)},
			want: PriceBreakdown{
				DurationHours:  150,
				BasePrice:      5000,
				GST:            900,
				ServiceFee:     250,
				TotalAmount:    6150,
				AdvancePayment: 308,
			},
		},
		{
			name:       "boundary 168h uses 7 day tier",
			hours:      168,
			hourlyRate: 100,
			tiers:      RateTiers{Price7Days: ptr(5000), Price15Days: ptr(9000)},
			want: PriceBreakdown{
				DurationHours:  168,
				BasePrice:      5000,
				GST:            900,
				ServiceFee:     250,
				TotalAmount:    6150,
				AdvancePayment: 308,
			},
		},
		{
			name:       "169h rolls to 15 day tier",
			hours:      169,
			hourlyRate: 100,
			tiers:      RateTiers{Price7Days: ptr(5000), Price15Days: ptr(9000)},
			want: PriceBreakdown{
				DurationHours:  169,
				BasePrice:      9000,
				GST:            1620,
				ServiceFee:     450,
				TotalAmount:    11070,
				AdvancePayment: 554,
			},
		},
		{
			name:       "missing tier falls back to hourly",
			hours:      200,
			hourlyRate: 50,
			tiers:      RateTiers{Price7Days: ptr(5000)},
			want: PriceBreakdown{
				DurationHours:  200,
				BasePrice:      10000,
				GST:            1800,
				ServiceFee:     500,
				TotalAmount:    12300,
				AdvancePayment: 615,
			},
		},
		{
			name:       "30 day tier",
			hours:      700,
			hourlyRate: 100,
			tiers:      RateTiers{Price30Days: ptr(15000)},
			want: PriceBreakdown{
				DurationHours:  700,
				BasePrice:      15000,
				GST:            2700,
				ServiceFee:     750,
				TotalAmount:    18450,
				AdvancePayment: 923,
			},
		},
		{
			name:       "beyond 30 days always hourly",
			hours:      721,
			hourlyRate: 10,
			tiers:      RateTiers{Price30Days: ptr(15000)},
			want: PriceBreakdown{
				DurationHours:  721,
				BasePrice:      7210,
				GST:            1298,
				ServiceFee:     361,
				TotalAmount:    8869,
				AdvancePayment: 443,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pickup, dropoff := window(tt.hours)
			got, err := ComputePrice(pickup, dropoff, tt.hourlyRate, tt.tiers, pct)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The total must be the exact sum of its rounded components, not a
// separately rounded figure.
func TestComputePriceComponentsSum(t *testing.T) {
	pct := Percentages{GST: 18, ServiceFee: 5, AdvancePayment: 5}
	rates := []float64{33.33, 57.5, 99.99, 120.01}

	for _, rate := range rates {
		for _, hours := range []int{1, 3, 7, 24, 167, 361, 719, 1000} {
			pickup, dropoff := window(hours)
			got, err := ComputePrice(pickup, dropoff, rate, RateTiers{}, pct)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sum := got.BasePrice + got.GST + got.ServiceFee; got.TotalAmount != sum {
				t.Errorf("rate %.2f hours %d: total %.2f != components sum %.2f",
					rate, hours, got.TotalAmount, sum)
			}
		}
	}
}

func TestComputePriceInvalidWindow(t *testing.T) {
	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	if _, err := ComputePrice(start, start, 100, RateTiers{}, Percentages{}); err == nil {
		t.Error("expected error for zero-length window")
	}
	if _, err := ComputePrice(start, start.Add(-time.Hour), 100, RateTiers{}, Percentages{}); err == nil {
		t.Error("expected error for negative window")
	}
}
