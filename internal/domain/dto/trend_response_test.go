package dto

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func TestNewTrendResponse(t *testing.T) {
	lbl := func(m time.Month, d int) models.BucketLabel {
		return models.BucketLabel{Frequency: models.Quarterly, Date: civil.Date{Year: 2022, Month: m, Day: d}}
	}
	rep := &models.TrendReport{
		Frequency: models.Quarterly,
		Year:      2022,
		Currency:  "EUR",
		Window:    2,
		Series: models.AggregatedSeries{
			Frequency:  models.Quarterly,
			Currencies: []string{"EUR"},
			Buckets: []models.Bucket{
				{Label: lbl(3, 31), Rates: map[string]float64{"EUR": 0.905}},
				{Label: lbl(6, 30), Rates: map[string]float64{}},
				{Label: lbl(9, 30), Rates: map[string]float64{"EUR": 0.98}},
			},
		},
		Peak:   models.Extremum{Value: 0.98, Label: lbl(9, 30)},
		Trough: models.Extremum{Value: 0.905, Label: lbl(3, 31)},
		Volatility: []models.VolatilityPoint{
			{Label: lbl(3, 31)},
			{Label: lbl(6, 30)},
			{Label: lbl(9, 30), Value: ptr(0.1), Risk: models.RiskLow},
		},
	}

	got := NewTrendResponse(rep)
	want := TrendResponse{
		Frequency: "Quarterly",
		Year:      2022,
		Currency:  "EUR",
		Window:    2,
		Points: []TrendPoint{
			{Label: "2022-03-31", Rate: ptr(0.905)},
			{Label: "2022-06-30", Rate: nil},
			{Label: "2022-09-30", Rate: ptr(0.98), Volatility: ptr(0.1), Risk: "Low"},
		},
		Peak:   ExtremumResponse{Label: "2022-09-30", Value: 0.98, Display: "0.98"},
		Trough: ExtremumResponse{Label: "2022-03-31", Value: 0.905, Display: "0.91"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]string{
		0:        "0.00",
		0.0085:   "0.01",
		0.004:    "0.00",
		150.2:    "150.20",
		1.005:    "1.01",
		-0.125:   "-0.13",
		1234.567: "1234.57",
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNewBasketResponse(t *testing.T) {
	got := NewBasketResponse(&models.BasketResult{Base: "USD", BasketRate: 0.85, TotalWeight: 100, WeightedAverage: 0.0085})
	if got.BasketRateDisplay != "0.85" || got.WeightedAverageDisplay != "0.01" || got.TotalWeight != 100 {
		t.Fatalf("unexpected %+v", got)
	}
}
