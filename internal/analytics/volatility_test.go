package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

func seriesOf(values ...float64) models.AggregatedSeries {
	out := models.AggregatedSeries{Frequency: models.Annual}
	for i, v := range values {
		rates := map[string]float64{}
		if !math.IsNaN(v) {
			rates["EUR"] = v
		}
		out.Buckets = append(out.Buckets, models.Bucket{
			Label: label(models.Annual, day(2010+i, 1, 1)),
			Rates: rates,
		})
	}
	return out
}

func TestVolatility_FourBucketsAllAbsent(t *testing.T) {
	points, err := CollectVolatility(seriesOf(1, 2, 3, 4), "EUR", DefaultVolatilityWindow)
	if err != nil {
		t.Fatalf("CollectVolatility: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("want 4 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Defined() || p.Risk != "" {
			t.Fatalf("point %d should be absent without risk, got %+v", i, p)
		}
	}
}

func TestVolatility_SixBuckets(t *testing.T) {
	points, err := CollectVolatility(seriesOf(1, 2, 3, 4, 5, 10), "EUR", DefaultVolatilityWindow)
	if err != nil {
		t.Fatalf("CollectVolatility: %v", err)
	}
	for i := 0; i < 4; i++ {
		if points[i].Defined() {
			t.Fatalf("point %d should be absent", i)
		}
	}
	if !points[4].Defined() || !points[5].Defined() {
		t.Fatalf("points 4 and 5 should be defined")
	}

	if got, want := *points[4].Value, math.Sqrt(2.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("std[4]=%v, want %v", got, want)
	}
	if got, want := *points[5].Value, math.Sqrt(9.7); math.Abs(got-want) > 1e-12 {
		t.Fatalf("std[5]=%v, want %v", got, want)
	}
	if points[4].Risk != models.RiskLow || points[5].Risk != models.RiskHigh {
		t.Fatalf("risk flags = %s/%s, want Low/High", points[4].Risk, points[5].Risk)
	}

	mean, ok := MeanVolatility(points)
	if !ok || math.Abs(mean-(math.Sqrt(2.5)+math.Sqrt(9.7))/2) > 1e-12 {
		t.Fatalf("mean=%v ok=%v", mean, ok)
	}
}

func TestVolatility_GapInWindowIsAbsent(t *testing.T) {
	points, err := CollectVolatility(seriesOf(1, 2, math.NaN(), 4, 5, 6, 7, 8, 9), "EUR", 3)
	if err != nil {
		t.Fatalf("CollectVolatility: %v", err)
	}
	// Windows ending at 2, 3 and 4 include the gap.
	for i := 0; i <= 4; i++ {
		if points[i].Defined() {
			t.Fatalf("point %d should be absent", i)
		}
	}
	for i := 5; i < len(points); i++ {
		if !points[i].Defined() {
			t.Fatalf("point %d should be defined", i)
		}
		// Equal spacing gives the same std everywhere, so nothing is strictly above the mean.
		if points[i].Risk != models.RiskLow {
			t.Fatalf("point %d risk=%s, want Low", i, points[i].Risk)
		}
	}
}

func TestVolatility_SequenceIsRestartable(t *testing.T) {
	seq, err := Volatility(seriesOf(1, 2, 3, 4, 5, 6, 7), "EUR", 5)
	if err != nil {
		t.Fatalf("Volatility: %v", err)
	}
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 7 || b != 7 {
		t.Fatalf("ranges yielded %d and %d points, want 7 each", a, b)
	}

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("early break yielded %d", n)
	}
}

func TestVolatility_Errors(t *testing.T) {
	var iwe *InvalidWindowError
	if _, err := Volatility(seriesOf(1, 2), "EUR", 1); !errors.As(err, &iwe) {
		t.Fatalf("want InvalidWindowError, got %v", err)
	}
	var cnf *CurrencyNotFoundError
	if _, err := Volatility(seriesOf(1, 2), "GBP", 5); !errors.As(err, &cnf) {
		t.Fatalf("want CurrencyNotFoundError, got %v", err)
	}
}
