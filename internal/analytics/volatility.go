package analytics

import (
	"iter"
	"math"
	"slices"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// DefaultVolatilityWindow is the number of trailing buckets per rolling value.
const DefaultVolatilityWindow = 5

// Volatility returns the rolling sample standard deviation of currency over
// window consecutive buckets, one point per bucket of aggregated.
//
// The first window-1 points are absent, and so is any point whose window
// contains a bucket where the currency is missing. Defined points are flagged
// High when strictly above the mean of all defined values, Low otherwise.
//
// The returned sequence is computed on iteration and holds a reference to
// aggregated, so it can be ranged over again.
func Volatility(aggregated models.AggregatedSeries, currency string, window int) (iter.Seq[models.VolatilityPoint], error) {
	if window < 2 {
		return nil, &InvalidWindowError{Window: window}
	}
	if !aggregated.Has(currency) {
		return nil, &CurrencyNotFoundError{Currency: currency, Where: "series"}
	}

	return func(yield func(models.VolatilityPoint) bool) {
		values := rollingStd(aggregated.Buckets, currency, window)
		mean, ok := meanDefined(values)

		for i, b := range aggregated.Buckets {
			p := models.VolatilityPoint{Label: b.Label, Value: values[i]}
			if p.Value != nil && ok {
				if *p.Value > mean {
					p.Risk = models.RiskHigh
				} else {
					p.Risk = models.RiskLow
				}
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

// CollectVolatility is Volatility materialised into a slice.
func CollectVolatility(aggregated models.AggregatedSeries, currency string, window int) ([]models.VolatilityPoint, error) {
	seq, err := Volatility(aggregated, currency, window)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// MeanVolatility returns the mean of the defined rolling values, used as the
// risk threshold line. ok is false when no value is defined.
func MeanVolatility(points []models.VolatilityPoint) (mean float64, ok bool) {
	values := make([]*float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return meanDefined(values)
}

func rollingStd(buckets []models.Bucket, currency string, window int) []*float64 {
	out := make([]*float64, len(buckets))
	for i := window - 1; i < len(buckets); i++ {
		sample := make([]float64, 0, window)
		for _, b := range buckets[i-window+1 : i+1] {
			v, ok := b.Value(currency)
			if !ok {
				break
			}
			sample = append(sample, v)
		}
		if len(sample) != window {
			continue
		}
		sd := sampleStd(sample)
		out[i] = &sd
	}
	return out
}

func sampleStd(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}

func meanDefined(values []*float64) (float64, bool) {
	var sum float64
	n := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
