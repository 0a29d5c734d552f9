package analytics

import "github.com/guttosm/fxpulse/internal/domain/models"

// Extrema returns the peak and trough of currency across the aggregated buckets.
//
// Ties resolve to the earliest bucket, both for the maximum and the minimum.
// Buckets where the currency is missing are skipped.
func Extrema(aggregated models.AggregatedSeries, currency string) (peak, trough models.Extremum, err error) {
	found := false
	for _, b := range aggregated.Buckets {
		v, ok := b.Value(currency)
		if !ok {
			continue
		}
		if !found {
			peak = models.Extremum{Value: v, Label: b.Label}
			trough = peak
			found = true
			continue
		}
		// Strict comparisons keep the first occurrence on ties.
		if v > peak.Value {
			peak = models.Extremum{Value: v, Label: b.Label}
		}
		if v < trough.Value {
			trough = models.Extremum{Value: v, Label: b.Label}
		}
	}
	if !found {
		return models.Extremum{}, models.Extremum{}, &CurrencyNotFoundError{Currency: currency, Where: "series"}
	}
	return peak, trough, nil
}
