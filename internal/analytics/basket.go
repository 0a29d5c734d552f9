package analytics

import (
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

const (
	MinBasketSize = 1
	MaxBasketSize = 10
)

// BasketRate evaluates a weighted basket against one rate snapshot.
//
// Computation:
//
//	basket_rate      = Σ snapshot[c] * weight/100
//	weighted_average = basket_rate / total_weight   (0 when total_weight == 0)
//
// Errors:
//   - *BasketSizeError when components holds fewer than 1 or more than 10 entries.
//   - *InvalidWeightError for any weight outside [0, 100]; every offending
//     component is reported, combined into a *multierror.Error.
//   - *CurrencyNotFoundError when a component currency is absent from snapshot.
//     Missing currencies are never treated as zero.
func BasketRate(base string, components []models.BasketComponent, snapshot models.RateSnapshot) (models.BasketResult, error) {
	if err := ValidateBasket(components); err != nil {
		return models.BasketResult{}, err
	}

	res := models.BasketResult{Base: base}
	for _, c := range components {
		rate, ok := snapshot.Rates[c.Currency]
		if !ok {
			return models.BasketResult{}, &CurrencyNotFoundError{Currency: c.Currency, Where: "snapshot"}
		}
		res.BasketRate += rate * (c.WeightPercent / 100)
		res.TotalWeight += c.WeightPercent
	}

	if res.TotalWeight > 0 {
		res.WeightedAverage = res.BasketRate / res.TotalWeight
	}
	return res, nil
}

// ValidateBasket checks the size and weight bounds of a basket without touching any rates.
func ValidateBasket(components []models.BasketComponent) error {
	if n := len(components); n < MinBasketSize || n > MaxBasketSize {
		return &BasketSizeError{Size: n}
	}

	var result *multierror.Error
	for i, c := range components {
		w := c.WeightPercent
		if math.IsNaN(w) || w < 0 || w > 100 {
			result = multierror.Append(result, &InvalidWeightError{Index: i, Currency: c.Currency, Weight: w})
		}
	}
	return result.ErrorOrNil()
}
