package analytics

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a series has no dated rows left to aggregate.
var ErrEmptyInput = errors.New("no rows available after date scoping")

// UnknownFrequencyError reports a frequency selector outside Annual/Monthly/Weekly/Quarterly.
type UnknownFrequencyError struct {
	Value string
}

func (e *UnknownFrequencyError) Error() string {
	return fmt.Sprintf("unknown frequency %q", e.Value)
}

// CurrencyNotFoundError reports a currency absent from aggregated data or from a rate snapshot.
type CurrencyNotFoundError struct {
	Currency string
	Where    string // "series" or "snapshot"
}

func (e *CurrencyNotFoundError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("currency %q not found", e.Currency)
	}
	return fmt.Sprintf("currency %q not found in %s", e.Currency, e.Where)
}

// InvalidWeightError reports a basket weight outside [0, 100].
type InvalidWeightError struct {
	Index    int
	Currency string
	Weight   float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("component %d (%s): weight %v outside [0, 100]", e.Index+1, e.Currency, e.Weight)
}

// BasketSizeError reports a basket with fewer than MinBasketSize or more than MaxBasketSize components.
type BasketSizeError struct {
	Size int
}

func (e *BasketSizeError) Error() string {
	return fmt.Sprintf("basket must hold between %d and %d currencies, got %d", MinBasketSize, MaxBasketSize, e.Size)
}

// InvalidWindowError reports a rolling window too small for a sample standard deviation.
type InvalidWindowError struct {
	Window int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("volatility window must be at least 2, got %d", e.Window)
}
