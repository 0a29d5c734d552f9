package models

// BasketComponent is one currency of a custom basket with its weight in percent (0-100).
type BasketComponent struct {
	Currency      string  `json:"currency" example:"EUR"`
	WeightPercent float64 `json:"weight" example:"50"`
}

// Basket is a user-defined weighted set of currencies evaluated against Base.
type Basket struct {
	Base       string
	Components []BasketComponent
}

// BasketResult is the outcome of a basket calculation.
//
// Fields:
//   - BasketRate: sum of rate * weight/100 over all components.
//   - TotalWeight: sum of the component weights.
//   - WeightedAverage: BasketRate / TotalWeight, or 0 when TotalWeight is 0.
type BasketResult struct {
	Base            string
	BasketRate      float64
	TotalWeight     float64
	WeightedAverage float64
}

// BasketCurrencies are the currencies offered by the basket selector.
var BasketCurrencies = []string{
	"DZD", "AUD", "BHD", "VEF", "BWP", "BRL", "BND", "CAD", "CLP",
	"CNY", "COP", "CZK", "DKK", "EUR", "HUF", "ISK", "INR", "IDR",
	"IRR", "ILS", "JPY", "KZT", "KRW", "KWD", "LYD", "MYR", "MUR",
	"MXN", "NPR", "NZD", "NOK", "OMR", "PKR", "PEN", "PHP", "PLN",
	"QAR", "RUB", "SAR", "SGD", "ZAR", "LKR", "SEK", "CHF", "THB",
	"TTD", "TND", "AED", "GBP", "USD", "UYU",
}
