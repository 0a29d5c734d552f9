package dto

import "github.com/guttosm/fxpulse/internal/domain/models"

// BasketRequest is the body of POST /api/v1/basket. Base defaults to the configured base currency.
type BasketRequest struct {
	Base       string                   `json:"base" example:"USD"`
	Components []models.BasketComponent `json:"components" binding:"required"`
}

// BasketResponse represents the JSON returned by POST /api/v1/basket.
type BasketResponse struct {
	Base                   string  `json:"base" example:"USD"`
	BasketRate             float64 `json:"basket_rate" example:"0.85"`
	BasketRateDisplay      string  `json:"basket_rate_display" example:"0.85"`
	TotalWeight            float64 `json:"total_weight" example:"100"`
	WeightedAverage        float64 `json:"weighted_average" example:"0.0085"`
	WeightedAverageDisplay string  `json:"weighted_average_display" example:"0.01"`
}

func NewBasketResponse(r *models.BasketResult) BasketResponse {
	return BasketResponse{
		Base:                   r.Base,
		BasketRate:             r.BasketRate,
		BasketRateDisplay:      Round2(r.BasketRate),
		TotalWeight:            r.TotalWeight,
		WeightedAverage:        r.WeightedAverage,
		WeightedAverageDisplay: Round2(r.WeightedAverage),
	}
}

// BasketCurrenciesResponse lists the currencies a basket may contain.
type BasketCurrenciesResponse struct {
	Currencies []string `json:"currencies" example:"EUR,GBP,JPY"`
}

// CurrentRatesResponse represents the JSON returned by GET /api/v1/rates/current.
type CurrentRatesResponse struct {
	Base  string             `json:"base" example:"USD"`
	Rates map[string]float64 `json:"rates"`
}
