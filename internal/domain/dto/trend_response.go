package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// YearsResponse represents the JSON returned by GET /api/v1/years.
type YearsResponse struct {
	Years []int `json:"years" example:"2021,2022,2023"`
}

// CurrenciesResponse represents the JSON returned by GET /api/v1/currencies.
type CurrenciesResponse struct {
	Frequency  string   `json:"frequency" example:"Monthly"`
	Year       int      `json:"year,omitempty" example:"2022"`
	Currencies []string `json:"currencies" example:"EUR,GBP,JPY"`
}

// TrendPoint is one bucket of the chart: its averaged rate and rolling volatility.
// Rate and Volatility are null when absent.
type TrendPoint struct {
	Label      string   `json:"label" example:"2022-03-31"`
	Rate       *float64 `json:"rate"`
	Volatility *float64 `json:"volatility"`
	Risk       string   `json:"risk,omitempty" example:"High"`
}

// ExtremumResponse is a peak or trough. Value keeps full precision; Display is rounded to 2 decimals.
type ExtremumResponse struct {
	Label   string  `json:"label" example:"2022"`
	Value   float64 `json:"value" example:"0.9512"`
	Display string  `json:"display" example:"0.95"`
}

// TrendResponse represents the JSON returned by GET /api/v1/trend.
type TrendResponse struct {
	Frequency      string           `json:"frequency" example:"Quarterly"`
	Year           int              `json:"year,omitempty" example:"2022"`
	Currency       string           `json:"currency" example:"EUR"`
	Window         int              `json:"window" example:"5"`
	Points         []TrendPoint     `json:"points"`
	Peak           ExtremumResponse `json:"peak"`
	Trough         ExtremumResponse `json:"trough"`
	MeanVolatility *float64         `json:"mean_volatility"`
}

// NewTrendResponse maps a report to its API shape. Points line up one-to-one with the buckets.
func NewTrendResponse(r *models.TrendReport) TrendResponse {
	points := make([]TrendPoint, len(r.Series.Buckets))
	for i, b := range r.Series.Buckets {
		p := TrendPoint{Label: b.Label.String()}
		if v, ok := b.Value(r.Currency); ok {
			p.Rate = &v
		}
		if i < len(r.Volatility) {
			p.Volatility = r.Volatility[i].Value
			p.Risk = string(r.Volatility[i].Risk)
		}
		points[i] = p
	}
	return TrendResponse{
		Frequency: string(r.Frequency),
		Year:      r.Year,
		Currency:  r.Currency,
		Window:    r.Window,
		Points:    points,
		Peak:      NewExtremumResponse(r.Peak),
		Trough:    NewExtremumResponse(r.Trough),
	}
}

func NewExtremumResponse(e models.Extremum) ExtremumResponse {
	return ExtremumResponse{Label: e.Label.String(), Value: e.Value, Display: Round2(e.Value)}
}

// Round2 renders v with exactly two decimals, rounding half away from zero.
func Round2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
