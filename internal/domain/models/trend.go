package models

// TrendReport bundles everything the dashboard renders for one selection:
// the aggregated series of a currency, its peak and trough, and the rolling volatility.
//
// Year is zero for Annual reports, which always span every loaded year.
type TrendReport struct {
	Frequency  Frequency
	Year       int
	Currency   string
	Window     int
	Series     AggregatedSeries
	Peak       Extremum
	Trough     Extremum
	Volatility []VolatilityPoint
}
