package models

import "cloud.google.com/go/civil"

// RateRow represents a single daily row of a yearly exchange-rate report.
//
// Rates maps a currency code (e.g. "EUR") to the value of one unit of that
// currency in base-currency terms. A currency with no value on that day is
// simply absent from the map.
//
// A zero Date (Date.IsValid() == false) marks a row whose date could not be
// parsed by a lenient source. Such rows are kept at load time and dropped by
// aggregation.
type RateRow struct {
	Date  civil.Date
	Rates map[string]float64
}

// Dated reports whether the row carries a usable calendar date.
func (r RateRow) Dated() bool {
	return r.Date.IsValid()
}

// RateSeries is an ordered-by-date sequence of rows spanning one or more years.
//
// Currencies keeps the column order of the source files (first seen wins), so
// that listings are stable across requests.
type RateSeries struct {
	Currencies []string
	Rows       []RateRow
}

// Len returns the number of rows in the series.
func (s RateSeries) Len() int {
	return len(s.Rows)
}

// RateSnapshot is a set of live rates for a base currency, fetched once per request.
type RateSnapshot struct {
	Base  string
	Rates map[string]float64
}
