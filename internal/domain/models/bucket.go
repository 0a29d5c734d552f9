package models

import (
	"strconv"

	"cloud.google.com/go/civil"
)

// BucketLabel identifies one aggregation bucket.
//
// Label semantics per frequency:
//   - Annual:    the year (Date is January 1st of that year).
//   - Monthly:   the first day of the month.
//   - Weekly:    the Monday that closes the week.
//   - Quarterly: the last day of the quarter.
type BucketLabel struct {
	Frequency Frequency
	Date      civil.Date
}

// Year returns the calendar year of the bucket.
func (l BucketLabel) Year() int {
	return l.Date.Year
}

// Before reports whether l sorts strictly before o.
func (l BucketLabel) Before(o BucketLabel) bool {
	return l.Date.Before(o.Date)
}

// String renders the label the way the dashboard shows it:
// "2022" for annual buckets, "2022-03-31" otherwise.
func (l BucketLabel) String() string {
	if l.Frequency == Annual {
		return strconv.Itoa(l.Date.Year)
	}
	return l.Date.String()
}

// Bucket holds the per-currency averages of one aggregation unit.
// A currency with no values inside the bucket is absent from Rates.
type Bucket struct {
	Label BucketLabel
	Rates map[string]float64
}

// Value returns the averaged rate of currency in this bucket, if present.
func (b Bucket) Value(currency string) (float64, bool) {
	v, ok := b.Rates[currency]
	return v, ok
}

// AggregatedSeries is the chronologically ordered output of the aggregator.
type AggregatedSeries struct {
	Frequency  Frequency
	Currencies []string
	Buckets    []Bucket
}

// Has reports whether at least one bucket carries a value for currency.
func (a AggregatedSeries) Has(currency string) bool {
	for _, b := range a.Buckets {
		if _, ok := b.Rates[currency]; ok {
			return true
		}
	}
	return false
}

// Extremum is a peak or trough of one currency together with the bucket it was observed in.
type Extremum struct {
	Value float64
	Label BucketLabel
}
