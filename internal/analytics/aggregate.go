package analytics

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// Scope applies the input-scoping rule of the dashboard:
//   - Annual aggregates every loaded year, so the series is returned as is.
//   - Monthly, Weekly and Quarterly only see the rows dated inside year.
//
// Dateless rows are passed through untouched; Aggregate drops them.
func Scope(series models.RateSeries, frequency models.Frequency, year int) models.RateSeries {
	if frequency == models.Annual {
		return series
	}
	out := models.RateSeries{Currencies: series.Currencies}
	for _, r := range series.Rows {
		if !r.Dated() || r.Date.Year == year {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Aggregate buckets the rows of series by frequency and averages every currency per bucket.
//
// Behavior:
//   - Rows without a valid date are ignored.
//   - Each currency is averaged over its non-missing values; a currency with no
//     values in a bucket is left out of that bucket.
//   - Annual and Monthly emit only buckets that received rows. Weekly and
//     Quarterly emit every bucket between the first and the last populated one,
//     so empty buckets may appear in between.
//   - Buckets are returned in ascending label order.
//
// Errors:
//   - *UnknownFrequencyError for an unsupported frequency.
//   - ErrEmptyInput when no dated row remains.
func Aggregate(series models.RateSeries, frequency models.Frequency) (models.AggregatedSeries, error) {
	if !frequency.Valid() {
		return models.AggregatedSeries{}, &UnknownFrequencyError{Value: string(frequency)}
	}

	type acc struct {
		sum   map[string]float64
		count map[string]int
	}
	groups := make(map[civil.Date]*acc)

	for _, r := range series.Rows {
		if !r.Dated() {
			continue
		}
		key := bucketDate(r.Date, frequency)
		g, ok := groups[key]
		if !ok {
			g = &acc{sum: map[string]float64{}, count: map[string]int{}}
			groups[key] = g
		}
		for cur, v := range r.Rates {
			g.sum[cur] += v
			g.count[cur]++
		}
	}

	if len(groups) == 0 {
		return models.AggregatedSeries{}, ErrEmptyInput
	}

	keys := make([]civil.Date, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	if frequency == models.Weekly || frequency == models.Quarterly {
		keys = fillBuckets(keys[0], keys[len(keys)-1], frequency)
	}

	out := models.AggregatedSeries{
		Frequency:  frequency,
		Currencies: series.Currencies,
		Buckets:    make([]models.Bucket, 0, len(keys)),
	}
	for _, k := range keys {
		rates := map[string]float64{}
		if g, ok := groups[k]; ok {
			for cur, n := range g.count {
				rates[cur] = g.sum[cur] / float64(n)
			}
		}
		out.Buckets = append(out.Buckets, models.Bucket{
			Label: models.BucketLabel{Frequency: frequency, Date: k},
			Rates: rates,
		})
	}
	return out, nil
}

// bucketDate returns the label date of the bucket that d falls into.
func bucketDate(d civil.Date, frequency models.Frequency) civil.Date {
	switch frequency {
	case models.Annual:
		return civil.Date{Year: d.Year, Month: time.January, Day: 1}
	case models.Monthly:
		return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	case models.Weekly:
		// Weeks close on Monday: Tuesday..Monday map to that Monday.
		wd := d.In(time.UTC).Weekday()
		return d.AddDays((int(time.Monday) - int(wd) + 7) % 7)
	default: // Quarterly
		return quarterEnd(d.Year, d.Month)
	}
}

func quarterEnd(year int, m time.Month) civil.Date {
	last := time.Month(((int(m)-1)/3 + 1) * 3)
	// Day 0 of the next month is the last day of this one.
	t := time.Date(year, last+1, 0, 0, 0, 0, 0, time.UTC)
	return civil.DateOf(t)
}

// fillBuckets enumerates every label from first to last inclusive.
func fillBuckets(first, last civil.Date, frequency models.Frequency) []civil.Date {
	var out []civil.Date
	for d := first; !last.Before(d); {
		out = append(out, d)
		if frequency == models.Weekly {
			d = d.AddDays(7)
			continue
		}
		next := d.In(time.UTC).AddDate(0, 0, 1)
		d = quarterEnd(next.Year(), next.Month()+2)
	}
	return out
}
