package storage

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	pq "github.com/lib/pq"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// RatesRepository defines contract for DB operations.
type RatesRepository interface {
	InsertRatesBatch(rows []models.RateRow) error
	LoadSeries(ctx context.Context, years []int) (models.RateSeries, error)
	AvailableYears(ctx context.Context) ([]int, error)
	HasIngestionForYear(year int) (bool, error)
	UpsertIngestionLog(year int, filename string, rowCount int, currencies []string) error
	DeleteRatesByYear(year int) error
}

type ratesRepository struct {
	db *sql.DB
}

func NewRatesRepository(db *sql.DB) RatesRepository {
	return &ratesRepository{db: db}
}

// InsertRatesBatch inserts rows into DB in a single transaction, one record per
// (date, currency) pair. Rows without a valid date are skipped.
func (r *ratesRepository) InsertRatesBatch(rows []models.RateRow) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("exchange_rates", "rate_date", "currency", "rate"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, row := range rows {
		if !row.Dated() {
			continue
		}
		d := row.Date.In(time.UTC)
		for currency, rate := range row.Rates {
			if _, err := stmt.Exec(d, currency, rate); err != nil {
				_ = stmt.Close()
				_ = tx.Rollback()
				return err
			}
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// LoadSeries rebuilds the wide RateSeries of the given years.
// Currency order follows the column order recorded in ingestion_log.
func (r *ratesRepository) LoadSeries(ctx context.Context, years []int) (models.RateSeries, error) {
	var series models.RateSeries
	if len(years) == 0 {
		return series, nil
	}

	cols, err := r.db.QueryContext(ctx, `SELECT currencies FROM ingestion_log WHERE file_year = ANY($1) ORDER BY file_year`, pq.Array(years))
	if err != nil {
		return series, err
	}
	seen := map[string]bool{}
	for cols.Next() {
		var codes []string
		if err := cols.Scan(pq.Array(&codes)); err != nil {
			_ = cols.Close()
			return series, err
		}
		for _, c := range codes {
			if !seen[c] {
				seen[c] = true
				series.Currencies = append(series.Currencies, c)
			}
		}
	}
	if err := cols.Close(); err != nil {
		return series, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT rate_date, currency, rate
		FROM exchange_rates
		WHERE date_part('year', rate_date)::int = ANY($1)
		ORDER BY rate_date, currency`, pq.Array(years))
	if err != nil {
		return series, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			t        time.Time
			currency string
			rate     float64
		)
		if err := rows.Scan(&t, &currency, &rate); err != nil {
			return series, err
		}
		d := civil.DateOf(t)
		if n := len(series.Rows); n == 0 || series.Rows[n-1].Date != d {
			series.Rows = append(series.Rows, models.RateRow{Date: d, Rates: map[string]float64{}})
		}
		series.Rows[len(series.Rows)-1].Rates[currency] = rate
		if !seen[currency] {
			seen[currency] = true
			series.Currencies = append(series.Currencies, currency)
		}
	}
	return series, rows.Err()
}

// AvailableYears lists the years recorded in ingestion_log, ascending.
func (r *ratesRepository) AvailableYears(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT file_year FROM ingestion_log ORDER BY file_year`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// HasIngestionForYear checks if an ingestion was already recorded for a given report year.
func (r *ratesRepository) HasIngestionForYear(year int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_year = $1)`, year).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a given year.
func (r *ratesRepository) UpsertIngestionLog(year int, filename string, rowCount int, currencies []string) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (file_year, filename, row_count, currencies)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (file_year)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  currencies = EXCLUDED.currencies,
					  ingested_at = NOW()
	`, year, filename, rowCount, pq.Array(currencies))
	return err
}

// DeleteRatesByYear removes all rates dated inside year.
func (r *ratesRepository) DeleteRatesByYear(year int) error {
	_, err := r.db.Exec(`DELETE FROM exchange_rates WHERE date_part('year', rate_date)::int = $1`, year)
	return err
}
