package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fxpulse/internal/logger"
	"github.com/guttosm/fxpulse/internal/storage"
)

const (
	defaultBatchSize = 500 // rows per COPY; each row expands to one record per currency
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.RatesRepository {
	return storage.NewRatesRepository(db)
}

// ProcessDirectory loads yearly rate reports into PostgreSQL.
//
//   - src:   CSV source describing directory, file pattern and lenient years.
//   - db:    open *sql.DB (PostgreSQL).
//   - years: years to ingest; empty means every report found in the directory.
//
// Behavior:
//   - Validates that every requested year has a file before touching the DB.
//   - Uses a concurrency limit based on CPU count (min(8, NumCPU)) unless parallel > 0.
//   - Skips years already recorded in ingestion_log unless force is set, in which
//     case the year's rates are deleted and loaded again.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, src *CSVSource, db *sql.DB, years []int, parallel int, force bool) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)

	if len(years) == 0 {
		found, err := src.Years(ctx)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("no rate reports matching %s in %s", src.Pattern, src.Dir)
		}
		years = found
	}

	var files []FileSource
	var missing []string
	for _, y := range years {
		fs := src.FileFor(y)
		files = append(files, fs)
		if _, err := os.Stat(fs.Path); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, filepath.Base(fs.Path))
			} else {
				return fmt.Errorf("stat failed for %s: %w", fs.Path, err)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	logger.L().Info().Int("files", len(files)).Str("dir", src.Dir).Msg("ingestion start")

	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel < maxParallel {
			maxParallel = parallel
		}
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}
	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, fs := range files {
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(fs.Path)
			logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Msg("file start")

			exists, err := repo.HasIngestionForYear(fs.Year)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", fs.Path, err)
			}
			if exists && !force {
				logger.L().Info().Int("year", fs.Year).Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			if exists && force {
				if err := repo.DeleteRatesByYear(fs.Year); err != nil {
					logger.L().Error().Str("file", base).Err(err).Msg("delete existing failed")
					return fmt.Errorf("file %s: delete existing: %w", fs.Path, err)
				}
			}

			total, currencies, err := parseAndPersistFile(gctx, fs, repo, defaultBatchSize)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", fs.Path, err)
			}
			if err := repo.UpsertIngestionLog(fs.Year, base, total, currencies); err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", fs.Path, err)
			}
			logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// parseAndPersistFile parses one yearly report and inserts its dated rows in batches.
// It returns the number of rows stored and the currency columns of the file.
func parseAndPersistFile(ctx context.Context, fs FileSource, repo storage.RatesRepository, batch int) (int, []string, error) {
	series, stats, err := parseRateFile(ctx, fs)
	if err != nil {
		return 0, nil, err
	}
	if stats.DatelessRows > 0 || stats.DroppedCells > 0 {
		logger.L().Warn().
			Int("year", fs.Year).
			Int("dateless_rows", stats.DatelessRows).
			Int("dropped_cells", stats.DroppedCells).
			Msg("rows or cells dropped while parsing")
	}

	stored := 0
	for start := 0; start < len(series.Rows); start += batch {
		end := min(start+batch, len(series.Rows))
		chunk := series.Rows[start:end]
		if err := repo.InsertRatesBatch(chunk); err != nil {
			return 0, nil, fmt.Errorf("flush batch ending row %d: %w", end, err)
		}
		for _, r := range chunk {
			if r.Dated() {
				stored++
			}
		}
	}
	return stored, series.Currencies, nil
}
