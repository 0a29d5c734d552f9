package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fxpulse/internal/domain/models"
	"github.com/guttosm/fxpulse/internal/logger"
)

// DefaultFilePattern is the yearly report naming scheme; %d is the four-digit year.
const DefaultFilePattern = "Exchange_Rate_Report_%d.csv"

// CSVSource reads yearly exchange-rate reports straight from a directory.
//
// Every call reads the files again; nothing is cached between requests.
type CSVSource struct {
	Dir          string
	Pattern      string
	LenientYears map[int]bool
}

// NewCSVSource builds a CSVSource. lenientYears lists the years whose files need
// coercing date parsing.
func NewCSVSource(dir, pattern string, lenientYears []int) *CSVSource {
	if pattern == "" {
		pattern = DefaultFilePattern
	}
	lenient := make(map[int]bool, len(lenientYears))
	for _, y := range lenientYears {
		lenient[y] = true
	}
	return &CSVSource{Dir: dir, Pattern: pattern, LenientYears: lenient}
}

// FileFor returns the file source configuration of one year.
func (s *CSVSource) FileFor(year int) FileSource {
	return FileSource{
		Year:         year,
		Path:         filepath.Join(s.Dir, fmt.Sprintf(s.Pattern, year)),
		LenientDates: s.LenientYears[year],
	}
}

// Years discovers the years with a report file in Dir, ascending.
func (s *CSVSource) Years(_ context.Context) ([]int, error) {
	glob := strings.Replace(s.Pattern, "%d", "*", 1)
	matches, err := filepath.Glob(filepath.Join(s.Dir, glob))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", glob, err)
	}

	prefix, suffix, _ := strings.Cut(s.Pattern, "%d")
	var years []int
	for _, m := range matches {
		base := filepath.Base(m)
		y, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, prefix), suffix))
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// Load reads the reports of the given years in parallel and merges them into one series.
//
// Behavior:
//   - Every requested year must have a file; missing files fail the load.
//   - Currencies keep first-seen column order across years (ascending year order).
//   - Rows are sorted by date; dateless rows go last.
func (s *CSVSource) Load(ctx context.Context, years []int) (models.RateSeries, error) {
	if len(years) == 0 {
		return models.RateSeries{}, nil
	}

	var missing []string
	for _, y := range years {
		src := s.FileFor(y)
		if _, err := os.Stat(src.Path); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, filepath.Base(src.Path))
				continue
			}
			return models.RateSeries{}, fmt.Errorf("stat failed for %s: %w", src.Path, err)
		}
	}
	if len(missing) > 0 {
		return models.RateSeries{}, fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	parts := make([]models.RateSeries, len(years))
	g, gctx := errgroup.WithContext(ctx)
	for i, y := range years {
		src := s.FileFor(y)
		g.Go(func() error {
			start := time.Now()
			series, stats, err := parseRateFile(gctx, src)
			if err != nil {
				return fmt.Errorf("file %s: %w", src.Path, err)
			}
			logger.L().Debug().
				Int("year", src.Year).
				Int("rows", stats.Rows).
				Int("dateless_rows", stats.DatelessRows).
				Int("dropped_cells", stats.DroppedCells).
				Bool("lenient", src.LenientDates).
				Dur("elapsed", time.Since(start)).
				Msg("rate file loaded")
			parts[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.RateSeries{}, err
	}

	return Merge(parts...), nil
}

// Merge concatenates series, unions their currencies in first-seen order and
// sorts rows by date with dateless rows last.
func Merge(parts ...models.RateSeries) models.RateSeries {
	var out models.RateSeries
	seen := map[string]bool{}
	for _, p := range parts {
		for _, c := range p.Currencies {
			if !seen[c] {
				seen[c] = true
				out.Currencies = append(out.Currencies, c)
			}
		}
		out.Rows = append(out.Rows, p.Rows...)
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if !a.Dated() || !b.Dated() {
			return a.Dated() && !b.Dated()
		}
		return a.Date.Before(b.Date)
	})
	return out
}
