package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// dateColumn is the mandatory first header of every yearly report.
const dateColumn = "Date"

// lenientLayout is the only layout a lenient source accepts; anything else becomes a dateless row.
const lenientLayout = "02-01-2006" // DD-MM-YYYY

// strictLayouts are tried in order for strict sources, all day-first.
var strictLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"2006-01-02",
}

var codeInHeader = regexp.MustCompile(`\(([A-Za-z]{3})\)`)

// FileSource describes one yearly report file.
//
// LenientDates switches date parsing to coercing mode: malformed dates produce
// dateless rows instead of failing the whole load.
type FileSource struct {
	Year         int
	Path         string
	LenientDates bool
}

// ParseStats summarises what a parse kept and dropped.
type ParseStats struct {
	Rows         int
	DatelessRows int
	DroppedCells int
}

// parseRateFile opens, validates and parses one yearly report.
//
// It fails on:
//   - a header whose first column is not "Date"
//   - duplicate currency columns
//   - a malformed date in a strict source
//   - unrecoverable I/O errors
//
// It tolerates:
//   - empty, "NaN", "-" and "N/A" cells (the currency is missing that day)
//   - negative or unparseable rates (dropped and counted)
func parseRateFile(ctx context.Context, src FileSource) (models.RateSeries, ParseStats, error) {
	var stats ParseStats

	f, err := os.Open(src.Path)
	if err != nil {
		return models.RateSeries{}, stats, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // short rows are padded as missing

	header, err := r.Read()
	if err != nil {
		return models.RateSeries{}, stats, fmt.Errorf("read header: %w", err)
	}
	codes, err := currencyColumns(header)
	if err != nil {
		return models.RateSeries{}, stats, err
	}

	series := models.RateSeries{Currencies: codes}
	lineNumber := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return models.RateSeries{}, stats, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return models.RateSeries{}, stats, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if isBlank(rec) {
			continue
		}

		d, err := parseDate(rec[0], src.LenientDates)
		if err != nil {
			return models.RateSeries{}, stats, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if !d.IsValid() {
			stats.DatelessRows++
		}

		row := models.RateRow{Date: d, Rates: make(map[string]float64, len(codes))}
		for i, code := range codes {
			col := i + 1
			if col >= len(rec) {
				break
			}
			v, ok, err := parseRate(rec[col])
			if err != nil || (ok && v < 0) {
				stats.DroppedCells++
				continue
			}
			if ok {
				row.Rates[code] = v
			}
		}

		series.Rows = append(series.Rows, row)
		stats.Rows++
	}

	return series, stats, nil
}

// currencyColumns validates the header and extracts one currency code per rate column.
//
// Headers look like "Euro   (EUR)"; the code inside parentheses wins. Headers
// without parentheses are used trimmed as they are.
func currencyColumns(header []string) ([]string, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid header: expected %q plus at least one currency column, got %d columns", dateColumn, len(header))
	}
	first := strings.TrimPrefix(strings.TrimSpace(header[0]), "\ufeff")
	if !strings.EqualFold(first, dateColumn) {
		return nil, fmt.Errorf("invalid header at col 1: expected %q, got %q", dateColumn, header[0])
	}

	seen := make(map[string]int, len(header)-1)
	codes := make([]string, 0, len(header)-1)
	for i, h := range header[1:] {
		code := CurrencyCode(h)
		if code == "" {
			return nil, fmt.Errorf("invalid header at col %d: empty currency name", i+2)
		}
		if prev, dup := seen[code]; dup {
			return nil, fmt.Errorf("invalid header: currency %s appears in cols %d and %d", code, prev, i+2)
		}
		seen[code] = i + 2
		codes = append(codes, code)
	}
	return codes, nil
}

// CurrencyCode normalises a report column header to its currency code.
func CurrencyCode(header string) string {
	if m := codeInHeader.FindStringSubmatch(header); m != nil {
		return strings.ToUpper(m[1])
	}
	return strings.TrimSpace(header)
}

// parseDate returns the zero civil.Date for a malformed date in lenient mode.
func parseDate(s string, lenient bool) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if lenient {
		t, err := time.Parse(lenientLayout, s)
		if err != nil {
			return civil.Date{}, nil
		}
		return civil.DateOf(t), nil
	}

	for _, layout := range strictLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("invalid Date %q: expected DD-MM-YYYY", s)
}

// parseRate reports ok=false for cells that mean "no data".
func parseRate(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NAN", "-", "N/A", "NA":
		return 0, false, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid rate %q: not finite", s)
	}
	return v, true, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
