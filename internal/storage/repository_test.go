package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*ratesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &ratesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestLoadSeries_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d1 := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT currencies FROM ingestion_log WHERE file_year = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"currencies"}).AddRow("{GBP,EUR}"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM exchange_rates")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"rate_date", "currency", "rate"}).
			AddRow(d1, "EUR", 0.91).
			AddRow(d1, "GBP", 0.79).
			AddRow(d2, "EUR", 0.92).
			AddRow(d2, "JPY", 131.2))

	out, err := repo.LoadSeries(context.Background(), []int{2023})
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}

	want := models.RateSeries{
		Currencies: []string{"GBP", "EUR", "JPY"},
		Rows: []models.RateRow{
			{Date: civil.DateOf(d1), Rates: map[string]float64{"EUR": 0.91, "GBP": 0.79}},
			{Date: civil.DateOf(d2), Rates: map[string]float64{"EUR": 0.92, "JPY": 131.2}},
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadSeries_NoYears(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	out, err := repo.LoadSeries(context.Background(), nil)
	if err != nil || out.Len() != 0 {
		t.Fatalf("want empty series, got %+v err=%v", out, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestAvailableYears_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT file_year FROM ingestion_log ORDER BY file_year")).
		WillReturnRows(sqlmock.NewRows([]string{"file_year"}).AddRow(2012).AddRow(2013))

	years, err := repo.AvailableYears(context.Background())
	if err != nil {
		t.Fatalf("AvailableYears: %v", err)
	}
	if diff := cmp.Diff([]int{2012, 2013}, years); diff != "" {
		t.Fatalf("years mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestionLog_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// HasIngestionForYear
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_year = $1)")).
		WithArgs(2023).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForYear(2023)
	if err != nil || !ok {
		t.Fatalf("HasIngestionForYear: ok=%v err=%v", ok, err)
	}

	// UpsertIngestionLog
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ingestion_log (file_year, filename, row_count, currencies)")).
		WithArgs(2023, "Exchange_Rate_Report_2023.csv", 10, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertIngestionLog(2023, "Exchange_Rate_Report_2023.csv", 10, []string{"EUR"}); err != nil {
		t.Fatalf("UpsertIngestionLog: %v", err)
	}

	// DeleteRatesByYear
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exchange_rates WHERE date_part('year', rate_date)::int = $1")).
		WithArgs(2023).WillReturnResult(sqlmock.NewResult(0, 3))
	if err := repo.DeleteRatesByYear(2023); err != nil {
		t.Fatalf("DeleteRatesByYear: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewRatesRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewRatesRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestInsertRatesBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; sqlmock only sees a prepared statement and its Execs.
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))     // one (date, currency) record
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0)) // final Exec()
	mock.ExpectCommit()

	rows := []models.RateRow{
		{Date: civil.Date{Year: 2023, Month: time.January, Day: 2}, Rates: map[string]float64{"EUR": 0.91}},
		{Date: civil.Date{}, Rates: map[string]float64{"EUR": 9.99}}, // dateless, skipped
	}
	if err := repo.InsertRatesBatch(rows); err != nil {
		t.Fatalf("InsertRatesBatch: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertRatesBatch_ErrorOnBegin(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin().WillReturnError(dummyErr{})
	if err := repo.InsertRatesBatch([]models.RateRow{{}}); err == nil {
		t.Fatalf("expected error on begin")
	}
}

func TestInsertRatesBatch_ErrorOnRowExec(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnError(dummyErr{})
	mock.ExpectRollback()

	rows := []models.RateRow{{Date: civil.Date{Year: 2023, Month: time.January, Day: 2}, Rates: map[string]float64{"EUR": 1}}}
	if err := repo.InsertRatesBatch(rows); err == nil {
		t.Fatalf("expected error on row exec")
	}
}
