//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/fxpulse/config"
	"github.com/guttosm/fxpulse/internal/app"
	"github.com/guttosm/fxpulse/internal/ingestion"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "fxpulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=fxpulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "fxpulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedReports(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := t.TempDir()
	for year, days := range map[int]int{2021: 4, 2022: 3} {
		var b strings.Builder
		b.WriteString("Date,Euro   (EUR),Japanese Yen   (JPY)\n")
		for d := 1; d <= days; d++ {
			fmt.Fprintf(&b, "%02d-01-%d,%.4f,%.2f\n", d, year, 0.80+float64(d)/100, 100+float64(d))
		}
		name := filepath.Join(dir, fmt.Sprintf(ingestion.DefaultFilePattern, year))
		if err := os.WriteFile(name, []byte(b.String()), 0o600); err != nil {
			t.Fatalf("write report: %v", err)
		}
	}
	src := ingestion.NewCSVSource(dir, "", nil)
	if err := ingestion.ProcessDirectory(context.Background(), src, db, nil, 2, false); err != nil {
		t.Fatalf("ingest: %v", err)
	}
}

func TestAPI_E2E_Trend_FromPostgres(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	seedReports(t, db)

	// Point application config to containerized DB
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Data.Source = config.SourcePostgres
	config.AppConfig.Postgres = config.PostgresConfig{
		Host:     host,
		Port:     p,
		User:     "postgres",
		Password: "postgres",
		DBName:   "fxpulse",
		SSLMode:  "disable",
	}
	config.AppConfig.Rates = config.RatesConfig{BaseCurrency: "USD", APIURL: "http://127.0.0.1:1"}
	config.AppConfig.Analytics.VolatilityWindow = 2

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/years", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("years status: %d body=%s", w.Code, w.Body.String())
	}
	var years struct {
		Years []int `json:"years"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &years); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(years.Years) != 2 || years.Years[0] != 2021 || years.Years[1] != 2022 {
		t.Fatalf("unexpected years: %v", years.Years)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trend?frequency=Monthly&year=2022&currency=EUR", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("trend status: %d body=%s", w.Code, w.Body.String())
	}
	var trend struct {
		Currency string `json:"currency"`
		Points   []struct {
			Rate *float64 `json:"rate"`
		} `json:"points"`
		Peak struct {
			Value float64 `json:"value"`
		} `json:"peak"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &trend); err != nil {
		t.Fatalf("json: %v", err)
	}
	if trend.Currency != "EUR" || len(trend.Points) != 1 || trend.Points[0].Rate == nil {
		t.Fatalf("unexpected trend: %s", w.Body.String())
	}
	if math.Abs(trend.Peak.Value-0.82) > 1e-9 {
		t.Fatalf("peak = %v, want 0.82", trend.Peak.Value)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trend?frequency=Monthly&year=2019&currency=EUR", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing year status: %d body=%s", w.Code, w.Body.String())
	}
}
