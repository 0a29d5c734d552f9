package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fxpulse/config"
	"github.com/guttosm/fxpulse/internal/api"
	"github.com/guttosm/fxpulse/internal/ingestion"
	"github.com/guttosm/fxpulse/internal/logger"
	"github.com/guttosm/fxpulse/internal/ratefeed"
	"github.com/guttosm/fxpulse/internal/service"
	"github.com/guttosm/fxpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Selects the historical rate source from config (CSV directory or PostgreSQL).
//   - Builds the live rate feed client.
//   - Wires the dashboard service, HTTP handlers and router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	source, ready, cleanup, err := openSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	feed := ratefeed.NewClient(cfg.Rates.APIURL, nil)
	svc := service.NewDashboardService(source, feed, cfg.Rates.BaseCurrency, cfg.Analytics.VolatilityWindow)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(ready).Register(router)

	logger.L().Info().
		Str("data_source", sourceName(cfg)).
		Str("base_currency", cfg.Rates.BaseCurrency).
		Str("rates_api", cfg.Rates.APIURL).
		Msg("app initialized")

	return router, cleanup, nil
}

// openSource returns the configured SeriesSource with its readiness check and cleanup.
func openSource(cfg config.Config) (service.SeriesSource, func() error, func(), error) {
	if cfg.Data.Source == config.SourcePostgres {
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo := storage.NewRatesRepository(db)
		return service.NewRepositorySource(repo), db.Ping, func() { _ = db.Close() }, nil
	}

	src := ingestion.NewCSVSource(cfg.Data.Dir, cfg.Data.FilePattern, cfg.Data.LenientYears)
	return src, csvReady(src), func() {}, nil
}

// csvReady reports ready once the data directory holds at least one yearly report.
func csvReady(src *ingestion.CSVSource) func() error {
	return func() error {
		years, err := src.Years(context.Background())
		if err != nil {
			return err
		}
		if len(years) == 0 {
			return fmt.Errorf("no rate reports in %s", src.Dir)
		}
		return nil
	}
}

func sourceName(cfg config.Config) string {
	if cfg.Data.Source == config.SourcePostgres {
		return config.SourcePostgres
	}
	return config.SourceCSV
}
