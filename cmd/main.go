package main

//
//  @title           fxpulse API
//  @version         1.0
//  @description     Historical exchange-rate trends, volatility risk flags and live currency baskets.
//  @termsOfService  https://github.com/guttosm/fxpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/fxpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        history
//  @tag.description Aggregated historical rates, extrema and volatility
//
//  @tag.name        basket
//  @tag.description Custom weighted currency baskets against live rates
//
//  @tag.name        rates
//  @tag.description Current spot rates
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/fxpulse/config"
	_ "github.com/guttosm/fxpulse/docs" // swagger docs
	"github.com/guttosm/fxpulse/internal/app"
	"github.com/guttosm/fxpulse/internal/ingestion"
	"github.com/guttosm/fxpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// parseYearList parses the --years flag ("2021,2022"); an empty value means every report found.
func parseYearList(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < 1 {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	return years, nil
}

// main is the entry point of the fxpulse application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API over the configured rate source (default).
//   - ingest: Loads yearly rate reports from --dir into PostgreSQL.
//
// Flags:
//   - --mode:     Execution mode ("api" or "ingest"). Default: "api".
//   - --dir:      Directory containing yearly report files. Defaults to DATA_DIR.
//   - --years:    Comma separated years to ingest. Default: every report in --dir.
//   - --parallel: Files processed concurrently (0 = auto, up to 8).
//   - --force:    Reload years already ingested.
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or ingest")
	dir := flag.String("dir", config.AppConfig.Data.Dir, "Directory with yearly rate reports")
	yearsFlag := flag.String("years", "", "Comma separated years to ingest (default: all reports in --dir)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reload years even if already ingested (deletes existing rates for that year)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		years, err := parseYearList(*yearsFlag)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid --years")
		}

		db, err := app.OpenPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		src := ingestion.NewCSVSource(*dir, config.AppConfig.Data.FilePattern, config.AppConfig.Data.LenientYears)
		if err := ingestion.ProcessDirectory(ctx, src, db, years, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Str("data_source", config.AppConfig.Data.Source).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
