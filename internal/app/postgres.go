package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/fxpulse/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens and pings a PostgreSQL pool built from cfg.Postgres.
//
// The pool is shared by the ingestion workers and the API; its size follows
// the ingestion parallelism ceiling.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = cfg.Postgres.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp and the ingest mode; overridden in tests.
var postgresOpener = InitPostgres

// OpenPostgres opens the configured database through the same indirection InitializeApp uses.
func OpenPostgres(cfg config.Config) (*sql.DB, error) {
	return postgresOpener(cfg)
}
