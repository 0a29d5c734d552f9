package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Historical rate sources selectable with DATA_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DATA_SOURCE=csv
//	DATA_DIR=./data/rates
//	DATA_FILE_PATTERN=Exchange_Rate_Report_%d.csv
//	LENIENT_YEARS=2023,2024
//	BASE_CURRENCY=USD
//	RATES_API_URL=https://api.exchangerate-api.com/v4/latest
//	VOLATILITY_WINDOW=5
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=fxpulse
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Rates     RatesConfig
	Analytics AnalyticsConfig
	Postgres  PostgresConfig // only required when Data.Source is postgres
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // e.g. "8080"
}

// DataConfig locates the historical yearly reports.
//
// Fields:
//   - Source: "csv" reads the report files per request; "postgres" reads ingested rates.
//   - Dir: directory holding the yearly report files (also the ingest input).
//   - FilePattern: file name with %d for the year.
//   - LenientYears: years whose files tolerate malformed dates.
type DataConfig struct {
	Source       string
	Dir          string
	FilePattern  string
	LenientYears []int
}

// RatesConfig configures the live rate feed.
type RatesConfig struct {
	BaseCurrency string
	APIURL       string
}

// AnalyticsConfig holds defaults of the trend computation.
type AnalyticsConfig struct {
	VolatilityWindow int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// URL is the computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DSN builds the connection string from the individual fields.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATA_SOURCE", SourceCSV)
	viper.SetDefault("DATA_DIR", "./data/rates")
	viper.SetDefault("DATA_FILE_PATTERN", "Exchange_Rate_Report_%d.csv")
	viper.SetDefault("LENIENT_YEARS", "2023,2024")

	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("RATES_API_URL", "https://api.exchangerate-api.com/v4/latest")
	viper.SetDefault("VOLATILITY_WINDOW", 5)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "fxpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	lenient, err := parseYears(viper.GetString("LENIENT_YEARS"))
	if err != nil {
		log.Fatalf("invalid LENIENT_YEARS: %v\n", err)
	}

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Data: DataConfig{
			Source:       strings.ToLower(strings.TrimSpace(viper.GetString("DATA_SOURCE"))),
			Dir:          viper.GetString("DATA_DIR"),
			FilePattern:  viper.GetString("DATA_FILE_PATTERN"),
			LenientYears: lenient,
		},
		Rates: RatesConfig{
			BaseCurrency: strings.ToUpper(viper.GetString("BASE_CURRENCY")),
			APIURL:       viper.GetString("RATES_API_URL"),
		},
		Analytics: AnalyticsConfig{
			VolatilityWindow: viper.GetInt("VOLATILITY_WINDOW"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// parseYears reads a comma separated year list; blanks are ignored.
func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("year %q: %w", part, err)
		}
		years = append(years, y)
	}
	return years, nil
}

// problems lists missing or invalid settings of cfg.
func problems(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch cfg.Data.Source {
	case SourceCSV:
		if cfg.Data.Dir == "" {
			missing = append(missing, "DATA_DIR")
		}
	case SourcePostgres:
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "DATA_SOURCE (csv|postgres)")
	}
	if strings.Count(cfg.Data.FilePattern, "%d") != 1 {
		missing = append(missing, "DATA_FILE_PATTERN (one %d)")
	}
	if len(cfg.Rates.BaseCurrency) != 3 {
		missing = append(missing, "BASE_CURRENCY")
	}
	if cfg.Rates.APIURL == "" {
		missing = append(missing, "RATES_API_URL")
	}
	if cfg.Analytics.VolatilityWindow < 2 {
		missing = append(missing, "VOLATILITY_WINDOW (>= 2)")
	}
	return missing
}

// validateConfig terminates the application with log.Fatalf when a required
// setting is missing or invalid.
func validateConfig() {
	if missing := problems(AppConfig); len(missing) > 0 {
		log.Fatalf("Missing or invalid environment variables: %v\n", missing)
	}
}
