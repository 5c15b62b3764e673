package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/adrg/xdg"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Stats    StatsConfig    `json:"stats"`
}

type DatabaseConfig struct {
	Driver string `json:"driver"` // sqlite or postgres
	Path   string `json:"path"`   // sqlite file path
	DSN    string `json:"dsn"`    // postgres connection string
	Debug  bool   `json:"debug"`  // log SQL at warn level
}

type StatsConfig struct {
	// UTCOffset shifts hour-of-day buckets at presentation time,
	// (hour + offset) mod 24. Defaults to Moscow time.
	UTCOffset int `json:"utc_offset"`
	// WindowDays is the default trailing window for daily and
	// per-task reports, inclusive of today.
	WindowDays int `json:"window_days"`
}

// LoadConfig reads configuration from the environment, falling back to
// defaults that work with no setup at all.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver: getEnv("TIMEKEEP_DB_DRIVER", DriverSQLite),
			Path:   getEnv("TIMEKEEP_DB_PATH", ""),
			DSN:    getEnv("TIMEKEEP_DB_DSN", ""),
			Debug:  getEnvAsBool("TIMEKEEP_DEBUG", false),
		},
		Stats: StatsConfig{
			UTCOffset:  getEnvAsInt("TIMEKEEP_UTC_OFFSET", 3),
			WindowDays: getEnvAsInt("TIMEKEEP_WINDOW_DAYS", 7),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
		if cfg.Database.Path == "" {
			path, err := xdg.DataFile("timekeep/timekeep.db")
			if err != nil {
				return nil, fmt.Errorf("failed to resolve data directory: %w", err)
			}
			cfg.Database.Path = path
		}
	case DriverPostgres:
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("TIMEKEEP_DB_DSN is required with the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.Stats.WindowDays <= 0 {
		return nil, fmt.Errorf("TIMEKEEP_WINDOW_DAYS must be positive, got %d", cfg.Stats.WindowDays)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
