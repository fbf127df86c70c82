// Package config reads process configuration from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds everything needed to start the service.
type Config struct {
	DataPath string // directory holding the source CSV and the sqlite file
	DataFile string // source CSV file name
	Database string // sqlite file name, relative to DataPath

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBLogLevel string

	Port string

	// TestSize and SplitSeed are left zero and nil when TEST_SIZE and
	// SPLIT_SEED are unset, so the training package supplies its defaults.
	TestSize  float64
	SplitSeed *int64
}

// SourcePath is the location of the passenger CSV.
func (c Config) SourcePath() string {
	return filepath.Join(c.DataPath, c.DataFile)
}

// SQLitePath is the location of the sqlite database file.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataPath, c.Database)
}

// PostgresDSN builds a lib/pq connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ListenAddr is the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Load reads a .env file if one exists and then builds a Config from the
// environment, falling back to defaults for unset keys.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DataPath:   getEnv("DATA_PATH", "data"),
		DataFile:   getEnv("DATA_FILE", "train.csv"),
		Database:   getEnv("DATABASE", "titanic"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "admin"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "titanic"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBLogLevel: strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		Port:       getEnv("PORT", "5000"),
	}

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q: must be %q or %q", cfg.DBDriver, DriverSQLite, DriverPostgres)
	}

	if raw, ok := os.LookupEnv("TEST_SIZE"); ok {
		testSize, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEST_SIZE: %w", err)
		}
		if testSize <= 0 || testSize >= 1 {
			return Config{}, fmt.Errorf("invalid TEST_SIZE %v: must be between 0 and 1", testSize)
		}
		cfg.TestSize = testSize
	}

	if raw, ok := os.LookupEnv("SPLIT_SEED"); ok {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SPLIT_SEED: %w", err)
		}
		cfg.SplitSeed = &seed
	}

	return cfg, nil
}

// LogSummary prints the effective configuration without secrets.
func (c Config) LogSummary() {
	log.Printf("Configuration:")
	log.Printf("  Source file: %s", c.SourcePath())
	if c.DBDriver == DriverSQLite {
		log.Printf("  Database: sqlite at %s", c.SQLitePath())
	} else {
		log.Printf("  Database: postgres %s@%s:%s/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
	}
	testSize, seed := "default", "default"
	if c.TestSize != 0 {
		testSize = strconv.FormatFloat(c.TestSize, 'f', -1, 64)
	}
	if c.SplitSeed != nil {
		seed = strconv.FormatInt(*c.SplitSeed, 10)
	}
	log.Printf("  Split: test_size=%s seed=%s", testSize, seed)
	log.Printf("  Listen port: %s", c.Port)
}

// getEnv reads an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
