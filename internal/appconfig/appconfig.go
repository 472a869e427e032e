// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultURI is the MongoDB connection string used when none is configured.
	DefaultURI = "mongodb://127.0.0.1:27017"
	// DefaultDatabase is the database holding both benchmark collections.
	DefaultDatabase = "mongo-playground"
	// DefaultSeedCount is the number of documents each collection is seeded to.
	DefaultSeedCount = 5_000_000
	// DefaultSeedBatchSize is the number of documents per insert.
	DefaultSeedBatchSize = 1000
	// DefaultSeedWorkers is the number of concurrent insert batches.
	DefaultSeedWorkers = 4
	// DefaultSeedFrom and DefaultSeedTo bound the generated timestamps.
	DefaultSeedFrom = "2018-01-01T00:00:00Z"
	DefaultSeedTo   = "2025-01-01T00:00:00Z"
	// defaultLogFile is used when no log file is configured.
	defaultLogFile = "datebench.log"
)

// Config represents the top-level application configuration.
type Config struct {
	URI          string   `json:"uri"`
	Database     string   `json:"database"`
	Debug        bool     `json:"debug"`
	Format       string   `json:"format"`
	TrialTimeout int      `json:"trialTimeout,omitempty"`
	MetricsFile  string   `json:"metricsFile,omitempty"`
	LogFile      string   `json:"logFile,omitempty"`
	Only         []string `json:"only,omitempty"`

	SeedCount     int64  `json:"seedCount"`
	SeedBatchSize int    `json:"seedBatchSize"`
	SeedWorkers   int    `json:"seedWorkers"`
	RandomSeed    int64  `json:"randomSeed"`
	SeedFrom      string `json:"seedFrom"`
	SeedTo        string `json:"seedTo"`

	ConfigPath string `json:"-"`
}

// Defaults returns a configuration with every default applied.
func Defaults() Config {
	return Config{
		URI:           DefaultURI,
		Database:      DefaultDatabase,
		Format:        "table",
		SeedCount:     DefaultSeedCount,
		SeedBatchSize: DefaultSeedBatchSize,
		SeedWorkers:   DefaultSeedWorkers,
		SeedFrom:      DefaultSeedFrom,
		SeedTo:        DefaultSeedTo,
	}
}

// TrialTimeoutDuration returns the per-trial timeout; zero means no timeout.
func (c Config) TrialTimeoutDuration() time.Duration {
	if c.TrialTimeout <= 0 {
		return 0
	}
	return time.Duration(c.TrialTimeout) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// MongoURI returns the connection string, applying a default if not set.
func (c Config) MongoURI() string {
	if uri := strings.TrimSpace(c.URI); uri != "" {
		return uri
	}
	return DefaultURI
}

// DatabaseName returns the database name, applying a default if not set.
func (c Config) DatabaseName() string {
	if db := strings.TrimSpace(c.Database); db != "" {
		return db
	}
	return DefaultDatabase
}

// SeedRange parses the seeding bounds, applying defaults for empty values.
func (c Config) SeedRange() (time.Time, time.Time, error) {
	fromValue, toValue := c.SeedFrom, c.SeedTo
	if strings.TrimSpace(fromValue) == "" {
		fromValue = DefaultSeedFrom
	}
	if strings.TrimSpace(toValue) == "" {
		toValue = DefaultSeedTo
	}

	from, err := time.Parse(time.RFC3339, fromValue)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid seedFrom %q: %w", fromValue, err)
	}
	to, err := time.Parse(time.RFC3339, toValue)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid seedTo %q: %w", toValue, err)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("seedTo %s must be after seedFrom %s", toValue, fromValue)
	}
	return from, to, nil
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.TrialTimeout < 0 {
		errs = append(errs, fmt.Errorf("trialTimeout must not be negative, got %d", c.TrialTimeout))
	}
	if c.SeedCount < 0 {
		errs = append(errs, fmt.Errorf("seedCount must not be negative, got %d", c.SeedCount))
	}
	if c.SeedBatchSize < 0 {
		errs = append(errs, fmt.Errorf("seedBatchSize must not be negative, got %d", c.SeedBatchSize))
	}
	if c.SeedWorkers < 0 {
		errs = append(errs, fmt.Errorf("seedWorkers must not be negative, got %d", c.SeedWorkers))
	}
	if _, _, err := c.SeedRange(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
