package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dronedelivery/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// Range policies select how max_distance is checked while packing a drone.
const (
	// RangePolicyPerOrder checks each order's round trip on its own.
	RangePolicyPerOrder = "per-order"
	// RangePolicyTour checks the whole nearest-neighbour tour of the drone.
	RangePolicyTour = "tour"
)

type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	LogLevel    string
	LogFormat   string
	RangePolicy string
	Concurrency int
	Schedule    string
	Snapshots   []string
}

// LoadConfig reads envFile into the environment when it exists and builds the
// configuration from environment variables, applying defaults for unset ones.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	config := Config{
		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		DBHost:      envOrDefault("DB_HOST", "localhost"),
		DBPort:      envOrDefault("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSslMode:   envOrDefault("DB_SSLMODE", "disable"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
		RangePolicy: envOrDefault("PLANNER_RANGE_POLICY", RangePolicyPerOrder),
		Schedule:    envOrDefault("PLANNER_SCHEDULE", "0 */5 * * * *"),
		Snapshots:   splitList(os.Getenv("PLANNER_SNAPSHOTS")),
	}

	concurrency, err := strconv.Atoi(envOrDefault("PLANNER_CONCURRENCY", "4"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("PLANNER_CONCURRENCY", err)
	}
	config.Concurrency = concurrency

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values that have a closed set of options.
func (c Config) Validate() error {
	var err error
	if c.RangePolicy != RangePolicyPerOrder && c.RangePolicy != RangePolicyTour {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("PLANNER_RANGE_POLICY",
			fmt.Errorf("want %q or %q, got %q", RangePolicyPerOrder, RangePolicyTour, c.RangePolicy)))
	}
	if c.Concurrency < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("PLANNER_CONCURRENCY", c.Concurrency, 1, "+Inf"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOG_FORMAT",
			fmt.Errorf("want text or json, got %q", c.LogFormat)))
	}
	return err
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
