package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Dataset sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	DatasetSource   string
	DatasetPath     string
	ListenAddr      string
	LogLevel        string
	ShutdownTimeout time.Duration
	ChartWidth      int
	ChartHeight     int
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

func setDefaults() {
	viper.SetDefault("DATASET_SOURCE", SourceCSV)
	viper.SetDefault("DATASET_PATH", "github_dataset.csv")
	viper.SetDefault("LISTEN_ADDR", ":8501")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("CHART_WIDTH", 640)
	viper.SetDefault("CHART_HEIGHT", 400)
	viper.SetDefault("ENV_FILE", ".env")
}

// Load loads configuration from environment variables. A .env file, when
// present, seeds variables that are not already set in the environment.
func (c *Config) Load() error {
	setDefaults()
	viper.AutomaticEnv()

	envFile := viper.GetString("ENV_FILE")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	c.DatasetSource = viper.GetString("DATASET_SOURCE")
	if c.DatasetSource != SourceCSV && c.DatasetSource != SourcePostgres {
		return fmt.Errorf("DATASET_SOURCE must be %q or %q, got %q", SourceCSV, SourcePostgres, c.DatasetSource)
	}

	c.DatasetPath = viper.GetString("DATASET_PATH")
	if c.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}

	c.ListenAddr = viper.GetString("LISTEN_ADDR")
	c.LogLevel = viper.GetString("LOG_LEVEL")

	timeout, err := time.ParseDuration(viper.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT format: %w", err)
	}
	c.ShutdownTimeout = timeout

	c.ChartWidth = viper.GetInt("CHART_WIDTH")
	c.ChartHeight = viper.GetInt("CHART_HEIGHT")
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("CHART_WIDTH and CHART_HEIGHT must be positive")
	}

	return nil
}
