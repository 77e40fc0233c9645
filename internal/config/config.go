// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"airaware/internal/logging"

	"github.com/joho/godotenv"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains AQI engine configuration
	Engine EngineConfig `json:"engine"`

	// Forecast contains trend forecast configuration
	Forecast ForecastConfig `json:"forecast"`

	// Simulate contains synthetic data generator configuration
	Simulate SimulateConfig `json:"simulate"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains AQI computation settings
type EngineConfig struct {
	// Scheme is the breakpoint scheme name to compute against
	Scheme string `json:"scheme"`

	// SchemePaths are HCL scheme files registered at startup
	SchemePaths []string `json:"scheme_paths,omitempty"`

	// DefaultIndex is the overall index reported when no reading
	// produced a usable value
	DefaultIndex int `json:"default_index"`

	// Strict fails the computation on unknown pollutants instead of
	// skipping them
	Strict bool `json:"strict"`

	// Location is an optional place name inserted into alert messages
	Location string `json:"location,omitempty"`
}

// ForecastConfig contains trend forecast settings
type ForecastConfig struct {
	// Horizon is the default number of future points to predict
	Horizon int `json:"horizon"`

	// Granularity is the series step: auto, hourly or daily
	Granularity string `json:"granularity"`
}

// SimulateConfig contains synthetic data generator settings
type SimulateConfig struct {
	// Profile selects the pollution baseline: clean, urban or industrial
	Profile string `json:"profile"`

	// Seed drives the generator; the same seed reproduces the same data
	Seed int64 `json:"seed"`

	// HistoryDays is the default span of generated historical series
	HistoryDays int `json:"history_days"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (text, json)
	DefaultFormat string `json:"default_format"`

	// ShowPollutants includes the per-pollutant index breakdown
	ShowPollutants bool `json:"show_pollutants"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Engine: EngineConfig{
			Scheme:       "epa",
			DefaultIndex: 50,
			Strict:       false,
		},
		Forecast: ForecastConfig{
			Horizon:     24,
			Granularity: "auto",
		},
		Simulate: SimulateConfig{
			Profile:     "urban",
			Seed:        1,
			HistoryDays: 30,
		},
		Output: OutputConfig{
			DefaultFormat:  "text",
			ShowPollutants: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, applying environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	ApplyEnv(config)
	return config, nil
}

// ApplyEnv overrides configuration from AIRAWARE_* environment
// variables. A .env file in the working directory is loaded first when
// present.
func ApplyEnv(c *Config) {
	_ = godotenv.Load()

	c.Engine.Scheme = getEnv("AIRAWARE_SCHEME", c.Engine.Scheme)
	c.Engine.DefaultIndex = getEnvInt("AIRAWARE_DEFAULT_INDEX", c.Engine.DefaultIndex)
	c.Engine.Strict = getEnvBool("AIRAWARE_STRICT", c.Engine.Strict)
	c.Engine.Location = getEnv("AIRAWARE_LOCATION", c.Engine.Location)
	c.Forecast.Horizon = getEnvInt("AIRAWARE_HORIZON", c.Forecast.Horizon)
	c.Forecast.Granularity = getEnv("AIRAWARE_GRANULARITY", c.Forecast.Granularity)
	c.Simulate.Profile = getEnv("AIRAWARE_PROFILE", c.Simulate.Profile)
	c.Simulate.Seed = getEnvInt64("AIRAWARE_SEED", c.Simulate.Seed)
	c.Output.DefaultFormat = getEnv("AIRAWARE_FORMAT", c.Output.DefaultFormat)
	c.Logging.Level = getEnv("AIRAWARE_LOG_LEVEL", c.Logging.Level)
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
