package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete processor configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// InputConfig describes where exports are read from
type InputConfig struct {
	Dir     string `yaml:"dir" envconfig:"DIR" default:"data/exports" validate:"required"`
	Pattern string `yaml:"pattern" envconfig:"PATTERN" default:"*"`

	// AsOf overrides "today" for future-date correction; empty means the
	// wall clock. Format: 2006-01-02.
	AsOf string `yaml:"as_of" envconfig:"AS_OF" validate:"omitempty,datetime=2006-01-02"`
}

// OutputConfig describes where result files are written
type OutputConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" default:"data/reports" validate:"required"`
	RecordsFile string `yaml:"records_file" envconfig:"RECORDS_FILE" default:"sleep_records.csv" validate:"required"`
	SummaryFile string `yaml:"summary_file" envconfig:"SUMMARY_FILE" default:"sleep_summary.csv" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/processor.log"`
}

// MetricsConfig contains the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	Addr    string `yaml:"addr" envconfig:"ADDR" default:":9090"`
}

// AsOfTime parses the configured as-of date. The zero time means the
// wall clock should be used.
func (c InputConfig) AsOfTime() (time.Time, error) {
	if c.AsOf == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", c.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q: %w", c.AsOf, err)
	}
	return t, nil
}

// Load loads configuration from environment variables and an optional
// YAML file. Precedence: explicit environment variable, then file
// value, then compiled-in default.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration with an explicit config file path. A
// missing file is not an error; the environment and defaults apply.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SLEEP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			mergeFileConfig(&cfg, fileCfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// mergeFileConfig overlays file values onto the env-processed config.
// A file value applies only when it is present and the corresponding
// environment variable was not explicitly set, so the environment
// always wins over the file and the file wins over defaults.
func mergeFileConfig(cfg, file *Config) {
	envSet := func(key string) bool {
		_, ok := os.LookupEnv("SLEEP_" + key)
		return ok
	}

	if file.Input.Dir != "" && !envSet("INPUT_DIR") {
		cfg.Input.Dir = file.Input.Dir
	}
	if file.Input.Pattern != "" && !envSet("INPUT_PATTERN") {
		cfg.Input.Pattern = file.Input.Pattern
	}
	if file.Input.AsOf != "" && !envSet("INPUT_AS_OF") {
		cfg.Input.AsOf = file.Input.AsOf
	}

	if file.Output.Dir != "" && !envSet("OUTPUT_DIR") {
		cfg.Output.Dir = file.Output.Dir
	}
	if file.Output.RecordsFile != "" && !envSet("OUTPUT_RECORDS_FILE") {
		cfg.Output.RecordsFile = file.Output.RecordsFile
	}
	if file.Output.SummaryFile != "" && !envSet("OUTPUT_SUMMARY_FILE") {
		cfg.Output.SummaryFile = file.Output.SummaryFile
	}

	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		cfg.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" && !envSet("LOGGING_OUTPUT") {
		cfg.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" && !envSet("LOGGING_FILE_PATH") {
		cfg.Logging.FilePath = file.Logging.FilePath
	}

	if file.Metrics.Enabled && !envSet("METRICS_ENABLED") {
		cfg.Metrics.Enabled = true
	}
	if file.Metrics.Addr != "" && !envSet("METRICS_ADDR") {
		cfg.Metrics.Addr = file.Metrics.Addr
	}
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate validates the configuration using struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if _, err := c.Input.AsOfTime(); err != nil {
		return err
	}
	return nil
}

// configFilePath returns the default config file location, overridable
// via SLEEP_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv("SLEEP_CONFIG_FILE"); path != "" {
		return path
	}
	return "sleeppulse.yaml"
}
