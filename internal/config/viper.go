// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Ingest struct {
		// YearMin/YearMax bound the plausible elaboration years; rows with
		// dates outside the window are skipped, not rejected as errors.
		YearMin int `mapstructure:"year_min" yaml:"year_min"`
		YearMax int `mapstructure:"year_max" yaml:"year_max"`
		// HeaderScanRows is how deep the header locator looks for the
		// label row.
		HeaderScanRows int `mapstructure:"header_scan_rows" yaml:"header_scan_rows"`
	} `mapstructure:"ingest" yaml:"ingest"`

	Store struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"store" yaml:"store"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then config.yaml, then SIIGO_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.siigo-ingest")
	v.AddConfigPath(".siigo-ingest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SIIGO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine, defaults and env vars apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ingest.year_min", 2020)
	v.SetDefault("ingest.year_max", 2030)
	v.SetDefault("ingest.header_scan_rows", 10)

	v.SetDefault("store.file", "uploads.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Ingest.YearMin > config.Ingest.YearMax {
		return fmt.Errorf("ingest.year_min (%d) must not exceed ingest.year_max (%d)",
			config.Ingest.YearMin, config.Ingest.YearMax)
	}

	if config.Ingest.HeaderScanRows < 1 {
		return fmt.Errorf("ingest.header_scan_rows must be at least 1, got: %d", config.Ingest.HeaderScanRows)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger per the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
