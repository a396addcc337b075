package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Values resolve in order:
// defaults, then the YAML file named by AZURE_PRICING_CONFIG (if any),
// then AZURE_PRICING_* environment variables.
type Config struct {
	BaseURL         string
	APIVersion      string
	HTTPTimeout     time.Duration
	MaxRetries      int
	DefaultCurrency string
	Debug           bool
}

func defaultConfig() Config {
	return Config{
		BaseURL:         "https://prices.azure.com",
		APIVersion:      "2023-01-01-preview",
		HTTPTimeout:     30 * time.Second,
		MaxRetries:      3,
		DefaultCurrency: "USD",
	}
}

// fileConfig is the YAML shape of Config. Durations are strings in
// Go syntax ("30s", "2m") and absent fields leave the defaults alone.
type fileConfig struct {
	BaseURL         *string `yaml:"base_url"`
	APIVersion      *string `yaml:"api_version"`
	HTTPTimeout     *string `yaml:"http_timeout"`
	MaxRetries      *int    `yaml:"max_retries"`
	DefaultCurrency *string `yaml:"default_currency"`
	Debug           *bool   `yaml:"debug"`
}

func (f fileConfig) apply(cfg *Config) error {
	if f.BaseURL != nil {
		cfg.BaseURL = *f.BaseURL
	}
	if f.APIVersion != nil {
		cfg.APIVersion = *f.APIVersion
	}
	if f.HTTPTimeout != nil {
		d, err := time.ParseDuration(*f.HTTPTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid http_timeout %q", *f.HTTPTimeout)
		}
		cfg.HTTPTimeout = d
	}
	if f.MaxRetries != nil {
		if *f.MaxRetries < 0 {
			return fmt.Errorf("max_retries must not be negative")
		}
		cfg.MaxRetries = *f.MaxRetries
	}
	if f.DefaultCurrency != nil {
		cfg.DefaultCurrency = *f.DefaultCurrency
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}
	return nil
}

// loadConfig resolves the configuration. A config file path that does
// not exist is an error; an unset AZURE_PRICING_CONFIG is not.
func loadConfig(logger zerolog.Logger) (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("AZURE_PRICING_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		var file fileConfig
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		if err := file.apply(&cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("config file loaded")
	}

	if v := os.Getenv("AZURE_PRICING_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("AZURE_PRICING_API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := os.Getenv("AZURE_PRICING_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			logger.Warn().Str("value", v).Msg("invalid AZURE_PRICING_HTTP_TIMEOUT, using default")
		} else {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("AZURE_PRICING_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			logger.Warn().Str("value", v).Msg("invalid AZURE_PRICING_MAX_RETRIES, using default")
		} else {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("AZURE_PRICING_CURRENCY"); v != "" {
		cfg.DefaultCurrency = v
	}
	if v := os.Getenv("AZURE_PRICING_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	return cfg, nil
}
