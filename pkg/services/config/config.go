package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is one pipeline run's configuration. Flags layered on top by
// the CLI override file values.
type Config struct {
	Input          string        `mapstructure:"input"`
	EnrichedOutput string        `mapstructure:"enriched_output"`
	ReportOutput   string        `mapstructure:"report_output"`
	CatalogURL     string        `mapstructure:"catalog_url"`
	CatalogTimeout time.Duration `mapstructure:"catalog_timeout"`
	TopN           int           `mapstructure:"top_n"`
	LowThreshold   int           `mapstructure:"low_threshold"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input:          "data/sales_data.txt",
		EnrichedOutput: "output/enriched_sales_data.txt",
		ReportOutput:   "output/sales_report.txt",
		CatalogURL:     "https://dummyjson.com",
		CatalogTimeout: 10 * time.Second,
		TopN:           5,
		LowThreshold:   10,
	}
}

// LoadConfig loads run configuration from the specified file, filling
// unset keys with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("input", cfg.Input)
	v.SetDefault("enriched_output", cfg.EnrichedOutput)
	v.SetDefault("report_output", cfg.ReportOutput)
	v.SetDefault("catalog_url", cfg.CatalogURL)
	v.SetDefault("catalog_timeout", cfg.CatalogTimeout)
	v.SetDefault("top_n", cfg.TopN)
	v.SetDefault("low_threshold", cfg.LowThreshold)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
