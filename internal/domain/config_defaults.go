package domain

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

func DefaultConfig() *Config {
	return &Config{
		Catalog:     DefaultCatalogConfig(),
		Transcripts: DefaultTranscriptsConfig(),
		Generation:  DefaultGenerationConfig(),
		Trends:      DefaultTrendsConfig(),
		Discovery:   DefaultDiscoveryConfig(),
	}
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		BaseURL:        "https://www.googleapis.com/youtube/v3",
		RequestTimeout: 10 * time.Second,
	}
}

func DefaultTranscriptsConfig() TranscriptsConfig {
	return TranscriptsConfig{
		BaseURL:        "https://video.google.com/timedtext",
		RequestTimeout: 30 * time.Second,
	}
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-1.5-pro-latest",
		RequestTimeout:  60 * time.Second,
		RefusalSentinel: "I can't help with this request.",
	}
}

func DefaultTrendsConfig() TrendsConfig {
	return TrendsConfig{
		MaxKeywords: 5,
	}
}

func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		DefaultMaxResults:     10,
		ShortFormMarker:       "shorts",
		SearchResultsPerTopic: 2,
	}
}

func NewConfigFromSimple(dataDir, catalogKey, generationKey string, logger *slog.Logger) *Config {
	config := DefaultConfig()
	config.DataDir = dataDir
	config.Catalog.APIKey = catalogKey
	config.Generation.APIKey = generationKey
	config.Logger = logger

	if logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return config
}

func (c *Config) WithModel(model string) *Config {
	if model != "" {
		c.Generation.Model = model
	}
	return c
}

func (c *Config) WithMaxKeywords(n int) *Config {
	if n > 0 {
		c.Trends.MaxKeywords = n
	}
	return c
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return NewConfigError("data_dir", ErrInvalidInput)
	}
	if c.Logger == nil {
		return NewConfigError("logger", ErrInvalidInput)
	}
	if c.Catalog.BaseURL == "" {
		return NewConfigError("catalog.base_url", ErrInvalidInput)
	}
	if c.Generation.Model == "" {
		return NewConfigError("generation.model", ErrInvalidInput)
	}
	if c.Trends.MaxKeywords <= 0 {
		return NewConfigError("trends.max_keywords", ErrInvalidInput)
	}
	if c.Discovery.DefaultMaxResults <= 0 {
		return NewConfigError("discovery.default_max_results", ErrInvalidInput)
	}
	return nil
}

type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{
		Field: field,
		Err:   err,
	}
}
