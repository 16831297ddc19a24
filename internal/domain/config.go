package domain

import (
	"log/slog"
	"time"
)

type Config struct {
	DataDir string       `json:"data_dir" yaml:"data_dir"`
	Logger  *slog.Logger `json:"-" yaml:"-"`

	Catalog     CatalogConfig     `json:"catalog" yaml:"catalog"`
	Transcripts TranscriptsConfig `json:"transcripts" yaml:"transcripts"`
	Generation  GenerationConfig  `json:"generation" yaml:"generation"`
	Trends      TrendsConfig      `json:"trends" yaml:"trends"`
	Discovery   DiscoveryConfig   `json:"discovery" yaml:"discovery"`
}

type CatalogConfig struct {
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

type TranscriptsConfig struct {
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

type GenerationConfig struct {
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	Model          string        `json:"model" yaml:"model"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// RefusalSentinel marks a generation response that must be surfaced as a
	// GenerationFailure rather than used as output.
	RefusalSentinel string `json:"refusal_sentinel" yaml:"refusal_sentinel"`
}

type TrendsConfig struct {
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords"`
}

// DiscoveryConfig tunes the discovery/ranking pipeline.
type DiscoveryConfig struct {
	DefaultMaxResults int `json:"default_max_results" yaml:"default_max_results"`

	// ShortFormMarker excludes catalog results whose title contains the marker
	// (case-insensitive).
	ShortFormMarker string `json:"short_form_marker" yaml:"short_form_marker"`

	// SearchResultsPerTopic is how many related videos the script pipeline
	// fetches for grounding.
	SearchResultsPerTopic int `json:"search_results_per_topic" yaml:"search_results_per_topic"`
}
