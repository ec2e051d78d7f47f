// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/podscout/podscout/internal/core/domain"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Directory search
	SearchBaseURL string `env:"SEARCH_BASE_URL" envDefault:"https://itunes.apple.com/search"`
	SearchRPM     int    `env:"SEARCH_RPM" envDefault:"20"`
	SearchLimit   int    `env:"SEARCH_LIMIT" envDefault:"25"`

	// Feeds to watch in batch mode
	FeedURLs      []string `env:"FEED_URLS" envSeparator:","`
	InterestQuery string   `env:"INTEREST_QUERY" envDefault:""`
	UserAgent     string   `env:"USER_AGENT" envDefault:"podscout/1.0"`

	// Ranking
	Strategy         string  `env:"RANK_STRATEGY" envDefault:"hybrid"`
	WeightSemantic   float64 `env:"WEIGHT_SEMANTIC" envDefault:"0.4"`
	WeightPopularity float64 `env:"WEIGHT_POPULARITY" envDefault:"0.35"`
	WeightRecency    float64 `env:"WEIGHT_RECENCY" envDefault:"0.25"`

	// Priority bucket thresholds
	PriorityHigh   float64 `env:"PRIORITY_HIGH" envDefault:"0.7"`
	PriorityMedium float64 `env:"PRIORITY_MEDIUM" envDefault:"0.45"`
	PriorityLow    float64 `env:"PRIORITY_LOW" envDefault:"0.2"`

	// Queue and batch
	QueueCap           int           `env:"QUEUE_CAP" envDefault:"10"`
	RecommendWindow    int           `env:"RECOMMEND_WINDOW" envDefault:"3"`
	BatchItemTimeout   time.Duration `env:"BATCH_ITEM_TIMEOUT" envDefault:"15m"`
	DownloadTimeout    time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"5m"`
	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"1h"`

	// Transcription
	WhisperCommand string `env:"WHISPER_COMMAND"`
	WhisperModel   string `env:"WHISPER_MODEL" envDefault:"base"`

	// Summarization
	LLMAPIKey    string `env:"LLM_API_KEY"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	RateLimitRPS int    `env:"RATE_LIMIT_RPS" envDefault:"1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// HybridWeights builds the configured default weights as an immutable value;
// callers receive a fresh map per call.
func (c *Config) HybridWeights() domain.Weights {
	return domain.Weights{
		domain.FactorSemantic:   c.WeightSemantic,
		domain.FactorPopularity: c.WeightPopularity,
		domain.FactorRecency:    c.WeightRecency,
	}
}

// Thresholds builds the configured bucket cut points.
func (c *Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		High:   c.PriorityHigh,
		Medium: c.PriorityMedium,
		Low:    c.PriorityLow,
	}
}
