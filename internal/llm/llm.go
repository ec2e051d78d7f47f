// Package llm provides the transcript Summarizer. An OpenAI-backed client
// is used when an API key is configured; otherwise a mock stands in.
package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/core/ports"
)

// Config holds summarizer settings.
type Config struct {
	APIKey       string
	Model        string
	RateLimitRPS int
}

// New returns a Summarizer for the configuration.
func New(cfg Config, logger *zerolog.Logger) ports.Summarizer {
	if cfg.APIKey == "" || cfg.APIKey == "mock" {
		logger.Info().Msg("no LLM API key configured, using mock summarizer")
		return &mockSummarizer{}
	}

	return newOpenAI(cfg, logger)
}

type mockSummarizer struct{}

func (m *mockSummarizer) Summarize(_ context.Context, transcript string, episode domain.Item) (string, error) {
	return fmt.Sprintf("Mock summary of %q (%d transcript characters).", episode.Title, len(transcript)), nil
}
