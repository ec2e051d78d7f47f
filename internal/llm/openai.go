package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/podscout/podscout/internal/core/domain"
)

const (
	defaultModel = openai.GPT4oMini
	defaultRPS   = 1
	burstSize    = 5

	// maxTranscriptChars bounds the prompt; longer transcripts are cut at
	// the tail, which keeps the episode's framing and main discussion.
	maxTranscriptChars = 48000
)

type openaiSummarizer struct {
	client      *openai.Client
	model       string
	rateLimiter *rate.Limiter
	logger      *zerolog.Logger
}

func newOpenAI(cfg Config, logger *zerolog.Logger) *openaiSummarizer {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = defaultRPS
	}

	return &openaiSummarizer{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), burstSize),
		logger:      logger,
	}
}

func (s *openaiSummarizer) Summarize(ctx context.Context, transcript string, episode domain.Item) (string, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarySystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildSummaryPrompt(transcript, episode),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices for episode %s", episode.ID)
	}

	s.logger.Debug().
		Str("model", s.model).
		Str("episode", episode.ID).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("transcript summarized")

	return resp.Choices[0].Message.Content, nil
}
