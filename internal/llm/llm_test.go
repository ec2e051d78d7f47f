package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscout/podscout/internal/core/domain"
)

func TestNewSelectsMockWithoutKey(t *testing.T) {
	nop := zerolog.Nop()

	for _, key := range []string{"", "mock"} {
		summarizer := New(Config{APIKey: key}, &nop)

		summary, err := summarizer.Summarize(context.Background(), "some transcript", domain.Item{Title: "Fusion breakthroughs"})
		require.NoError(t, err)
		assert.Contains(t, summary, "Fusion breakthroughs")
	}
}

func TestNewSelectsOpenAIWithKey(t *testing.T) {
	nop := zerolog.Nop()

	summarizer := New(Config{APIKey: "sk-test"}, &nop)

	_, isOpenAI := summarizer.(*openaiSummarizer)
	assert.True(t, isOpenAI)
}

func TestOpenAIDefaults(t *testing.T) {
	nop := zerolog.Nop()

	s := newOpenAI(Config{APIKey: "sk-test"}, &nop)
	assert.Equal(t, defaultModel, s.model)
	assert.NotNil(t, s.rateLimiter)
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := buildSummaryPrompt("the transcript body", domain.Item{
		Title:       "Fusion breakthroughs",
		Author:      "Deep Dive Media",
		DurationSec: 45 * 60,
	})

	assert.Contains(t, prompt, "Episode: Fusion breakthroughs")
	assert.Contains(t, prompt, "Show/Author: Deep Dive Media")
	assert.Contains(t, prompt, "Duration: 45 minutes")
	assert.True(t, strings.HasSuffix(prompt, "the transcript body"))
}

func TestBuildSummaryPromptSkipsEmptyMetadata(t *testing.T) {
	prompt := buildSummaryPrompt("t", domain.Item{Title: "Bare"})

	assert.NotContains(t, prompt, "Show/Author")
	assert.NotContains(t, prompt, "Duration:")
}
