package llm

import (
	"fmt"
	"strings"

	"github.com/podscout/podscout/internal/core/domain"
)

const summarySystemPrompt = "You summarize podcast episode transcripts. " +
	"Write a tight summary: one paragraph of the episode's core argument or story, " +
	"then 3-6 bullet points with the concrete takeaways. " +
	"Mention speaker names only when the transcript makes them clear. " +
	"Do not invent facts that are not in the transcript."

func buildSummaryPrompt(transcript string, episode domain.Item) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Episode: %s\n", episode.Title))

	if episode.Author != "" {
		sb.WriteString(fmt.Sprintf("Show/Author: %s\n", episode.Author))
	}

	if episode.DurationSec > 0 {
		sb.WriteString(fmt.Sprintf("Duration: %d minutes\n", episode.DurationSec/60))
	}

	sb.WriteString("\nTranscript:\n")
	sb.WriteString(transcript)

	return sb.String()
}
