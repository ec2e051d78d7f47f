// Package ports declares the interfaces the ranking and batch engine
// consumes. The engine treats search, feeds, transcription, and
// summarization as black boxes behind these signatures; the adapters under
// internal/search, internal/feed, internal/media, internal/transcribe, and
// internal/llm provide the default implementations wired at startup.
package ports

import (
	"context"

	"github.com/podscout/podscout/internal/core/domain"
)

// SearchProvider yields raw podcast items for a query.
type SearchProvider interface {
	SearchPodcasts(ctx context.Context, query string, limit int) ([]domain.Item, error)
}

// EpisodeProvider yields raw episode items for a podcast feed.
type EpisodeProvider interface {
	Episodes(ctx context.Context, feedURL string) ([]domain.Item, error)
}

// AudioDownloader fetches an episode's audio to local scratch space.
// The returned cleanup must be called on both success and failure paths.
type AudioDownloader interface {
	Fetch(ctx context.Context, mediaURL string) (path string, cleanup func(), err error)
}

// Transcriber turns a local audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer condenses a transcript, with the episode item as context.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, episode domain.Item) (string, error)
}
