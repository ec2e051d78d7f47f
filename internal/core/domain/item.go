package domain

import (
	"strings"
	"time"
)

// Item is a scorable record: a podcast from search results or a single
// episode from a feed. The ranking engine never mutates it; scores travel
// in a separate RankedResult wrapper.
type Item struct {
	ID          string
	Title       string
	Author      string
	Description string

	// Metadata used by the popularity and episode scorers.
	EpisodeCount int
	ReleasedAt   *time.Time
	Genre        string
	HasRating    bool
	Complete     bool
	ArtworkURL   string

	// MediaURL points at the playable audio. Items without it are still
	// scored and bucketed but excluded from automatic batch processing.
	MediaURL string

	// DurationSec is the episode length in seconds, 0 when unknown.
	DurationSec int

	FeedURL string
}

// Normalize trims whitespace from text fields and drops negative counts.
// Called once at ingestion so the scorers can assume a sane shape.
func (it Item) Normalize() Item {
	it.Title = strings.TrimSpace(it.Title)
	it.Author = strings.TrimSpace(it.Author)
	it.Description = strings.TrimSpace(it.Description)
	it.Genre = strings.TrimSpace(it.Genre)

	if it.EpisodeCount < 0 {
		it.EpisodeCount = 0
	}

	if it.DurationSec < 0 {
		it.DurationSec = 0
	}

	return it
}
