// Package feed implements the EpisodeProvider over podcast RSS feeds.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/platform/observability"
)

const (
	fetchTimeout  = 30 * time.Second
	audioTypeHint = "audio"

	completeFlagYes = "yes"
)

// Provider fetches and parses podcast feeds into episode items.
type Provider struct {
	parser *gofeed.Parser
	logger *zerolog.Logger
}

// NewProvider creates a feed-backed episode provider.
func NewProvider(userAgent string, logger *zerolog.Logger) *Provider {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: fetchTimeout}

	return &Provider{parser: parser, logger: logger}
}

// Episodes fetches the feed and maps its entries to domain items. Entries
// without an audio enclosure are kept: they are scored and shown but gated
// out of automatic processing downstream.
func (p *Provider) Episodes(ctx context.Context, feedURL string) ([]domain.Item, error) {
	parsed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		observability.FeedFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	observability.FeedFetches.WithLabelValues("ok").Inc()

	complete := false
	if parsed.ITunesExt != nil {
		complete = strings.EqualFold(parsed.ITunesExt.Complete, completeFlagYes)
	}

	items := make([]domain.Item, 0, len(parsed.Items))

	for _, entry := range parsed.Items {
		items = append(items, p.mapEntry(parsed, entry, feedURL, complete))
	}

	p.logger.Debug().Str("feed", feedURL).Int("episodes", len(items)).Msg("feed fetched")

	return items, nil
}

func (p *Provider) mapEntry(parsed *gofeed.Feed, entry *gofeed.Item, feedURL string, complete bool) domain.Item {
	item := domain.Item{
		ID:           entry.GUID,
		Title:        entry.Title,
		Author:       feedAuthor(parsed, entry),
		Description:  entry.Description,
		EpisodeCount: len(parsed.Items),
		ReleasedAt:   entry.PublishedParsed,
		Genre:        firstCategory(parsed, entry),
		Complete:     complete,
		ArtworkURL:   entryImage(parsed, entry),
		MediaURL:     audioEnclosure(entry),
		FeedURL:      feedURL,
	}

	if item.ID == "" {
		item.ID = entry.Link
	}

	if entry.ITunesExt != nil {
		item.HasRating = entry.ITunesExt.Explicit != ""
		item.DurationSec = parseDuration(entry.ITunesExt.Duration)

		if entry.ITunesExt.Summary != "" && item.Description == "" {
			item.Description = entry.ITunesExt.Summary
		}
	}

	return item.Normalize()
}

func feedAuthor(parsed *gofeed.Feed, entry *gofeed.Item) string {
	if entry.ITunesExt != nil && entry.ITunesExt.Author != "" {
		return entry.ITunesExt.Author
	}

	if parsed.ITunesExt != nil && parsed.ITunesExt.Author != "" {
		return parsed.ITunesExt.Author
	}

	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}

	return parsed.Title
}

func firstCategory(parsed *gofeed.Feed, entry *gofeed.Item) string {
	if len(entry.Categories) > 0 {
		return entry.Categories[0]
	}

	if len(parsed.Categories) > 0 {
		return parsed.Categories[0]
	}

	return ""
}

func entryImage(parsed *gofeed.Feed, entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}

	if parsed.Image != nil {
		return parsed.Image.URL
	}

	return ""
}

// audioEnclosure returns the first audio enclosure URL. A bare enclosure
// without a type is accepted; plenty of feeds omit it.
func audioEnclosure(entry *gofeed.Item) string {
	for _, enclosure := range entry.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}

		if enclosure.Type == "" || strings.HasPrefix(enclosure.Type, audioTypeHint) {
			return enclosure.URL
		}
	}

	return ""
}

// parseDuration handles both "HH:MM:SS"/"MM:SS" clock forms and plain
// seconds, which is what feeds put in the itunes duration tag.
func parseDuration(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if !strings.Contains(raw, ":") {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return 0
		}

		return seconds
	}

	parts := strings.Split(raw, ":")

	total := 0

	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return 0
		}

		total = total*60 + value
	}

	return total
}
