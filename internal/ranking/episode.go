package ranking

import (
	"strings"
	"time"

	"github.com/podscout/podscout/internal/core/domain"
)

// EpisodeScorer is a pluggable factor for the episode processing path.
// Scores must stay in [0,1]; the classifier clamps defensively anyway.
type EpisodeScorer interface {
	Name() string
	Score(query string, episode domain.Item, now time.Time) float64
}

// relevanceScorer measures query-vs-episode-content match with the same
// technique family as TextSimilarity, widened to the description: the title
// similarity blended with word overlap against the episode description.
type relevanceScorer struct{}

func (relevanceScorer) Name() string { return domain.FactorRelevance }

func (relevanceScorer) Score(query string, episode domain.Item, _ time.Time) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	title := TextSimilarity(query, episode)

	description := strings.ToLower(episode.Description)
	if description == "" {
		return title
	}

	descOverlap := jaccardSimilarity(tokenSet(query), tokenSet(description))

	return clamp01(relevanceTitleWeight*title + relevanceDescWeight*descOverlap)
}

const (
	relevanceTitleWeight = 0.7
	relevanceDescWeight  = 0.3
)

// engagementScorer sums production-quality signals: a content rating, show
// artwork, a substantial description, and known duration metadata.
type engagementScorer struct{}

const (
	engagementRatingBonus   = 0.35
	engagementArtworkBonus  = 0.25
	engagementDescBonus     = 0.2
	engagementDurationBonus = 0.2

	substantialDescChars = 200
)

func (engagementScorer) Name() string { return domain.FactorEngagement }

func (engagementScorer) Score(_ string, episode domain.Item, _ time.Time) float64 {
	var score float64

	if episode.HasRating {
		score += engagementRatingBonus
	}

	if episode.ArtworkURL != "" {
		score += engagementArtworkBonus
	}

	if len(episode.Description) >= substantialDescChars {
		score += engagementDescBonus
	}

	if episode.DurationSec > 0 {
		score += engagementDurationBonus
	}

	return clamp01(score)
}

// durationFitScorer peaks inside an efficient listening band and tapers
// linearly outside it. Unknown durations get a neutral score.
type durationFitScorer struct {
	band DurationBand
}

// DurationBand bounds the efficient episode length.
type DurationBand struct {
	Min   time.Duration
	Max   time.Duration
	Taper time.Duration // span past Max over which the score reaches zero
}

// DefaultDurationBand favors 20 to 60 minute episodes.
func DefaultDurationBand() DurationBand {
	return DurationBand{
		Min:   20 * time.Minute,
		Max:   60 * time.Minute,
		Taper: 2 * time.Hour,
	}
}

const neutralDurationFit = 0.3

func (s durationFitScorer) Name() string { return domain.FactorDurationFit }

func (s durationFitScorer) Score(_ string, episode domain.Item, _ time.Time) float64 {
	if episode.DurationSec <= 0 {
		return neutralDurationFit
	}

	d := time.Duration(episode.DurationSec) * time.Second

	switch {
	case d >= s.band.Min && d <= s.band.Max:
		return 1
	case d < s.band.Min:
		return clamp01(float64(d) / float64(s.band.Min))
	default:
		over := d - s.band.Max
		return clamp01(1 - float64(over)/float64(s.band.Taper))
	}
}

// DefaultEpisodeScorers returns the built-in relevance, engagement, and
// duration-fit scorers.
func DefaultEpisodeScorers() []EpisodeScorer {
	return []EpisodeScorer{
		relevanceScorer{},
		engagementScorer{},
		durationFitScorer{band: DefaultDurationBand()},
	}
}

// EpisodeScorersWithBand is DefaultEpisodeScorers with a custom efficient
// length band.
func EpisodeScorersWithBand(band DurationBand) []EpisodeScorer {
	return []EpisodeScorer{
		relevanceScorer{},
		engagementScorer{},
		durationFitScorer{band: band},
	}
}
