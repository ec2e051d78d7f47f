package ranking

import (
	"math"

	"github.com/podscout/podscout/internal/core/domain"
)

const (
	volumeSaturation = 1000.0
	volumeWeight     = 0.3
	ratingBonus      = 0.2
	genreBonus       = 0.2
	completeBonus    = 0.1
	artworkBonus     = 0.2
)

// Popularity derives a bounded score from metadata richness: catalog volume
// saturating at 1000 episodes plus fixed bonuses for a rating signal, a
// genre, a complete-collection flag, and artwork.
func Popularity(item domain.Item) float64 {
	score := math.Min(1, float64(item.EpisodeCount)/volumeSaturation) * volumeWeight

	if item.HasRating {
		score += ratingBonus
	}

	if item.Genre != "" {
		score += genreBonus
	}

	if item.Complete {
		score += completeBonus
	}

	if item.ArtworkURL != "" {
		score += artworkBonus
	}

	return clamp01(score)
}
