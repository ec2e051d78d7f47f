package ranking

import (
	"math"
	"time"

	"github.com/podscout/podscout/internal/core/domain"
)

const (
	// recencyTimeConstant is the decay time constant in days; a year-old
	// item scores e^-1 ≈ 0.37.
	recencyTimeConstant = 365.0

	// neutralRecency is assumed when the release date is unknown.
	neutralRecency = 0.3

	hoursPerDay = 24
)

// Recency maps elapsed time since release to an exponentially decayed score.
// Future-dated items count as fresh.
func Recency(item domain.Item, now time.Time) float64 {
	if item.ReleasedAt == nil {
		return neutralRecency
	}

	days := now.Sub(*item.ReleasedAt).Hours() / hoursPerDay
	if days < 0 {
		days = 0
	}

	return clamp01(math.Exp(-days / recencyTimeConstant))
}
