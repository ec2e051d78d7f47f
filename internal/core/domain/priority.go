package domain

import "fmt"

// PriorityBucket orders episodes by processing urgency.
type PriorityBucket int

const (
	BucketHigh PriorityBucket = iota
	BucketMedium
	BucketLow
	BucketDeferred
)

func (b PriorityBucket) String() string {
	switch b {
	case BucketHigh:
		return "high"
	case BucketMedium:
		return "medium"
	case BucketLow:
		return "low"
	case BucketDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// Buckets lists all buckets in priority order.
func Buckets() []PriorityBucket {
	return []PriorityBucket{BucketHigh, BucketMedium, BucketLow, BucketDeferred}
}

// Thresholds partitions final scores into buckets. The three cut points must
// be monotonic so every value in [0,1] lands in exactly one bucket; scores
// exactly on a cut point go to the higher bucket.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultThresholds returns the standard bucket cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.7, Medium: 0.45, Low: 0.2}
}

// Validate rejects non-monotonic or out-of-range thresholds.
func (t Thresholds) Validate() error {
	if t.Low <= 0 || t.Low >= t.Medium || t.Medium >= t.High || t.High > 1 {
		return &ValidationError{
			Field:  "thresholds",
			Reason: fmt.Sprintf("must satisfy 0 < low < medium < high <= 1, got low=%v medium=%v high=%v", t.Low, t.Medium, t.High),
		}
	}

	return nil
}

// Classify maps a final score to its bucket. Exhaustive: anything below the
// low cut point is deferred, so no score is unclassifiable.
func (t Thresholds) Classify(final float64) PriorityBucket {
	switch {
	case final >= t.High:
		return BucketHigh
	case final >= t.Medium:
		return BucketMedium
	case final >= t.Low:
		return BucketLow
	default:
		return BucketDeferred
	}
}

// ClassifiedEpisode is a ranked episode annotated with its priority bucket
// and processing eligibility.
type ClassifiedEpisode struct {
	RankedResult

	Bucket PriorityBucket

	// CanProcess is false when the episode has no playable media URL. Such
	// episodes stay visible for manual override but are skipped by the
	// automatic batch run.
	CanProcess bool
}
