// Package queue turns classified episodes into a bounded processing plan:
// the top-N queue, per-bucket groupings, an aggregate time estimate, and a
// recommended-next window for whatever did not fit under the cap.
package queue

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/platform/observability"
)

// Estimator predicts wall time for processing one episode.
type Estimator interface {
	Estimate(episode domain.Item, scores domain.ScoreSet) time.Duration
}

// TimeEstimator scales a base cost by episode length and inflates the
// estimate for high-engagement episodes, which tend to get the larger
// summarization prompts.
type TimeEstimator struct {
	Base                 time.Duration
	PerEpisodeMinute     time.Duration
	EngagementThreshold  float64
	EngagementMultiplier float64
}

// DefaultEstimator returns the standard cost model.
func DefaultEstimator() TimeEstimator {
	return TimeEstimator{
		Base:                 45 * time.Second,
		PerEpisodeMinute:     3 * time.Second,
		EngagementThreshold:  0.7,
		EngagementMultiplier: 1.25,
	}
}

// Estimate implements Estimator.
func (e TimeEstimator) Estimate(episode domain.Item, scores domain.ScoreSet) time.Duration {
	minutes := episode.DurationSec / 60
	estimate := e.Base + time.Duration(minutes)*e.PerEpisodeMinute

	if scores.Engagement >= e.EngagementThreshold && e.EngagementMultiplier > 1 {
		estimate = time.Duration(float64(estimate) * e.EngagementMultiplier)
	}

	return estimate
}

const (
	defaultRecommendWindow = 3

	// highFactorThreshold marks an individual factor worth calling out in a
	// recommendation justification.
	highFactorThreshold = 0.8

	reasonBalanced = "balanced quality metrics"
)

// Builder assembles processing queues.
type Builder struct {
	cap             int
	recommendWindow int
	estimator       Estimator
	logger          *zerolog.Logger
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithEstimator replaces the per-item cost model.
func WithEstimator(e Estimator) BuilderOption {
	return func(b *Builder) {
		b.estimator = e
	}
}

// WithRecommendWindow sets how many past-the-cap items get recommended.
func WithRecommendWindow(k int) BuilderOption {
	return func(b *Builder) {
		b.recommendWindow = k
	}
}

// NewBuilder creates a Builder with the given queue cap.
func NewBuilder(queueCap int, logger *zerolog.Logger, opts ...BuilderOption) *Builder {
	b := &Builder{
		cap:             queueCap,
		recommendWindow: defaultRecommendWindow,
		estimator:       DefaultEstimator(),
		logger:          logger,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build caps the ranked episodes into an ordered queue, groups it by bucket,
// and sums estimates over the returned queue only. Episodes without media
// stay in the queue as informational rows with CanProcess false.
func (b *Builder) Build(classified []domain.ClassifiedEpisode) domain.Queue {
	q := domain.Queue{
		ByBucket: make(map[domain.PriorityBucket][]domain.QueueItem),
	}

	limit := b.cap
	if limit > len(classified) {
		limit = len(classified)
	}

	for i := 0; i < limit; i++ {
		item := b.queueItem(classified[i], i+1)
		q.Items = append(q.Items, item)
		q.ByBucket[item.Bucket] = append(q.ByBucket[item.Bucket], item)
		q.EstimatedTotal += item.EstimatedProcessing
	}

	end := limit + b.recommendWindow
	if end > len(classified) {
		end = len(classified)
	}

	for i := limit; i < end; i++ {
		item := b.queueItem(classified[i], i+1)
		item.RecommendationReason = recommendationReason(item.Scores)
		q.RecommendedNext = append(q.RecommendedNext, item)
	}

	observability.QueueSize.Set(float64(len(q.Items)))
	observability.QueueEstimatedSeconds.Set(q.EstimatedTotal.Seconds())

	b.logger.Debug().
		Int("queued", len(q.Items)).
		Int("recommended", len(q.RecommendedNext)).
		Dur("estimated_total", q.EstimatedTotal).
		Msg("processing queue built")

	return q
}

func (b *Builder) queueItem(ep domain.ClassifiedEpisode, position int) domain.QueueItem {
	return domain.QueueItem{
		Position:            position,
		Item:                ep.Item,
		Scores:              ep.Scores,
		Bucket:              ep.Bucket,
		EstimatedProcessing: b.estimator.Estimate(ep.Item, ep.Scores),
		CanProcess:          ep.CanProcess,
	}
}

// recommendationReason names the first factor that clears the high-value
// threshold, falling back to a generic line when none does.
func recommendationReason(scores domain.ScoreSet) string {
	checks := []struct {
		value float64
		text  string
	}{
		{scores.Relevance, "Strong match for your interests"},
		{scores.Semantic, "Close match for the search terms"},
		{scores.Recency, "Very recent"},
		{scores.Popularity, "Popular, well-cataloged show"},
		{scores.Engagement, "High production quality signals"},
		{scores.DurationFit, "Efficient listen length"},
	}

	for _, check := range checks {
		if check.value > highFactorThreshold {
			return check.text
		}
	}

	return reasonBalanced
}

// Describe renders a one-line human summary of a queue, for logs and CLI
// output.
func Describe(q domain.Queue) string {
	return fmt.Sprintf("%d queued (%s estimated), %d recommended next",
		len(q.Items), q.EstimatedTotal.Round(time.Second), len(q.RecommendedNext))
}
