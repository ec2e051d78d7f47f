package queue

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscout/podscout/internal/core/domain"
)

func classifiedEpisode(id string, final float64, bucket domain.PriorityBucket, durationSec int, canProcess bool) domain.ClassifiedEpisode {
	return domain.ClassifiedEpisode{
		RankedResult: domain.RankedResult{
			Item:   domain.Item{ID: id, DurationSec: durationSec},
			Scores: domain.ScoreSet{Final: final},
		},
		Bucket:     bucket,
		CanProcess: canProcess,
	}
}

func TestTimeEstimator(t *testing.T) {
	estimator := DefaultEstimator()

	// 30 minutes at 3s/min on top of the 45s base.
	plain := estimator.Estimate(domain.Item{DurationSec: 30 * 60}, domain.ScoreSet{})
	assert.Equal(t, 45*time.Second+90*time.Second, plain)

	// High engagement inflates the same episode by 1.25x.
	engaged := estimator.Estimate(domain.Item{DurationSec: 30 * 60}, domain.ScoreSet{Engagement: 0.7})
	assert.Equal(t, time.Duration(float64(plain)*1.25), engaged)

	// Unknown duration still costs the base.
	assert.Equal(t, 45*time.Second, estimator.Estimate(domain.Item{}, domain.ScoreSet{}))
}

func TestBuildCapsAndGroups(t *testing.T) {
	nop := zerolog.Nop()
	builder := NewBuilder(3, &nop)

	classified := []domain.ClassifiedEpisode{
		classifiedEpisode("a", 0.9, domain.BucketHigh, 30*60, true),
		classifiedEpisode("b", 0.8, domain.BucketHigh, 20*60, true),
		classifiedEpisode("c", 0.5, domain.BucketMedium, 40*60, false),
		classifiedEpisode("d", 0.3, domain.BucketLow, 10*60, true),
		classifiedEpisode("e", 0.1, domain.BucketDeferred, 0, true),
	}

	q := builder.Build(classified)

	require.Len(t, q.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{q.Items[0].Position, q.Items[1].Position, q.Items[2].Position})
	assert.Equal(t, "a", q.Items[0].Item.ID)
	assert.Equal(t, "c", q.Items[2].Item.ID)
	assert.False(t, q.Items[2].CanProcess)

	assert.Len(t, q.ByBucket[domain.BucketHigh], 2)
	assert.Len(t, q.ByBucket[domain.BucketMedium], 1)
	assert.Empty(t, q.ByBucket[domain.BucketLow])

	// Total covers only what made the queue: d and e are past the cap.
	var want time.Duration
	for _, item := range q.Items {
		want += item.EstimatedProcessing
	}

	assert.Equal(t, want, q.EstimatedTotal)

	require.Len(t, q.RecommendedNext, 2)
	assert.Equal(t, "d", q.RecommendedNext[0].Item.ID)
	assert.Equal(t, 4, q.RecommendedNext[0].Position)
	assert.NotEmpty(t, q.RecommendedNext[0].RecommendationReason)
}

func TestBuildSmallerThanCap(t *testing.T) {
	nop := zerolog.Nop()
	builder := NewBuilder(10, &nop)

	q := builder.Build([]domain.ClassifiedEpisode{
		classifiedEpisode("a", 0.9, domain.BucketHigh, 30*60, true),
	})

	assert.Len(t, q.Items, 1)
	assert.Empty(t, q.RecommendedNext)
}

func TestBuildRecommendWindowOverride(t *testing.T) {
	nop := zerolog.Nop()
	builder := NewBuilder(1, &nop, WithRecommendWindow(1))

	q := builder.Build([]domain.ClassifiedEpisode{
		classifiedEpisode("a", 0.9, domain.BucketHigh, 0, true),
		classifiedEpisode("b", 0.8, domain.BucketHigh, 0, true),
		classifiedEpisode("c", 0.7, domain.BucketHigh, 0, true),
	})

	assert.Len(t, q.Items, 1)
	require.Len(t, q.RecommendedNext, 1)
	assert.Equal(t, "b", q.RecommendedNext[0].Item.ID)
}

func TestRecommendationReason(t *testing.T) {
	tests := []struct {
		name   string
		scores domain.ScoreSet
		want   string
	}{
		{
			name:   "relevance leads",
			scores: domain.ScoreSet{Relevance: 0.9, Recency: 0.95},
			want:   "Strong match for your interests",
		},
		{
			name:   "very recent",
			scores: domain.ScoreSet{Recency: 0.95},
			want:   "Very recent",
		},
		{
			name:   "popularity",
			scores: domain.ScoreSet{Popularity: 0.85},
			want:   "Popular, well-cataloged show",
		},
		{
			name:   "threshold is exclusive",
			scores: domain.ScoreSet{Semantic: 0.8},
			want:   reasonBalanced,
		},
		{
			name:   "nothing stands out",
			scores: domain.ScoreSet{Relevance: 0.5, Recency: 0.4},
			want:   reasonBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendationReason(tt.scores))
		})
	}
}

func TestDescribe(t *testing.T) {
	q := domain.Queue{
		Items:          []domain.QueueItem{{}, {}},
		EstimatedTotal: 90 * time.Second,
	}

	assert.Equal(t, "2 queued (1m30s estimated), 0 recommended next", Describe(q))
}
