package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/platform/observability"
)

// Classifier is the episode-processing variant of the Ranker: it adds the
// episode scorers on top of the base three, then maps each final score to a
// priority bucket. Same fail-open contract as Rank.
type Classifier struct {
	scorers    []EpisodeScorer
	thresholds domain.Thresholds
	defaults   domain.Weights
	logger     *zerolog.Logger
	now        func() time.Time
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithScorers replaces the episode scorer slots. Each must honor the [0,1]
// contract.
func WithScorers(scorers []EpisodeScorer) ClassifierOption {
	return func(c *Classifier) {
		c.scorers = scorers
	}
}

// WithThresholds overrides the bucket cut points. Validated in NewClassifier.
func WithThresholds(t domain.Thresholds) ClassifierOption {
	return func(c *Classifier) {
		c.thresholds = t
	}
}

// WithEpisodeWeights overrides the default hybrid weights.
func WithEpisodeWeights(w domain.Weights) ClassifierOption {
	return func(c *Classifier) {
		c.defaults = w
	}
}

// WithClassifierClock overrides the time source, for tests.
func WithClassifierClock(now func() time.Time) ClassifierOption {
	return func(c *Classifier) {
		c.now = now
	}
}

// NewClassifier creates a Classifier. Non-monotonic thresholds are a
// configuration error.
func NewClassifier(logger *zerolog.Logger, opts ...ClassifierOption) (*Classifier, error) {
	c := &Classifier{
		scorers:    DefaultEpisodeScorers(),
		thresholds: domain.DefaultThresholds(),
		defaults:   domain.DefaultEpisodeWeights(),
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.thresholds.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Classify ranks episodes and assigns each a priority bucket. Episodes
// without a playable media URL are still scored and bucketed but flagged as
// not processable.
func (c *Classifier) Classify(episodes []domain.Item, query string, strategy domain.Strategy, weights domain.Weights) ([]domain.ClassifiedEpisode, error) {
	if !strategy.Valid() {
		return nil, &domain.ValidationError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %v", strategy)}
	}

	if err := weights.Validate(); err != nil {
		return nil, err
	}

	classified, err := c.classify(episodes, query, strategy, weights)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("strategy", strategy.String()).
			Int("episodes", len(episodes)).
			Msg("episode classification failed, returning original order")
		observability.RankFailOpens.Inc()

		return failOpenEpisodes(episodes), nil
	}

	for _, ep := range classified {
		observability.EpisodesClassified.WithLabelValues(ep.Bucket.String()).Inc()
	}

	return classified, nil
}

func (c *Classifier) classify(episodes []domain.Item, query string, strategy domain.Strategy, weights domain.Weights) (classified []domain.ClassifiedEpisode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			classified = nil
			err = fmt.Errorf("classification panicked: %v", rec)
		}
	}()

	merged := weights.Merge(c.defaults)
	now := c.now()

	classified = make([]domain.ClassifiedEpisode, len(episodes))
	for i, episode := range episodes {
		scores := c.scoreEpisode(episode, query, now)
		scores.Final = combine(scores, strategy, merged)

		classified[i] = domain.ClassifiedEpisode{
			RankedResult: domain.RankedResult{
				Item:     episode,
				Scores:   scores,
				Strategy: strategy,
				RankedAt: now,
			},
			Bucket:     c.thresholds.Classify(scores.Final),
			CanProcess: episode.MediaURL != "",
		}
	}

	sort.SliceStable(classified, func(i, j int) bool {
		return classified[i].Scores.Final > classified[j].Scores.Final
	})

	for i := range classified {
		classified[i].Rank = i + 1
	}

	return classified, nil
}

func (c *Classifier) scoreEpisode(episode domain.Item, query string, now time.Time) (scores domain.ScoreSet) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Debug().
				Str("item_id", episode.ID).
				Interface("panic", rec).
				Msg("episode scoring failed, substituting neutral scores")

			scores = neutralScores()
		}
	}()

	episode = episode.Normalize()

	scores = domain.ScoreSet{
		Semantic:   TextSimilarity(query, episode),
		Popularity: Popularity(episode),
		Recency:    Recency(episode, now),
	}

	for _, scorer := range c.scorers {
		value := clamp01(scorer.Score(query, episode, now))

		switch scorer.Name() {
		case domain.FactorRelevance:
			scores.Relevance = value
		case domain.FactorEngagement:
			scores.Engagement = value
		case domain.FactorDurationFit:
			scores.DurationFit = value
		}
	}

	return scores
}

func failOpenEpisodes(episodes []domain.Item) []domain.ClassifiedEpisode {
	classified := make([]domain.ClassifiedEpisode, len(episodes))
	for i, episode := range episodes {
		classified[i] = domain.ClassifiedEpisode{
			RankedResult: domain.RankedResult{Item: episode},
			Bucket:       domain.BucketDeferred,
			CanProcess:   episode.MediaURL != "",
		}
	}

	return classified
}
