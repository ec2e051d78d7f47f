// Package ranking reorders podcast and episode items by combining bounded
// quality signals under a selectable strategy. Scoring is pure and
// synchronous over the given snapshot; nothing is cached between calls.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/platform/observability"
)

// Ranker scores items with the three base scorers and combines them under
// the requested strategy. Internal failures fail open: the caller gets the
// original order back instead of an error.
type Ranker struct {
	defaults domain.Weights
	logger   *zerolog.Logger
	now      func() time.Time
}

// Option customizes a Ranker.
type Option func(*Ranker)

// WithDefaultWeights overrides the built-in hybrid weights.
func WithDefaultWeights(w domain.Weights) Option {
	return func(r *Ranker) {
		r.defaults = w
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		r.now = now
	}
}

// New creates a Ranker.
func New(logger *zerolog.Logger, opts ...Option) *Ranker {
	r := &Ranker{
		defaults: domain.DefaultWeights(),
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Rank scores every item, combines under strategy, and returns results
// sorted descending by final score. The sort is stable, so ties keep their
// original relative order, and the output is always a permutation of the
// input. Malformed weights or an out-of-range strategy return a
// *domain.ValidationError; any internal failure logs a warning and returns
// the items in their original order with no score metadata.
func (r *Ranker) Rank(items []domain.Item, query string, strategy domain.Strategy, weights domain.Weights) ([]domain.RankedResult, error) {
	if !strategy.Valid() {
		return nil, &domain.ValidationError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %v", strategy)}
	}

	if err := weights.Validate(); err != nil {
		return nil, err
	}

	start := r.now()

	results, err := r.rank(items, query, strategy, weights)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("strategy", strategy.String()).
			Int("items", len(items)).
			Msg("ranking failed, returning original order")
		observability.RankFailOpens.Inc()
		observability.RankRequests.WithLabelValues(strategy.String(), "fail_open").Inc()

		return failOpen(items), nil
	}

	observability.RankRequests.WithLabelValues(strategy.String(), "ok").Inc()
	observability.RankDuration.Observe(r.now().Sub(start).Seconds())

	return results, nil
}

func (r *Ranker) rank(items []domain.Item, query string, strategy domain.Strategy, weights domain.Weights) (results []domain.RankedResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			results = nil
			err = fmt.Errorf("ranking panicked: %v", rec)
		}
	}()

	merged := weights.Merge(r.defaults)
	now := r.now()

	results = make([]domain.RankedResult, len(items))
	for i, item := range items {
		scores := r.scoreItem(item, query, now)
		scores.Final = combine(scores, strategy, merged)

		results[i] = domain.RankedResult{
			Item:     item,
			Scores:   scores,
			Strategy: strategy,
			RankedAt: now,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Final > results[j].Scores.Final
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// scoreItem computes the three base factors. A scoring failure on one item
// is isolated: that item gets neutral scores and ranking continues.
func (r *Ranker) scoreItem(item domain.Item, query string, now time.Time) (scores domain.ScoreSet) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug().
				Str("item_id", item.ID).
				Interface("panic", rec).
				Msg("item scoring failed, substituting neutral scores")

			scores = neutralScores()
		}
	}()

	item = item.Normalize()

	return domain.ScoreSet{
		Semantic:   TextSimilarity(query, item),
		Popularity: Popularity(item),
		Recency:    Recency(item, now),
	}
}

// combine maps the factor scores to a final score for the given strategy.
func combine(scores domain.ScoreSet, strategy domain.Strategy, weights domain.Weights) float64 {
	switch strategy {
	case domain.StrategySemantic:
		return scores.Semantic
	case domain.StrategyPopularity:
		return scores.Popularity
	case domain.StrategyRecency:
		return scores.Recency
	case domain.StrategyHybrid:
		var final float64
		for factor, weight := range weights {
			final += weight * scores.Factor(factor)
		}

		return clamp01(final)
	default:
		// Guarded by Strategy.Valid at the boundary.
		return 0
	}
}

// failOpen wraps items in their original order without score metadata.
func failOpen(items []domain.Item) []domain.RankedResult {
	results := make([]domain.RankedResult, len(items))
	for i, item := range items {
		results[i] = domain.RankedResult{Item: item}
	}

	return results
}

func neutralScores() domain.ScoreSet {
	return domain.ScoreSet{Recency: neutralRecency}
}
