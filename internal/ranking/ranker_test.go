package ranking

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscout/podscout/internal/core/domain"
)

func testRanker(t *testing.T) *Ranker {
	t.Helper()

	nop := zerolog.Nop()

	return New(&nop, WithClock(func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}))
}

func daysAgo(days int) *time.Time {
	released := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	return &released
}

func itemIDs(results []domain.RankedResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Item.ID
	}

	return ids
}

func TestRankPermutation(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "a", Title: "The Daily", ReleasedAt: daysAgo(2)},
		{ID: "b", Title: "Random Show", ReleasedAt: daysAgo(900)},
		{ID: "c", Title: "Daily Tech News", Genre: "Technology", EpisodeCount: 400},
		{ID: "d"},
	}

	for _, strategy := range []domain.Strategy{
		domain.StrategySemantic,
		domain.StrategyPopularity,
		domain.StrategyRecency,
		domain.StrategyHybrid,
	} {
		t.Run(strategy.String(), func(t *testing.T) {
			results, err := ranker.Rank(items, "daily", strategy, nil)
			require.NoError(t, err)
			require.Len(t, results, len(items))

			assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, itemIDs(results))

			for i, result := range results {
				assert.Equal(t, i+1, result.Rank)
				assert.Equal(t, strategy, result.Strategy)
				assert.False(t, result.RankedAt.IsZero())
			}
		})
	}
}

func TestRankStability(t *testing.T) {
	ranker := testRanker(t)

	// Identical metadata under the popularity strategy produces equal final
	// scores; original relative order must survive the sort.
	items := []domain.Item{
		{ID: "first", Title: "Show One", Genre: "News"},
		{ID: "second", Title: "Show Two", Genre: "News"},
		{ID: "third", Title: "Show Three", Genre: "News"},
	}

	results, err := ranker.Rank(items, "unrelated", domain.StrategyPopularity, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, itemIDs(results))
}

func TestRankStrategyEquivalence(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "a", Title: "The Daily", EpisodeCount: 900, ReleasedAt: daysAgo(700)},
		{ID: "b", Title: "Morning Brew Daily", ReleasedAt: daysAgo(1)},
		{ID: "c", Title: "Completely Different", Genre: "Comedy", ReleasedAt: daysAgo(3)},
	}

	semantic, err := ranker.Rank(items, "daily", domain.StrategySemantic, nil)
	require.NoError(t, err)

	hybrid, err := ranker.Rank(items, "daily", domain.StrategyHybrid, domain.Weights{
		domain.FactorSemantic:   1,
		domain.FactorPopularity: 0,
		domain.FactorRecency:    0,
	})
	require.NoError(t, err)

	assert.Equal(t, itemIDs(semantic), itemIDs(hybrid))
}

func TestRankScenarioFreshTitleMatchWins(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "daily", Title: "The Daily", ReleasedAt: daysAgo(2)},
		{ID: "random", Title: "Random Show", ReleasedAt: daysAgo(900)},
	}

	results, err := ranker.Rank(items, "daily", domain.StrategyHybrid, nil)
	require.NoError(t, err)

	assert.Equal(t, "daily", results[0].Item.ID)
}

func TestRankScenarioPopularityMetadata(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "b", Title: "Tiny Show", EpisodeCount: 10},
		{ID: "a", Title: "Big Show", EpisodeCount: 1000, Genre: "News", ArtworkURL: "https://example.com/a.jpg"},
	}

	results, err := ranker.Rank(items, "", domain.StrategyPopularity, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", results[0].Item.ID)
	assert.Equal(t, "b", results[1].Item.ID)
}

func TestRankMalformedItemGetsNeutralScores(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "ok", Title: "The Daily", ReleasedAt: daysAgo(1)},
		{ID: "broken"}, // no title, no metadata, no date
		{ID: "ok2", Title: "Daily Tech News", Genre: "Technology"},
	}

	results, err := ranker.Rank(items, "daily", domain.StrategyHybrid, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var broken *domain.RankedResult

	for i := range results {
		if results[i].Item.ID == "broken" {
			broken = &results[i]
		}
	}

	require.NotNil(t, broken)
	assert.Positive(t, broken.Rank)
	assert.LessOrEqual(t, broken.Rank, 3)
	assert.Zero(t, broken.Scores.Semantic)
	assert.InDelta(t, 0.3, broken.Scores.Recency, 1e-9)
}

func TestRankUnknownStrategyRejected(t *testing.T) {
	ranker := testRanker(t)

	_, err := ranker.Rank([]domain.Item{{ID: "a", Title: "x"}}, "q", domain.Strategy(42), nil)

	var validationErr *domain.ValidationError

	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
}

func TestRankNegativeWeightsRejected(t *testing.T) {
	ranker := testRanker(t)

	_, err := ranker.Rank([]domain.Item{{ID: "a", Title: "x"}}, "q", domain.StrategyHybrid,
		domain.Weights{domain.FactorSemantic: -1})

	var validationErr *domain.ValidationError

	require.Error(t, err)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "weights", validationErr.Field)
}

func TestRankEmptyInput(t *testing.T) {
	ranker := testRanker(t)

	results, err := ranker.Rank(nil, "daily", domain.StrategyHybrid, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankScoresBounded(t *testing.T) {
	ranker := testRanker(t)

	items := []domain.Item{
		{ID: "a", Title: "daily daily daily", Author: "daily", Description: "daily", EpisodeCount: 100000, HasRating: true, Genre: "News", Complete: true, ArtworkURL: "x", ReleasedAt: daysAgo(0)},
	}

	// Oversized weights are legal (not auto-normalized); the final score is
	// still clamped into [0,1].
	results, err := ranker.Rank(items, "daily", domain.StrategyHybrid, domain.Weights{
		domain.FactorSemantic:   5,
		domain.FactorPopularity: 5,
		domain.FactorRecency:    5,
	})
	require.NoError(t, err)

	scores := results[0].Scores
	for name, value := range map[string]float64{
		"semantic":   scores.Semantic,
		"popularity": scores.Popularity,
		"recency":    scores.Recency,
		"final":      scores.Final,
	} {
		assert.GreaterOrEqual(t, value, 0.0, name)
		assert.LessOrEqual(t, value, 1.0, name)
	}
}
