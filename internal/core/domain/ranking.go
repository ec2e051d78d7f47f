package domain

import (
	"fmt"
	"time"
)

// Strategy selects how factor scores are combined into a final score.
type Strategy int

const (
	StrategySemantic Strategy = iota
	StrategyPopularity
	StrategyRecency
	StrategyHybrid
)

const (
	strategySemanticName   = "semantic"
	strategyPopularityName = "popularity"
	strategyRecencyName    = "recency"
	strategyHybridName     = "hybrid"
)

func (s Strategy) String() string {
	switch s {
	case StrategySemantic:
		return strategySemanticName
	case StrategyPopularity:
		return strategyPopularityName
	case StrategyRecency:
		return strategyRecencyName
	case StrategyHybrid:
		return strategyHybridName
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Valid reports whether s is one of the four known strategies.
func (s Strategy) Valid() bool {
	return s >= StrategySemantic && s <= StrategyHybrid
}

// ParseStrategy maps a request tag to a Strategy. Unknown tags are a caller
// input error, not an internal fault.
func ParseStrategy(tag string) (Strategy, error) {
	switch tag {
	case strategySemanticName:
		return StrategySemantic, nil
	case strategyPopularityName:
		return StrategyPopularity, nil
	case strategyRecencyName:
		return StrategyRecency, nil
	case strategyHybridName:
		return StrategyHybrid, nil
	default:
		return 0, &ValidationError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", tag)}
	}
}

// ValidationError rejects a malformed request at the boundary. It is never
// swallowed by the fail-open policy.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Factor names used as Weights keys.
const (
	FactorSemantic    = "semantic"
	FactorPopularity  = "popularity"
	FactorRecency     = "recency"
	FactorRelevance   = "relevance"
	FactorEngagement  = "engagement"
	FactorDurationFit = "durationFit"
)

// Weights maps factor names to non-negative multipliers for the hybrid
// strategy. Weights are not auto-normalized; that is the caller's call.
type Weights map[string]float64

// DefaultWeights returns a fresh copy of the default hybrid weights for
// podcast search ranking. Callers own the returned map.
func DefaultWeights() Weights {
	return Weights{
		FactorSemantic:   0.4,
		FactorPopularity: 0.35,
		FactorRecency:    0.25,
	}
}

// DefaultEpisodeWeights returns the default hybrid weights for the episode
// processing path, covering all six factors.
func DefaultEpisodeWeights() Weights {
	return Weights{
		FactorSemantic:    0.25,
		FactorPopularity:  0.15,
		FactorRecency:     0.15,
		FactorRelevance:   0.2,
		FactorEngagement:  0.15,
		FactorDurationFit: 0.1,
	}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for factor, weight := range w {
		if weight < 0 {
			return &ValidationError{Field: "weights", Reason: fmt.Sprintf("factor %q has negative weight %v", factor, weight)}
		}
	}

	return nil
}

// Merge overlays w on top of defaults and returns a new map. Neither input
// is modified, so a shared default set never leaks caller mutations.
func (w Weights) Merge(defaults Weights) Weights {
	merged := make(Weights, len(defaults))
	for factor, weight := range defaults {
		merged[factor] = weight
	}

	for factor, weight := range w {
		merged[factor] = weight
	}

	return merged
}

// ScoreSet holds every factor score for one item, each in [0,1]. The episode
// factors stay zero on the podcast search path. Final is set only by the
// strategy combiner.
type ScoreSet struct {
	Semantic    float64 `json:"semantic"`
	Popularity  float64 `json:"popularity"`
	Recency     float64 `json:"recency"`
	Relevance   float64 `json:"relevance,omitempty"`
	Engagement  float64 `json:"engagement,omitempty"`
	DurationFit float64 `json:"duration_fit,omitempty"`
	Final       float64 `json:"final"`
}

// Factor returns the named component score.
func (s ScoreSet) Factor(name string) float64 {
	switch name {
	case FactorSemantic:
		return s.Semantic
	case FactorPopularity:
		return s.Popularity
	case FactorRecency:
		return s.Recency
	case FactorRelevance:
		return s.Relevance
	case FactorEngagement:
		return s.Engagement
	case FactorDurationFit:
		return s.DurationFit
	default:
		return 0
	}
}

// RankedResult pairs an unmodified item with its scoring record. Rank is
// 1-based; a zero Rank means the result came back through the fail-open
// path and carries no score metadata.
type RankedResult struct {
	Item     Item
	Scores   ScoreSet
	Rank     int
	Strategy Strategy
	RankedAt time.Time
}
