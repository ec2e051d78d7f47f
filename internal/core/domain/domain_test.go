package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		tag     string
		want    Strategy
		wantErr bool
	}{
		{tag: "semantic", want: StrategySemantic},
		{tag: "popularity", want: StrategyPopularity},
		{tag: "recency", want: StrategyRecency},
		{tag: "hybrid", want: StrategyHybrid},
		{tag: "HYBRID", wantErr: true},
		{tag: "best", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseStrategy(tt.tag)
			if tt.wantErr {
				var validationErr *ValidationError

				require.Error(t, err)
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "strategy", validationErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, Weights{FactorSemantic: 1.5, FactorRecency: 0}.Validate())

	err := Weights{FactorSemantic: -0.1}.Validate()
	require.Error(t, err)

	var validationErr *ValidationError

	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "weights", validationErr.Field)
}

func TestWeightsMerge(t *testing.T) {
	defaults := DefaultWeights()
	merged := Weights{FactorSemantic: 1, FactorPopularity: 0}.Merge(defaults)

	assert.Equal(t, 1.0, merged[FactorSemantic])
	assert.Equal(t, 0.0, merged[FactorPopularity])
	assert.Equal(t, defaults[FactorRecency], merged[FactorRecency])

	// Merging never mutates the defaults.
	assert.Equal(t, DefaultWeights(), defaults)
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		t       Thresholds
		wantErr bool
	}{
		{name: "defaults", t: DefaultThresholds()},
		{name: "inverted", t: Thresholds{High: 0.2, Medium: 0.45, Low: 0.7}, wantErr: true},
		{name: "equal cut points", t: Thresholds{High: 0.5, Medium: 0.5, Low: 0.2}, wantErr: true},
		{name: "high above one", t: Thresholds{High: 1.2, Medium: 0.5, Low: 0.2}, wantErr: true},
		{name: "zero low", t: Thresholds{High: 0.7, Medium: 0.45, Low: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.t.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThresholdsClassify(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		final float64
		want  PriorityBucket
	}{
		{final: 0.75, want: BucketHigh},
		{final: 0.5, want: BucketMedium},
		{final: 0.3, want: BucketLow},
		{final: 0.1, want: BucketDeferred},
		// Exact cut points land in the higher bucket.
		{final: 0.7, want: BucketHigh},
		{final: 0.45, want: BucketMedium},
		{final: 0.2, want: BucketLow},
		{final: 0, want: BucketDeferred},
		{final: 1, want: BucketHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholds.Classify(tt.final), "final=%v", tt.final)
	}
}

func TestItemNormalize(t *testing.T) {
	item := Item{
		Title:        "  The Daily \n",
		Author:       " NYT ",
		Description:  "\tnews\t",
		Genre:        " News ",
		EpisodeCount: -5,
		DurationSec:  -60,
	}

	normalized := item.Normalize()

	assert.Equal(t, "The Daily", normalized.Title)
	assert.Equal(t, "NYT", normalized.Author)
	assert.Equal(t, "news", normalized.Description)
	assert.Equal(t, "News", normalized.Genre)
	assert.Zero(t, normalized.EpisodeCount)
	assert.Zero(t, normalized.DurationSec)

	// The receiver is untouched.
	assert.Equal(t, "  The Daily \n", item.Title)
}
