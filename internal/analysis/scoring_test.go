package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, models.ConfidenceHigh},
		{0.8, models.ConfidenceHigh},
		{0.799999, models.ConfidenceMedium},
		{0.6, models.ConfidenceMedium},
		{0.599999, models.ConfidenceLow},
		{0.4, models.ConfidenceLow}, // exactly at the floor is retained
		{0.399999, ""},
		{0.0, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLabel(tt.score), "score %v", tt.score)
	}
}

func scoringBase(t *testing.T, weights map[string]int) *Base {
	t.Helper()
	cfg := &models.AnalysisConfig{
		Activities: map[string]models.ActivityConfig{
			"golf": {Weights: weights, GapToleranceMinutes: 10},
		},
	}
	b, err := NewBase("golf", cfg, nil)
	require.NoError(t, err)
	return b
}

func TestScoreWeightedSum(t *testing.T) {
	b := scoringBase(t, map[string]int{"a": 40, "b": 35, "c": 25})

	tests := []struct {
		name    string
		factors []Factor
		want    float64
	}{
		{"all full", []Factor{{"a", 1}, {"b", 1}, {"c", 1}}, 1.0},
		{"all zero", []Factor{{"a", 0}, {"b", 0}, {"c", 0}}, 0.0},
		{"partial", []Factor{{"a", 1}, {"b", 0.5}, {"c", 0}}, 0.575},
		{"missing factor contributes nothing", []Factor{{"a", 1}}, 0.4},
		{"unknown factor ignored", []Factor{{"a", 1}, {"z", 1}}, 0.4},
		{"values clamped", []Factor{{"a", 2.5}, {"b", -1}}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, b.Score(tt.factors), 1e-9)
		})
	}
}

func TestNewBaseUnknownActivity(t *testing.T) {
	cfg := &models.AnalysisConfig{Activities: map[string]models.ActivityConfig{}}
	_, err := NewBase("golf", cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownActivity)
}

func TestRangeScore(t *testing.T) {
	r := models.Range{Min: 90, Max: 360}

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside", 180, 1},
		{"min boundary", 90, 1},
		{"max boundary", 360, 1},
		{"slightly under", 63, 0.9},   // 27 below over a 270 span
		{"slightly over", 387, 0.9},   // 27 above
		{"half span under", -45, 0.5},
		{"full span over", 630, 0},
		{"way out", 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RangeScore(tt.v, r), 1e-9)
		})
	}
}

func TestRangeScoreDegenerateSpan(t *testing.T) {
	r := models.Range{Min: 5, Max: 5}
	assert.Equal(t, 1.0, RangeScore(5, r))
	assert.Equal(t, 0.0, RangeScore(6, r))
}

func TestBoolScore(t *testing.T) {
	assert.Equal(t, 1.0, BoolScore(true))
	assert.Equal(t, 0.0, BoolScore(false))
}
