package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/scoring"
	"github.com/fortuna/courtside/internal/store"
)

func completedRecord(prediction, confidence string, correct sql.NullBool) *store.PredictionRecord {
	return &store.PredictionRecord{
		Prediction:           prediction,
		PredictionConfidence: confidence,
		GameCompleted:        true,
		PredictionCorrect:    correct,
	}
}

func TestGradePrediction(t *testing.T) {
	tests := []struct {
		name       string
		prediction string
		homeFinal  int
		awayFinal  int
		expected   sql.NullBool
	}{
		{name: "home pick, home wins", prediction: "home", homeFinal: 110, awayFinal: 100, expected: sql.NullBool{Bool: true, Valid: true}},
		{name: "home pick, away wins", prediction: "home", homeFinal: 98, awayFinal: 100, expected: sql.NullBool{Bool: false, Valid: true}},
		{name: "away pick, away wins", prediction: "away", homeFinal: 98, awayFinal: 100, expected: sql.NullBool{Bool: true, Valid: true}},
		{name: "neutral stays ungraded", prediction: "neutral", homeFinal: 110, awayFinal: 100, expected: sql.NullBool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GradePrediction(tt.prediction, tt.homeFinal, tt.awayFinal))
		})
	}
}

func TestCalculateAccuracy_NeutralExcluded(t *testing.T) {
	records := []*store.PredictionRecord{
		completedRecord("home", "high", sql.NullBool{Bool: true, Valid: true}),
		completedRecord("home", "high", sql.NullBool{Bool: false, Valid: true}),
		completedRecord("away", "medium", sql.NullBool{Bool: true, Valid: true}),
		completedRecord("neutral", "low", sql.NullBool{}),
	}

	stats := CalculateAccuracy(records)

	assert.Equal(t, 4, stats.CompletedGames)
	assert.Equal(t, 3, stats.EvaluatedGames)
	assert.Equal(t, 1, stats.NeutralPredictions)
	assert.Equal(t, 2, stats.CorrectPredictions)
	// 2/3, not 2/4: the neutral game is outside the denominator
	assert.Equal(t, 66.7, stats.OverallAccuracy)

	high := stats.ByConfidence["high"]
	assert.Equal(t, 2, high.Total)
	assert.Equal(t, 1, high.Correct)
	assert.Equal(t, 50.0, high.Accuracy)

	medium := stats.ByConfidence["medium"]
	assert.Equal(t, 1, medium.Total)
	assert.Equal(t, 100.0, medium.Accuracy)

	// The neutral game never lands in its confidence bucket
	low := stats.ByConfidence["low"]
	assert.Equal(t, 0, low.Total)
	assert.Equal(t, 0.0, low.Accuracy)
}

func TestCalculateAccuracy_Empty(t *testing.T) {
	stats := CalculateAccuracy(nil)

	assert.Equal(t, 0, stats.CompletedGames)
	assert.Equal(t, 0.0, stats.OverallAccuracy)
	require.Len(t, stats.ByConfidence, 3)
	for bucket, acc := range stats.ByConfidence {
		assert.Equal(t, 0, acc.Total, "bucket %s", bucket)
		assert.Equal(t, 0.0, acc.Accuracy, "bucket %s", bucket)
	}
}

func TestCalculateAccuracy_IgnoresIncomplete(t *testing.T) {
	records := []*store.PredictionRecord{
		{Prediction: "home", PredictionConfidence: "high", GameCompleted: false},
		completedRecord("away", "low", sql.NullBool{Bool: true, Valid: true}),
	}

	stats := CalculateAccuracy(records)

	assert.Equal(t, 1, stats.CompletedGames)
	assert.Equal(t, 1, stats.EvaluatedGames)
	assert.Equal(t, 100.0, stats.OverallAccuracy)
}

func TestBreakdownBlobRoundTrip(t *testing.T) {
	entries := []scoring.ScoreBreakdown{
		{VariableID: "closeGame", VariableName: "Close Game Yesterday", Points: 3, Triggered: true, Reason: "Last game: 110-108"},
		{VariableID: "favoriteLost", VariableName: "Favorite Lost", Points: 5, Triggered: false},
	}

	blob, err := marshalBreakdown(entries)
	require.NoError(t, err)
	assert.Contains(t, blob, `"version":1`)

	decoded, err := UnmarshalBreakdown(blob)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestMarshalBreakdown_EmptyIsArray(t *testing.T) {
	blob, err := marshalBreakdown(nil)
	require.NoError(t, err)
	assert.Contains(t, blob, `"entries":[]`)
}
