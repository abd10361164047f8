package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected Confidence
	}{
		{score: 15, expected: ConfidenceHigh},
		{score: 14, expected: ConfidenceMedium},
		{score: 10, expected: ConfidenceMedium},
		{score: 9, expected: ConfidenceLow},
		{score: 0, expected: ConfidenceLow},
		{score: -12, expected: ConfidenceLow},
		{score: 42, expected: ConfidenceHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.score), "score %d", tt.score)
	}
}
