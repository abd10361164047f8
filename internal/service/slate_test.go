package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/ingest"
)

// recordingBuilder tracks which build path the service takes
type recordingBuilder struct {
	buildCalls   int
	rebuildCalls int
}

func (b *recordingBuilder) emptySlate(date time.Time) *ingest.Slate {
	return &ingest.Slate{Date: date, GeneratedAt: time.Now(), Games: []ingest.AnalyzedGame{}}
}

func (b *recordingBuilder) BuildSlate(ctx context.Context, date time.Time) (*ingest.Slate, error) {
	b.buildCalls++
	return b.emptySlate(date), nil
}

func (b *recordingBuilder) RebuildSlate(ctx context.Context, date time.Time) (*ingest.Slate, error) {
	b.rebuildCalls++
	return b.emptySlate(date), nil
}

func TestSlateService_RefreshBypassesCache(t *testing.T) {
	builder := &recordingBuilder{}
	slates := NewSlateService(builder, &PredictionService{}, nil)

	_, err := slates.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, builder.buildCalls)
	assert.Equal(t, 1, builder.rebuildCalls, "refresh must take the cache-bypassing path")
}

func TestSlateService_TodayUsesCachedBuildThenHeldSlate(t *testing.T) {
	builder := &recordingBuilder{}
	slates := NewSlateService(builder, &PredictionService{}, nil)

	first, err := slates.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, builder.buildCalls)
	assert.Equal(t, 0, builder.rebuildCalls)

	// Same-day repeat serves the held slate without another build
	second, err := slates.Today(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builder.buildCalls)

	assert.Same(t, first, slates.Current())
}
