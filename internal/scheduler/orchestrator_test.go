package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/ingest"
)

type stubSlates struct {
	current *ingest.Slate
}

func (s *stubSlates) Refresh(ctx context.Context) (*ingest.Slate, error) {
	return s.current, nil
}

func (s *stubSlates) Current() *ingest.Slate {
	return s.current
}

// scriptedReconciler fails a set number of times before succeeding
type scriptedReconciler struct {
	failures int
	calls    int
	graded   int
}

func (r *scriptedReconciler) ReconcilePending(ctx context.Context) (int, error) {
	r.calls++
	if r.calls <= r.failures {
		return 0, errors.New("upstream unavailable")
	}
	return r.graded, nil
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) BroadcastJSON(event string, payload interface{}) error {
	b.events = append(b.events, event)
	return nil
}

func TestPollResultsWithRetry_RecoversAndBroadcasts(t *testing.T) {
	reconciler := &scriptedReconciler{failures: 1, graded: 3}
	broadcaster := &recordingBroadcaster{}

	config := DefaultConfig()
	config.RetryDelay = time.Millisecond

	o := NewOrchestrator(&stubSlates{}, reconciler, broadcaster, config)

	consecutiveErrors := 2
	o.pollResultsWithRetry(context.Background(), &consecutiveErrors)

	assert.Equal(t, 2, reconciler.calls, "one failure then one successful retry")
	assert.Equal(t, 0, consecutiveErrors, "success resets the error run")
	assert.Equal(t, []string{"results_updated"}, broadcaster.events)
}

func TestPollResultsWithRetry_BackoffHonorsCancellation(t *testing.T) {
	reconciler := &scriptedReconciler{failures: 100}

	config := DefaultConfig()
	config.MaxRetries = 1

	o := NewOrchestrator(&stubSlates{}, reconciler, nil, config)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// This failure pushes the run to the backoff threshold; a canceled
	// context must end the backoff immediately instead of sleeping it out.
	consecutiveErrors := maxConsecutiveErrors - 1
	start := time.Now()
	o.pollResultsWithRetry(ctx, &consecutiveErrors)

	require.Equal(t, maxConsecutiveErrors, consecutiveErrors)
	assert.Less(t, time.Since(start), backoffDelay/2)
}

func TestGetStatus_IncludesHeldSlate(t *testing.T) {
	slate := &ingest.Slate{
		Date:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Games: make([]ingest.AnalyzedGame, 4),
	}

	o := NewOrchestrator(&stubSlates{current: slate}, &scriptedReconciler{}, nil, nil)

	status := o.GetStatus()
	assert.Equal(t, "2026-01-15", status["current_slate_date"])
	assert.Equal(t, 4, status["current_slate_games"])
	assert.Equal(t, true, status["daily_analysis_enabled"])
}

func TestGetStatus_NoSlateYet(t *testing.T) {
	o := NewOrchestrator(&stubSlates{}, &scriptedReconciler{}, nil, nil)

	status := o.GetStatus()
	_, hasDate := status["current_slate_date"]
	assert.False(t, hasDate)
	assert.Equal(t, DefaultConfig().ResultPollInterval.String(), status["result_poll_interval"])
}
