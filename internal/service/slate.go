package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/courtside/internal/ingest"
	"github.com/fortuna/courtside/internal/publisher"
)

// SlateBuilder assembles the analyzed slate for a date. RebuildSlate
// bypasses cached upstream responses.
type SlateBuilder interface {
	BuildSlate(ctx context.Context, date time.Time) (*ingest.Slate, error)
	RebuildSlate(ctx context.Context, date time.Time) (*ingest.Slate, error)
}

// SlateService owns the current analyzed slate: building it, persisting
// predictions, publishing to the stream, and serving reads.
type SlateService struct {
	ingester    SlateBuilder
	predictions *PredictionService
	publisher   *publisher.RedisStreamPublisher

	mu      sync.RWMutex
	current *ingest.Slate
}

// NewSlateService creates a new slate service. publisher may be nil.
func NewSlateService(ingester SlateBuilder, predictions *PredictionService, pub *publisher.RedisStreamPublisher) *SlateService {
	return &SlateService{
		ingester:    ingester,
		predictions: predictions,
		publisher:   pub,
	}
}

// Today returns the current slate, building it on first access or when
// the held slate is from a previous day. Builds here may serve cached
// upstream responses; Refresh is the cache-bypassing path.
func (s *SlateService) Today(ctx context.Context) (*ingest.Slate, error) {
	date := TodayEST()

	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil && sameDay(current.Date, date) {
		return current, nil
	}

	return s.rebuild(ctx, false)
}

// Refresh force-rebuilds today's slate with fresh upstream data,
// persists every prediction, and publishes the result.
func (s *SlateService) Refresh(ctx context.Context) (*ingest.Slate, error) {
	return s.rebuild(ctx, true)
}

func (s *SlateService) rebuild(ctx context.Context, bypassCache bool) (*ingest.Slate, error) {
	date := TodayEST()

	var slate *ingest.Slate
	var err error
	if bypassCache {
		slate, err = s.ingester.RebuildSlate(ctx, date)
	} else {
		slate, err = s.ingester.BuildSlate(ctx, date)
	}
	if err != nil {
		return nil, fmt.Errorf("building slate: %w", err)
	}

	logged := s.predictions.LogSlate(ctx, slate)
	log.Printf("✓ Logged %d of %d predictions", logged, len(slate.Games))

	if s.publisher != nil {
		if err := s.publisher.PublishSlateAnalysis(ctx, slate); err != nil {
			log.Printf("⚠️  Failed to publish slate: %v", err)
		}
	}

	s.mu.Lock()
	s.current = slate
	s.mu.Unlock()

	return slate, nil
}

// Current returns the held slate without triggering a build. Nil when no
// slate has been built yet.
func (s *SlateService) Current() *ingest.Slate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// TodayEST returns the start of the current day in Eastern Time, the
// NBA's scheduling timezone.
func TodayEST() time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
