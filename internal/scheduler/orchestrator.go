package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/ingest"
)

// SlateRefresher rebuilds and serves the current analyzed slate
type SlateRefresher interface {
	Refresh(ctx context.Context) (*ingest.Slate, error)
	Current() *ingest.Slate
}

// ResultReconciler grades pending predictions against final scores
type ResultReconciler interface {
	ReconcilePending(ctx context.Context) (int, error)
}

// SlateBroadcaster pushes slate updates to connected clients
type SlateBroadcaster interface {
	BroadcastJSON(event string, payload interface{}) error
}

// Orchestrator manages the daily analysis run and result polling
type Orchestrator struct {
	slates      SlateRefresher
	reconciler  ResultReconciler
	broadcaster SlateBroadcaster
	config      *Config
	cancel      context.CancelFunc

	// Task coordination
	resultsCtx    context.Context
	resultsCancel context.CancelFunc
	dailyCtx      context.Context
	dailyCancel   context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	DailyAnalysisHour    int           // Default: 9 (9 AM, after overnight finals settle)
	ResultPollInterval   time.Duration // Default: 10m
	EnableDailyAnalysis  bool          // Default: true
	EnableResultPolling  bool          // Default: true
	MaxRetries           int           // Default: 3
	RetryDelay           time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyAnalysisHour:   9,
		ResultPollInterval:  10 * time.Minute,
		EnableDailyAnalysis: true,
		EnableResultPolling: true,
		MaxRetries:          3,
		RetryDelay:          5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator. broadcaster may
// be nil.
func NewOrchestrator(slates SlateRefresher, reconciler ResultReconciler, broadcaster SlateBroadcaster, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		slates:      slates,
		reconciler:  reconciler,
		broadcaster: broadcaster,
		config:      config,
	}
}

// Start begins all scheduled tasks and blocks until the context ends
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Courtside Scheduler Orchestrator     ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Daily analysis: %v (at %02d:00)", o.config.EnableDailyAnalysis, o.config.DailyAnalysisHour)
	log.Printf("Result polling: %v (interval: %v)", o.config.EnableResultPolling, o.config.ResultPollInterval)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	// Start result polling
	if o.config.EnableResultPolling {
		o.resultsCtx, o.resultsCancel = context.WithCancel(ctx)
		go o.runResultPolling(o.resultsCtx)
	}

	// Start daily analysis scheduler
	if o.config.EnableDailyAnalysis {
		o.dailyCtx, o.dailyCancel = context.WithCancel(ctx)
		go o.runDailyAnalysis(o.dailyCtx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// runResultPolling periodically grades pending predictions
func (o *Orchestrator) runResultPolling(ctx context.Context) {
	log.Printf("→ Result polling started (interval: %v)", o.config.ResultPollInterval)
	log.Println("  Source priority: ESPN (authoritative) → Google (fallback)")

	ticker := time.NewTicker(o.config.ResultPollInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	// Run immediately on start
	o.pollResultsWithRetry(ctx, &consecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Result polling stopped")
			return
		case <-ticker.C:
			o.pollResultsWithRetry(ctx, &consecutiveErrors)
		}
	}
}

const (
	maxConsecutiveErrors = 5
	backoffDelay         = 20 * time.Second
)

// pollResultsWithRetry runs one reconciliation pass with retry logic
func (o *Orchestrator) pollResultsWithRetry(ctx context.Context, consecutiveErrors *int) {
	var graded int
	var err error

	// Retry loop
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		graded, err = o.reconciler.ReconcilePending(ctx)

		if err == nil {
			*consecutiveErrors = 0 // Reset on success
			break
		}

		log.Printf("  ⚠️  Reconcile attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			log.Printf("  Retrying in %v...", o.config.RetryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
				// Continue to next attempt
			}
		}
	}

	// All retries exhausted
	if err != nil {
		*consecutiveErrors++
		log.Printf("  ❌ All %d retry attempts failed. Consecutive errors: %d/%d",
			o.config.MaxRetries, *consecutiveErrors, maxConsecutiveErrors)

		// If too many consecutive errors, back off before the next tick
		if *consecutiveErrors >= maxConsecutiveErrors {
			log.Printf("  ⚠️  High error rate detected. Backing off...")
			select {
			case <-ctx.Done():
			case <-time.After(backoffDelay):
			}
		}
		return
	}

	if graded > 0 && o.broadcaster != nil {
		if err := o.broadcaster.BroadcastJSON("results_updated", map[string]int{"games_graded": graded}); err != nil {
			log.Printf("  ⚠️  Failed to broadcast result update: %v", err)
		}
	}
}

// runDailyAnalysis rebuilds the slate once a day
func (o *Orchestrator) runDailyAnalysis(ctx context.Context) {
	log.Printf("→ Daily analysis scheduler started (runs at %02d:00 daily)", o.config.DailyAnalysisHour)

	for {
		// Calculate time until next run
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyAnalysisHour, 0, 0, 0, now.Location())

		// If we've passed today's run time, schedule for tomorrow
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next daily analysis: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Daily analysis scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println()
			log.Println("═══ Daily Analysis Starting ═══")
			o.runDailyAnalysisTask(ctx)
			log.Println("═══ Daily Analysis Complete ═══")
			log.Println()
		}
	}
}

// runDailyAnalysisTask reconciles yesterday's results, then builds and
// broadcasts today's slate
func (o *Orchestrator) runDailyAnalysisTask(ctx context.Context) {
	startTime := time.Now()

	// Grade overnight finals first so accuracy stats are current
	if _, err := o.reconciler.ReconcilePending(ctx); err != nil {
		log.Printf("⚠️  Pre-analysis reconciliation failed: %v", err)
	}

	slate, err := o.slates.Refresh(ctx)
	if err != nil {
		log.Printf("❌ Daily analysis failed: %v", err)
		return
	}

	if o.broadcaster != nil {
		if err := o.broadcaster.BroadcastJSON("slate_updated", slate); err != nil {
			log.Printf("⚠️  Failed to broadcast slate: %v", err)
		}
	}

	duration := time.Since(startTime)
	log.Printf("✓ Daily analysis complete in %v (%d games)", duration.Round(time.Second), len(slate.Games))
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	log.Println("Stopping scheduler orchestrator...")

	// Cancel result polling
	if o.resultsCancel != nil {
		o.resultsCancel()
	}

	// Cancel daily analysis
	if o.dailyCancel != nil {
		o.dailyCancel()
	}

	// Cancel main orchestrator
	if o.cancel != nil {
		o.cancel()
	}

	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status, including the held slate
// when one has been built.
func (o *Orchestrator) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"daily_analysis_enabled": o.config.EnableDailyAnalysis,
		"daily_analysis_hour":    o.config.DailyAnalysisHour,
		"result_polling_enabled": o.config.EnableResultPolling,
		"result_poll_interval":   o.config.ResultPollInterval.String(),
	}

	if slate := o.slates.Current(); slate != nil {
		status["current_slate_date"] = slate.Date.Format("2006-01-02")
		status["current_slate_games"] = len(slate.Games)
	}

	return status
}
