package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/ingest/espn"
	"github.com/fortuna/courtside/internal/ingest/odds"
)

// ProbeResult is the outcome of one upstream API check
type ProbeResult struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DiagnosticsReport bundles all probe results
type DiagnosticsReport struct {
	CheckedAt time.Time     `json:"checked_at"`
	Healthy   bool          `json:"healthy"`
	Probes    []ProbeResult `json:"probes"`
}

// DiagnosticsService probes the upstream data sources with real requests
type DiagnosticsService struct {
	espnClient *espn.Client
	oddsClient *odds.Client
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(espnClient *espn.Client, oddsClient *odds.Client) *DiagnosticsService {
	return &DiagnosticsService{
		espnClient: espnClient,
		oddsClient: oddsClient,
	}
}

// TestESPN fetches today's scoreboard and reports what came back
func (s *DiagnosticsService) TestESPN(ctx context.Context) ProbeResult {
	result := ProbeResult{Source: "espn"}

	raw, err := s.espnClient.FetchScoreboard(ctx, time.Time{})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	scoreboard, err := espn.ParseScoreboard(raw, time.Now())
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("%d games on today's scoreboard", len(scoreboard.Games))
	return result
}

// TestOdds fetches current odds and reports event count plus quota.
// A missing API key is reported, not treated as a failure surprise.
func (s *DiagnosticsService) TestOdds(ctx context.Context) ProbeResult {
	result := ProbeResult{Source: "odds"}

	if s.oddsClient == nil || !s.oddsClient.Configured() {
		result.Detail = "no API key configured"
		return result
	}

	events, quota, err := s.oddsClient.FetchOdds(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("%d events", len(events))
	if quota.Remaining != "" {
		result.Detail += fmt.Sprintf(", %s requests remaining", quota.Remaining)
	}
	return result
}

// TestAll runs every probe. Healthy requires ESPN; odds are optional.
func (s *DiagnosticsService) TestAll(ctx context.Context) DiagnosticsReport {
	espnResult := s.TestESPN(ctx)
	oddsResult := s.TestOdds(ctx)

	return DiagnosticsReport{
		CheckedAt: time.Now(),
		Healthy:   espnResult.OK,
		Probes:    []ProbeResult{espnResult, oddsResult},
	}
}
