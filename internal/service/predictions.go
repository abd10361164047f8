package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/fortuna/courtside/internal/ingest"
	"github.com/fortuna/courtside/internal/scoring"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// Breakdown blobs are versioned so stored history survives future rule
// catalog changes
const breakdownVersion = 1

type breakdownBlob struct {
	Version int                      `json:"version"`
	Entries []scoring.ScoreBreakdown `json:"entries"`
}

// PredictionService handles prediction persistence and accuracy math
type PredictionService struct {
	repo *repository.PredictionRepository
}

// NewPredictionService creates a new prediction service
func NewPredictionService(db *store.Database) *PredictionService {
	return &PredictionService{
		repo: repository.NewPredictionRepository(db),
	}
}

// LogSlate persists every analyzed game on a slate. A failed write is
// logged and skipped; one bad row never blocks the rest of the slate.
func (s *PredictionService) LogSlate(ctx context.Context, slate *ingest.Slate) int {
	logged := 0
	for _, game := range slate.Games {
		if err := s.LogPrediction(ctx, slate.Date, game); err != nil {
			log.Printf("⚠️  Failed to log prediction for game %s: %v", game.Game.ID, err)
			continue
		}
		logged++
	}
	return logged
}

// LogPrediction persists one analyzed game as a prediction record
func (s *PredictionService) LogPrediction(ctx context.Context, gameDate time.Time, game ingest.AnalyzedGame) error {
	homeBlob, err := marshalBreakdown(game.Analysis.HomeAnalysis.Breakdown)
	if err != nil {
		return fmt.Errorf("marshaling home breakdown: %w", err)
	}
	awayBlob, err := marshalBreakdown(game.Analysis.AwayAnalysis.Breakdown)
	if err != nil {
		return fmt.Errorf("marshaling away breakdown: %w", err)
	}

	rec := &store.PredictionRecord{
		GameDate:              gameDate,
		GameID:                game.Game.ID,
		HomeTeamID:            game.Game.Home.ID,
		AwayTeamID:            game.Game.Away.ID,
		HomeTeamName:          game.HomeSnapshot.DisplayName(),
		AwayTeamName:          game.AwaySnapshot.DisplayName(),
		HomeResearchScore:     game.Analysis.HomeAnalysis.TotalScore,
		AwayResearchScore:     game.Analysis.AwayAnalysis.TotalScore,
		ScoreDifferential:     game.Analysis.ScoreDifferential,
		Prediction:            game.Analysis.Recommendation.Team,
		PredictionConfidence:  string(game.Analysis.Recommendation.Confidence),
		HomeAnalysisBreakdown: sql.NullString{String: homeBlob, Valid: true},
		AwayAnalysisBreakdown: sql.NullString{String: awayBlob, Valid: true},
	}

	return s.repo.Upsert(ctx, rec)
}

// RecordFinalScore grades the stored prediction against the final score.
// The home side wins only on a strictly greater score; neutral
// predictions are never graded.
func (s *PredictionService) RecordFinalScore(ctx context.Context, gameID string, homeFinal, awayFinal int) (*store.PredictionRecord, error) {
	rec, err := s.repo.GetByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	correct := GradePrediction(rec.Prediction, homeFinal, awayFinal)
	if err := s.repo.RecordFinalScore(ctx, gameID, homeFinal, awayFinal, correct); err != nil {
		return nil, err
	}

	rec.HomeFinalScore = sql.NullInt32{Int32: int32(homeFinal), Valid: true}
	rec.AwayFinalScore = sql.NullInt32{Int32: int32(awayFinal), Valid: true}
	rec.GameCompleted = true
	rec.PredictionCorrect = correct

	return rec, nil
}

// GradePrediction maps a final score onto a stored prediction. Returns an
// invalid NullBool for neutral predictions, which stay ungraded.
func GradePrediction(prediction string, homeFinal, awayFinal int) sql.NullBool {
	if prediction == scoring.SideNeutral {
		return sql.NullBool{}
	}

	actualWinner := scoring.SideAway
	if homeFinal > awayFinal {
		actualWinner = scoring.SideHome
	}

	return sql.NullBool{Bool: prediction == actualWinner, Valid: true}
}

// GetHistory returns the most recent predictions
func (s *PredictionService) GetHistory(ctx context.Context, limit int) ([]*store.PredictionRecord, error) {
	return s.repo.GetHistory(ctx, limit)
}

// GetByDateRange returns predictions inside a date window
func (s *PredictionService) GetByDateRange(ctx context.Context, start, end time.Time) ([]*store.PredictionRecord, error) {
	return s.repo.GetByDateRange(ctx, start, end)
}

// GetByGameID returns the prediction for one game
func (s *PredictionService) GetByGameID(ctx context.Context, gameID string) (*store.PredictionRecord, error) {
	return s.repo.GetByGameID(ctx, gameID)
}

// GetPendingResults returns ungraded predictions up to a date
func (s *PredictionService) GetPendingResults(ctx context.Context, asOf time.Time) ([]*store.PredictionRecord, error) {
	return s.repo.GetPendingResults(ctx, asOf)
}

// ComputeAccuracy summarizes prediction performance over all stored
// history.
func (s *PredictionService) ComputeAccuracy(ctx context.Context) (*store.AccuracyStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.GetCompleted(ctx)
	if err != nil {
		return nil, err
	}

	stats := CalculateAccuracy(completed)
	stats.TotalPredictions = total
	return &stats, nil
}

// CalculateAccuracy computes accuracy over completed predictions.
// Neutral predictions count as completed but are excluded from both the
// numerator and denominator, overall and per confidence bucket.
// Accuracy values are percentages rounded to one decimal; empty buckets
// report 0.
func CalculateAccuracy(records []*store.PredictionRecord) store.AccuracyStats {
	stats := store.AccuracyStats{
		ByConfidence: map[string]store.ConfidenceAccuracy{
			string(scoring.ConfidenceHigh):   {},
			string(scoring.ConfidenceMedium): {},
			string(scoring.ConfidenceLow):    {},
		},
	}

	bucketCorrect := map[string]int{}
	bucketTotal := map[string]int{}

	for _, rec := range records {
		if !rec.GameCompleted {
			continue
		}
		stats.CompletedGames++

		if !rec.PredictionCorrect.Valid {
			stats.NeutralPredictions++
			continue
		}

		stats.EvaluatedGames++
		bucketTotal[rec.PredictionConfidence]++
		if rec.PredictionCorrect.Bool {
			stats.CorrectPredictions++
			bucketCorrect[rec.PredictionConfidence]++
		}
	}

	stats.OverallAccuracy = accuracyPercent(stats.CorrectPredictions, stats.EvaluatedGames)
	for bucket := range stats.ByConfidence {
		stats.ByConfidence[bucket] = store.ConfidenceAccuracy{
			Total:    bucketTotal[bucket],
			Correct:  bucketCorrect[bucket],
			Accuracy: accuracyPercent(bucketCorrect[bucket], bucketTotal[bucket]),
		}
	}

	return stats
}

func accuracyPercent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

func marshalBreakdown(entries []scoring.ScoreBreakdown) (string, error) {
	if entries == nil {
		entries = []scoring.ScoreBreakdown{}
	}
	data, err := json.Marshal(breakdownBlob{Version: breakdownVersion, Entries: entries})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalBreakdown decodes a stored breakdown blob
func UnmarshalBreakdown(blob string) ([]scoring.ScoreBreakdown, error) {
	var decoded breakdownBlob
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		return nil, fmt.Errorf("decoding breakdown blob: %w", err)
	}
	return decoded.Entries, nil
}
