package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

const predictionColumns = `
	id, game_date, game_id, home_team_id, away_team_id,
	home_team_name, away_team_name, home_research_score, away_research_score,
	score_differential, prediction, prediction_confidence,
	home_final_score, away_final_score, game_completed, prediction_correct,
	home_analysis_breakdown, away_analysis_breakdown, created_at, updated_at`

// PredictionRepository handles research_score_history data access
type PredictionRepository struct {
	db *store.Database
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *store.Database) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Upsert inserts or updates the prediction for a game. Re-analyzing the
// same game overwrites the scores and breakdowns but leaves any recorded
// final score alone.
func (r *PredictionRepository) Upsert(ctx context.Context, rec *store.PredictionRecord) error {
	query := `
		INSERT INTO research_score_history (game_date, game_id, home_team_id, away_team_id,
			home_team_name, away_team_name, home_research_score, away_research_score,
			score_differential, prediction, prediction_confidence,
			home_analysis_breakdown, away_analysis_breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_team_name = EXCLUDED.home_team_name,
			away_team_name = EXCLUDED.away_team_name,
			home_research_score = EXCLUDED.home_research_score,
			away_research_score = EXCLUDED.away_research_score,
			score_differential = EXCLUDED.score_differential,
			prediction = EXCLUDED.prediction,
			prediction_confidence = EXCLUDED.prediction_confidence,
			home_analysis_breakdown = EXCLUDED.home_analysis_breakdown,
			away_analysis_breakdown = EXCLUDED.away_analysis_breakdown,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		rec.GameDate, rec.GameID, rec.HomeTeamID, rec.AwayTeamID,
		rec.HomeTeamName, rec.AwayTeamName, rec.HomeResearchScore, rec.AwayResearchScore,
		rec.ScoreDifferential, rec.Prediction, rec.PredictionConfidence,
		rec.HomeAnalysisBreakdown, rec.AwayAnalysisBreakdown,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("upserting prediction: %w", err)
	}

	return nil
}

// RecordFinalScore stores the final score for a game and grades the stored
// prediction. predictionCorrect stays NULL when the prediction was neutral.
func (r *PredictionRepository) RecordFinalScore(ctx context.Context, gameID string, homeFinal, awayFinal int, predictionCorrect sql.NullBool) error {
	query := `
		UPDATE research_score_history
		SET home_final_score = $2,
			away_final_score = $3,
			game_completed = TRUE,
			prediction_correct = $4,
			updated_at = NOW()
		WHERE game_id = $1
	`

	result, err := r.db.DB().ExecContext(ctx, query, gameID, homeFinal, awayFinal, predictionCorrect)
	if err != nil {
		return fmt.Errorf("recording final score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no prediction found for game %s", gameID)
	}

	return nil
}

// GetByGameID finds the prediction for a single game
func (r *PredictionRepository) GetByGameID(ctx context.Context, gameID string) (*store.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM research_score_history
		WHERE game_id = $1
	`

	rec := &store.PredictionRecord{}
	err := scanPrediction(r.db.DB().QueryRowContext(ctx, query, gameID), rec)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("prediction not found: %s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying prediction: %w", err)
	}

	return rec, nil
}

// GetHistory returns the most recent predictions, newest game date first.
func (r *PredictionRepository) GetHistory(ctx context.Context, limit int) ([]*store.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM research_score_history
		ORDER BY game_date DESC, game_id
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return r.scanPredictions(rows)
}

// GetByDateRange returns predictions with game_date inside [start, end].
func (r *PredictionRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*store.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM research_score_history
		WHERE game_date >= $1 AND game_date <= $2
		ORDER BY game_date DESC, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying history range: %w", err)
	}
	defer rows.Close()

	return r.scanPredictions(rows)
}

// GetCompleted returns every prediction whose game has a recorded final
// score. Used by the accuracy calculation.
func (r *PredictionRepository) GetCompleted(ctx context.Context) ([]*store.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM research_score_history
		WHERE game_completed = TRUE
		ORDER BY game_date DESC, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying completed predictions: %w", err)
	}
	defer rows.Close()

	return r.scanPredictions(rows)
}

// Count returns the total number of stored predictions
func (r *PredictionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM research_score_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting predictions: %w", err)
	}
	return count, nil
}

// GetPendingResults returns predictions for games that started on or before
// the given date but have no final score yet. The reconciler polls these.
func (r *PredictionRepository) GetPendingResults(ctx context.Context, asOf time.Time) ([]*store.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM research_score_history
		WHERE game_completed = FALSE AND game_date <= $1
		ORDER BY game_date, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("querying pending results: %w", err)
	}
	defer rows.Close()

	return r.scanPredictions(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrediction(row rowScanner, rec *store.PredictionRecord) error {
	return row.Scan(
		&rec.ID, &rec.GameDate, &rec.GameID, &rec.HomeTeamID, &rec.AwayTeamID,
		&rec.HomeTeamName, &rec.AwayTeamName, &rec.HomeResearchScore, &rec.AwayResearchScore,
		&rec.ScoreDifferential, &rec.Prediction, &rec.PredictionConfidence,
		&rec.HomeFinalScore, &rec.AwayFinalScore, &rec.GameCompleted, &rec.PredictionCorrect,
		&rec.HomeAnalysisBreakdown, &rec.AwayAnalysisBreakdown, &rec.CreatedAt, &rec.UpdatedAt,
	)
}

// scanPredictions scans multiple prediction rows
func (r *PredictionRepository) scanPredictions(rows *sql.Rows) ([]*store.PredictionRecord, error) {
	var records []*store.PredictionRecord
	for rows.Next() {
		rec := &store.PredictionRecord{}
		if err := scanPrediction(rows, rec); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
