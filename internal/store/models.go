package store

import (
	"database/sql"
	"time"
)

// PredictionRecord is one row of research_score_history: the persisted
// analysis for a single game, later reconciled with the final score.
// Final-score and correctness columns stay NULL until the game completes;
// PredictionCorrect also stays NULL for neutral predictions, which are
// excluded from accuracy math entirely.
type PredictionRecord struct {
	ID                    int            `json:"id" db:"id"`
	GameDate              time.Time      `json:"game_date" db:"game_date"`
	GameID                string         `json:"game_id" db:"game_id"`
	HomeTeamID            string         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID            string         `json:"away_team_id" db:"away_team_id"`
	HomeTeamName          string         `json:"home_team_name" db:"home_team_name"`
	AwayTeamName          string         `json:"away_team_name" db:"away_team_name"`
	HomeResearchScore     int            `json:"home_research_score" db:"home_research_score"`
	AwayResearchScore     int            `json:"away_research_score" db:"away_research_score"`
	ScoreDifferential     int            `json:"score_differential" db:"score_differential"`
	Prediction            string         `json:"prediction" db:"prediction"`
	PredictionConfidence  string         `json:"prediction_confidence" db:"prediction_confidence"`
	HomeFinalScore        sql.NullInt32  `json:"home_final_score,omitempty" db:"home_final_score"`
	AwayFinalScore        sql.NullInt32  `json:"away_final_score,omitempty" db:"away_final_score"`
	GameCompleted         bool           `json:"game_completed" db:"game_completed"`
	PredictionCorrect     sql.NullBool   `json:"prediction_correct,omitempty" db:"prediction_correct"`
	HomeAnalysisBreakdown sql.NullString `json:"home_analysis_breakdown,omitempty" db:"home_analysis_breakdown"`
	AwayAnalysisBreakdown sql.NullString `json:"away_analysis_breakdown,omitempty" db:"away_analysis_breakdown"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
}

// ConfidenceAccuracy is the accuracy split for one confidence bucket.
type ConfidenceAccuracy struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// AccuracyStats summarizes prediction performance over completed games.
// Neutral predictions are counted separately and never enter the
// correct/accuracy math.
type AccuracyStats struct {
	TotalPredictions   int                           `json:"total_predictions"`
	CompletedGames     int                           `json:"completed_games"`
	EvaluatedGames     int                           `json:"evaluated_games"`
	NeutralPredictions int                           `json:"neutral_predictions"`
	CorrectPredictions int                           `json:"correct_predictions"`
	OverallAccuracy    float64                       `json:"overall_accuracy"`
	ByConfidence       map[string]ConfidenceAccuracy `json:"by_confidence"`
}
