package scoring

import "fmt"

// Recommendation sides
const (
	SideHome    = "home"
	SideAway    = "away"
	SideNeutral = "neutral"
)

// Differential thresholds for recommendation strength
const (
	strongAdvantage   = 10
	moderateAdvantage = 5
)

// Recommendation is the betting lean derived from the score differential.
type Recommendation struct {
	Team       string     `json:"team"` // "home", "away", or "neutral"
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
}

// GameAnalysis holds both teams' research scores and the resulting lean.
// ScoreDifferential is signed; positive favors the home side.
type GameAnalysis struct {
	GameID            string         `json:"game_id"`
	HomeAnalysis      TeamAnalysis   `json:"home_analysis"`
	AwayAnalysis      TeamAnalysis   `json:"away_analysis"`
	ScoreDifferential int            `json:"score_differential"`
	Recommendation    Recommendation `json:"recommendation"`
}

// Analyze scores both sides of a game and derives a recommendation.
// The opponent back-to-back flags are swapped between the two calls: each
// team is scored against the other's fatigue, not its own.
//
// Fully deterministic; a zero differential falls into the neutral branch.
func Analyze(gameID string, homeTeam, awayTeam TeamSnapshot, homeBackToBack, awayBackToBack bool) GameAnalysis {
	homeAnalysis := Score(homeTeam, true, awayTeam, homeBackToBack, awayBackToBack)
	awayAnalysis := Score(awayTeam, false, homeTeam, awayBackToBack, homeBackToBack)

	differential := homeAnalysis.TotalScore - awayAnalysis.TotalScore

	rec := Recommendation{Team: SideNeutral, Confidence: ConfidenceLow}
	switch {
	case absInt(differential) >= strongAdvantage:
		rec.Confidence = ConfidenceHigh
		rec.Team = favoredSide(differential)
		rec.Reasoning = fmt.Sprintf(
			"Strong %d-point advantage in Research Score suggests %s has significantly better betting value.",
			absInt(differential), favoredName(rec.Team, homeTeam, awayTeam))
	case absInt(differential) >= moderateAdvantage:
		rec.Confidence = ConfidenceMedium
		rec.Team = favoredSide(differential)
		rec.Reasoning = fmt.Sprintf(
			"Moderate %d-point advantage suggests leaning toward %s.",
			absInt(differential), favoredName(rec.Team, homeTeam, awayTeam))
	default:
		rec.Reasoning = fmt.Sprintf(
			"Research Scores are close (%d-point difference). This game doesn't present a clear betting edge.",
			absInt(differential))
	}

	return GameAnalysis{
		GameID:            gameID,
		HomeAnalysis:      homeAnalysis,
		AwayAnalysis:      awayAnalysis,
		ScoreDifferential: differential,
		Recommendation:    rec,
	}
}

func favoredSide(differential int) string {
	if differential > 0 {
		return SideHome
	}
	return SideAway
}

func favoredName(side string, homeTeam, awayTeam TeamSnapshot) string {
	if side == SideHome {
		return homeTeam.DisplayName()
	}
	return awayTeam.DisplayName()
}
