package scoring

import "fmt"

// Result markers used for streaks and game outcomes
const (
	ResultWin  = "W"
	ResultLoss = "L"
)

// Record is a win-loss split (season, home, or road).
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Streak is the team's current run of identical results.
type Streak struct {
	Type  string `json:"type"` // "W" or "L"
	Count int    `json:"count"`
}

// LastGame is the team's most recent completed game.
type LastGame struct {
	OwnScore      int    `json:"own_score"`
	OpponentScore int    `json:"opponent_score"`
	Result        string `json:"result"` // "W" or "L"
	WasFavorite   bool   `json:"was_favorite"`
}

// TeamSnapshot is the single input shape for the scorer. All data sources
// (ESPN, odds matching, synthetic test data) converge on this type before
// analysis; the scorer never validates or repairs it beyond the missing
// last-game case. WinPercentage is supplied by the caller, not recomputed.
type TeamSnapshot struct {
	ID            string  `json:"id"`
	Abbreviation  string  `json:"abbreviation"`
	City          string  `json:"city"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"win_percentage"`
	Streak        Streak  `json:"streak"`
	SeasonAverage float64 `json:"season_average"` // points per game
	LastGame      *LastGame `json:"last_game,omitempty"`
	HomeRecord    *Record   `json:"home_record,omitempty"`
	AwayRecord    *Record   `json:"away_record,omitempty"`
}

// DisplayName returns "City Name" for reasoning text.
func (t TeamSnapshot) DisplayName() string {
	if t.City == "" {
		return t.Name
	}
	return t.City + " " + t.Name
}

// ScoreBreakdown is one catalog entry's evaluation for one team in one game.
// Points always carries the catalog value so the UI can show untriggered
// rules; only triggered entries count toward the total.
type ScoreBreakdown struct {
	VariableID   string `json:"variable_id"`
	VariableName string `json:"variable_name"`
	Points       int    `json:"points"`
	Triggered    bool   `json:"triggered"`
	Reason       string `json:"reason,omitempty"`
}

// TeamAnalysis is the scorer output for one side of a game.
type TeamAnalysis struct {
	TeamID     string           `json:"team_id"`
	TotalScore int              `json:"total_score"`
	Breakdown  []ScoreBreakdown `json:"breakdown"`
	Confidence Confidence       `json:"confidence"`
}

// Base effect applied when a team has no recorded games to evaluate
const (
	homeBaseScore = 3
	awayBaseScore = -2
)

const closeGameMargin = 5

// Score evaluates the 13 research-score rules for one team. Pure and
// deterministic: identical inputs always produce identical output.
//
// When the team has no last-game record the rules are skipped entirely and
// only the home/away base effect applies, at low confidence, so callers can
// suppress strong claims when history is missing.
func Score(team TeamSnapshot, isHome bool, opponent TeamSnapshot, teamBackToBack, opponentBackToBack bool) TeamAnalysis {
	if team.LastGame == nil {
		total := awayBaseScore
		if isHome {
			total = homeBaseScore
		}
		return TeamAnalysis{
			TeamID:     team.ID,
			TotalScore: total,
			Breakdown:  []ScoreBreakdown{},
			Confidence: ConfidenceLow,
		}
	}

	last := *team.LastGame
	breakdown := make([]ScoreBreakdown, 0, len(variables))
	total := 0

	add := func(id string, triggered bool, reason string) {
		v := variablesByID[id]
		entry := ScoreBreakdown{
			VariableID:   v.ID,
			VariableName: v.Name,
			Points:       v.Points,
			Triggered:    triggered,
		}
		if triggered {
			entry.Reason = reason
			total += v.Points
		}
		breakdown = append(breakdown, entry)
	}

	add(VarCloseGame,
		absInt(last.OwnScore-last.OpponentScore) <= closeGameMargin,
		fmt.Sprintf("Last game: %d-%d", last.OwnScore, last.OpponentScore))

	add(VarFavoriteLost,
		last.WasFavorite && last.Result == ResultLoss,
		fmt.Sprintf("Lost as favorite: %d-%d", last.OwnScore, last.OpponentScore))

	add(VarFavoriteWon,
		last.WasFavorite && last.Result == ResultWin,
		fmt.Sprintf("Won as favorite: %d-%d", last.OwnScore, last.OpponentScore))

	homeTriggered := isHome && team.HomeRecord != nil
	homeReason := ""
	if homeTriggered {
		homeReason = fmt.Sprintf("Home record: %d-%d", team.HomeRecord.Wins, team.HomeRecord.Losses)
	}
	add(VarHomeGame, homeTriggered, homeReason)

	awayTriggered := !isHome && team.AwayRecord != nil
	awayReason := ""
	if awayTriggered {
		awayReason = fmt.Sprintf("Away record: %d-%d", team.AwayRecord.Wins, team.AwayRecord.Losses)
	}
	add(VarAwayGame, awayTriggered, awayReason)

	// A score exactly equal to the season average triggers neither side.
	scoredReason := fmt.Sprintf("Scored %d vs %.1f avg", last.OwnScore, team.SeasonAverage)
	add(VarScoredOver, float64(last.OwnScore) > team.SeasonAverage, scoredReason)
	add(VarScoredUnder, float64(last.OwnScore) < team.SeasonAverage, scoredReason)

	add(VarLost2,
		team.Streak.Type == ResultLoss && team.Streak.Count == 2,
		"Lost last 2 games")

	add(VarLost3Plus,
		team.Streak.Type == ResultLoss && team.Streak.Count >= 3,
		fmt.Sprintf("Lost last %d games", team.Streak.Count))

	// Exactly .500 triggers neither side.
	opponentReason := fmt.Sprintf("Opponent %s is %d-%d", opponent.City, opponent.Wins, opponent.Losses)
	add(VarOpponentUnder, opponent.WinPercentage < 0.500, opponentReason)
	add(VarOpponentOver, opponent.WinPercentage > 0.500, opponentReason)

	add(VarBackToBack, teamBackToBack, "Playing on consecutive days (fatigue factor)")
	add(VarOpponentBackToBack, opponentBackToBack, "Opponent playing on consecutive days")

	return TeamAnalysis{
		TeamID:     team.ID,
		TotalScore: total,
		Breakdown:  breakdown,
		Confidence: Classify(total),
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
