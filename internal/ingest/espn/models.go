package espn

import "time"

// Game statuses after normalization
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinal      = "final"
)

// ScoreboardTeam is one side of a scoreboard event. Record summaries keep
// ESPN's "W-L" string form; the snapshot builder parses them.
type ScoreboardTeam struct {
	ID            string `json:"id"`
	Abbreviation  string `json:"abbreviation"`
	City          string `json:"city"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Score         int    `json:"score"`
	OverallRecord string `json:"overall_record"`
	HomeRecord    string `json:"home_record"`
	RoadRecord    string `json:"road_record"`
}

// ScoreboardGame is one event from the daily scoreboard
type ScoreboardGame struct {
	ID        string         `json:"id"`
	StartTime time.Time      `json:"start_time"` // EST
	Status    string         `json:"status"`
	Home      ScoreboardTeam `json:"home"`
	Away      ScoreboardTeam `json:"away"`
}

// Scoreboard is the full slate for one date
type Scoreboard struct {
	Date  time.Time        `json:"date"`
	Games []ScoreboardGame `json:"games"`
}

// HasTeam reports whether a team played on this slate. Used for the
// back-to-back check against yesterday's scoreboard.
func (s *Scoreboard) HasTeam(teamID string) bool {
	if s == nil {
		return false
	}
	for _, game := range s.Games {
		if game.Home.ID == teamID || game.Away.ID == teamID {
			return true
		}
	}
	return false
}

// FindGame looks up a scoreboard event by ESPN game id
func (s *Scoreboard) FindGame(gameID string) (ScoreboardGame, bool) {
	if s == nil {
		return ScoreboardGame{}, false
	}
	for _, game := range s.Games {
		if game.ID == gameID {
			return game, true
		}
	}
	return ScoreboardGame{}, false
}

// RecentGame is one completed entry from a team's season schedule, from the
// team's own perspective. Most recent first.
type RecentGame struct {
	GameID        string    `json:"game_id"`
	Date          time.Time `json:"date"`
	OwnScore      int       `json:"own_score"`
	OpponentScore int       `json:"opponent_score"`
	Result        string    `json:"result"` // "W" or "L"
	WasHome       bool      `json:"was_home"`
}
