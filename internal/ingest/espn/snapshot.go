package espn

import (
	"math"
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/scoring"
)

// Defaults applied when a team has no usable history yet (season start)
const (
	defaultWinPercentage = 0.5
	defaultSeasonAverage = 110.0
)

// BuildSnapshot converts a scoreboard team plus its recent completed games
// into the scorer's input shape. WasFavorite on the last game means the
// team played at home; closing lines are not kept historically.
func BuildSnapshot(team ScoreboardTeam, recent []RecentGame) scoring.TeamSnapshot {
	wins, losses, _ := parseRecord(team.OverallRecord)

	snapshot := scoring.TeamSnapshot{
		ID:            team.ID,
		Abbreviation:  team.Abbreviation,
		City:          team.City,
		Name:          team.Name,
		Wins:          wins,
		Losses:        losses,
		WinPercentage: winPercentage(wins, losses),
		Streak:        calculateStreak(recent),
		SeasonAverage: calculateSeasonAverage(recent),
	}

	if w, l, ok := parseRecord(team.HomeRecord); ok {
		snapshot.HomeRecord = &scoring.Record{Wins: w, Losses: l}
	}
	if w, l, ok := parseRecord(team.RoadRecord); ok {
		snapshot.AwayRecord = &scoring.Record{Wins: w, Losses: l}
	}

	if len(recent) > 0 {
		last := recent[0]
		snapshot.LastGame = &scoring.LastGame{
			OwnScore:      last.OwnScore,
			OpponentScore: last.OpponentScore,
			Result:        last.Result,
			WasFavorite:   last.WasHome,
		}
	}

	return snapshot
}

// parseRecord parses ESPN's "W-L" summary form
func parseRecord(summary string) (wins, losses int, ok bool) {
	parts := strings.Split(strings.TrimSpace(summary), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	wins, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	losses, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil {
		return 0, 0, false
	}
	return wins, losses, true
}

func winPercentage(wins, losses int) float64 {
	if wins+losses == 0 {
		return defaultWinPercentage
	}
	return float64(wins) / float64(wins+losses)
}

// calculateStreak counts the run of identical results at the head of the
// recent-games list.
func calculateStreak(recent []RecentGame) scoring.Streak {
	if len(recent) == 0 {
		return scoring.Streak{Type: scoring.ResultWin, Count: 0}
	}

	streak := scoring.Streak{Type: recent[0].Result, Count: 0}
	for _, game := range recent {
		if game.Result != streak.Type {
			break
		}
		streak.Count++
	}
	return streak
}

// calculateSeasonAverage is the mean of the team's own scores, rounded to
// one decimal.
func calculateSeasonAverage(recent []RecentGame) float64 {
	if len(recent) == 0 {
		return defaultSeasonAverage
	}

	total := 0
	for _, game := range recent {
		total += game.OwnScore
	}
	avg := float64(total) / float64(len(recent))
	return math.Round(avg*10) / 10
}
