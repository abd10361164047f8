package espn

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ESPN record types on scoreboard competitors
const (
	recordTypeTotal = "total"
	recordTypeHome  = "home"
	recordTypeRoad  = "road"
)

// ParseScoreboard extracts the day's games from a scoreboard response.
// A slate with no events is normal (off days), not an error.
func ParseScoreboard(scoreboardData map[string]interface{}, date time.Time) (*Scoreboard, error) {
	scoreboard := &Scoreboard{
		Date:  date,
		Games: []ScoreboardGame{},
	}

	events := extractArray(scoreboardData, "events")
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		game, err := parseScoreboardEvent(event)
		if err != nil {
			// Log parsing errors instead of silently skipping
			fmt.Printf("[espn-parser] Warning: Skipping game %s: %v\n", extractString(event, "id"), err)
			continue
		}
		scoreboard.Games = append(scoreboard.Games, game)
	}

	return scoreboard, nil
}

func parseScoreboardEvent(event map[string]interface{}) (ScoreboardGame, error) {
	game := ScoreboardGame{
		ID: extractString(event, "id"),
	}
	if game.ID == "" {
		return game, fmt.Errorf("event has no id")
	}

	if dateStr := extractString(event, "date"); dateStr != "" {
		if t, err := parseEventTime(dateStr); err == nil {
			game.StartTime = t
		} else {
			fmt.Printf("[espn-parser] Warning: Failed to parse date '%s' for game %s: %v\n", dateStr, game.ID, err)
		}
	}

	game.Status = normalizeGameStatus(parseGameStatus(extractMap(event, "status")))

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return game, fmt.Errorf("no competitions found")
	}
	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return game, fmt.Errorf("malformed competition")
	}

	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return game, fmt.Errorf("insufficient competitors")
	}

	haveHome, haveAway := false, false
	for _, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}
		side := parseCompetitor(competitor)
		switch extractString(competitor, "homeAway") {
		case "home":
			game.Home = side
			haveHome = true
		case "away":
			game.Away = side
			haveAway = true
		}
	}
	if !haveHome || !haveAway {
		return game, fmt.Errorf("missing home or away competitor")
	}

	return game, nil
}

func parseCompetitor(competitor map[string]interface{}) ScoreboardTeam {
	team := extractMap(competitor, "team")
	side := ScoreboardTeam{
		ID:           extractString(team, "id"),
		Abbreviation: strings.ToUpper(extractString(team, "abbreviation")),
		City:         extractString(team, "location"),
		Name:         extractString(team, "name"),
		DisplayName:  extractString(team, "displayName"),
		Score:        extractInt(competitor, "score"),
	}

	for _, recInterface := range extractArray(competitor, "records") {
		rec, ok := recInterface.(map[string]interface{})
		if !ok {
			continue
		}
		summary := extractString(rec, "summary")
		switch extractString(rec, "type") {
		case recordTypeTotal:
			side.OverallRecord = summary
		case recordTypeHome:
			side.HomeRecord = summary
		case recordTypeRoad:
			side.RoadRecord = summary
		}
	}

	return side
}

// ParseTeamSchedule extracts the team's completed games from a schedule
// response, most recent first.
func ParseTeamSchedule(scheduleData map[string]interface{}, teamID string) ([]RecentGame, error) {
	events := extractArray(scheduleData, "events")

	var games []RecentGame
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}

		competitions := extractArray(event, "competitions")
		if len(competitions) == 0 {
			continue
		}
		comp, ok := competitions[0].(map[string]interface{})
		if !ok {
			continue
		}

		if !competitionCompleted(comp) {
			continue
		}

		game := RecentGame{GameID: extractString(event, "id")}
		if dateStr := extractString(event, "date"); dateStr != "" {
			if t, err := parseEventTime(dateStr); err == nil {
				game.Date = t
			}
		}

		found := false
		for _, compInterface := range extractArray(comp, "competitors") {
			competitor, ok := compInterface.(map[string]interface{})
			if !ok {
				continue
			}
			team := extractMap(competitor, "team")
			score := parseScheduleScore(competitor["score"])

			if extractString(team, "id") == teamID {
				found = true
				game.OwnScore = score
				game.WasHome = extractString(competitor, "homeAway") == "home"
				if winner, ok := competitor["winner"].(bool); ok && winner {
					game.Result = "W"
				} else {
					game.Result = "L"
				}
			} else {
				game.OpponentScore = score
			}
		}
		if !found {
			continue
		}

		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Date.After(games[j].Date)
	})

	return games, nil
}

func competitionCompleted(comp map[string]interface{}) bool {
	status := extractMap(comp, "status")
	statusType := extractMap(status, "type")
	completed, ok := statusType["completed"].(bool)
	return ok && completed
}

// parseScheduleScore handles both shapes ESPN uses for schedule scores:
// a bare value and an object with a "value" field.
func parseScheduleScore(v interface{}) int {
	switch val := v.(type) {
	case map[string]interface{}:
		return extractInt(val, "value")
	default:
		return parseInt(v)
	}
}

// parseEventTime parses ESPN timestamps and converts them to EST.
func parseEventTime(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		// ESPN sometimes omits seconds: "2025-11-15T01:00Z"
		t, err = time.Parse("2006-01-02T15:04Z", dateStr)
	}
	if err != nil {
		return time.Time{}, err
	}

	est, locErr := time.LoadLocation("America/New_York")
	if locErr != nil {
		return t, nil
	}
	return t.In(est), nil
}

func parseGameStatus(status map[string]interface{}) string {
	statusType := extractMap(status, "type")

	if completed, ok := statusType["completed"].(bool); ok && completed {
		return "final"
	}

	if state, ok := statusType["state"].(string); ok {
		switch state {
		case "in":
			return "live"
		case "pre":
			return "scheduled"
		case "post":
			return "final"
		}
	}

	return "scheduled"
}

func normalizeGameStatus(status string) string {
	if status == "live" {
		return StatusInProgress
	}
	return status
}

// Helper functions

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}
