package espn

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

const scoreboardFixture = `{
	"events": [
		{
			"id": "401705001",
			"date": "2026-01-15T00:30Z",
			"status": {"type": {"state": "pre", "completed": false}},
			"competitions": [{
				"competitors": [
					{
						"homeAway": "home",
						"score": "0",
						"team": {"id": "2", "abbreviation": "bos", "location": "Boston", "name": "Celtics", "displayName": "Boston Celtics"},
						"records": [
							{"type": "total", "summary": "28-12"},
							{"type": "home", "summary": "16-4"},
							{"type": "road", "summary": "12-8"}
						]
					},
					{
						"homeAway": "away",
						"score": "0",
						"team": {"id": "14", "abbreviation": "mia", "location": "Miami", "name": "Heat", "displayName": "Miami Heat"},
						"records": [{"type": "total", "summary": "18-22"}]
					}
				]
			}]
		},
		{
			"id": "401705002",
			"date": "2026-01-15T02:00:00Z",
			"status": {"type": {"state": "post", "completed": true}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "118", "team": {"id": "13", "abbreviation": "LAL", "location": "Los Angeles", "name": "Lakers"}},
					{"homeAway": "away", "score": "121", "team": {"id": "7", "abbreviation": "DEN", "location": "Denver", "name": "Nuggets"}}
				]
			}]
		},
		{
			"id": "401705003",
			"competitions": [{"competitors": [{"homeAway": "home"}]}]
		}
	]
}`

func TestParseScoreboard(t *testing.T) {
	date := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	scoreboard, err := ParseScoreboard(decodeJSON(t, scoreboardFixture), date)
	require.NoError(t, err)

	// The malformed third event is skipped
	require.Len(t, scoreboard.Games, 2)
	assert.Equal(t, date, scoreboard.Date)

	first := scoreboard.Games[0]
	assert.Equal(t, "401705001", first.ID)
	assert.Equal(t, StatusScheduled, first.Status)
	assert.Equal(t, "2", first.Home.ID)
	assert.Equal(t, "BOS", first.Home.Abbreviation)
	assert.Equal(t, "Boston", first.Home.City)
	assert.Equal(t, "28-12", first.Home.OverallRecord)
	assert.Equal(t, "16-4", first.Home.HomeRecord)
	assert.Equal(t, "12-8", first.Home.RoadRecord)
	assert.Equal(t, "18-22", first.Away.OverallRecord)
	assert.Empty(t, first.Away.HomeRecord)
	assert.False(t, first.StartTime.IsZero(), "short-form date should parse")

	second := scoreboard.Games[1]
	assert.Equal(t, StatusFinal, second.Status)
	assert.Equal(t, 118, second.Home.Score)
	assert.Equal(t, 121, second.Away.Score)
}

func TestParseScoreboard_EmptySlate(t *testing.T) {
	scoreboard, err := ParseScoreboard(decodeJSON(t, `{"events": []}`), time.Now())
	require.NoError(t, err)
	assert.Empty(t, scoreboard.Games)
	assert.NotNil(t, scoreboard.Games)
}

const scheduleFixture = `{
	"events": [
		{
			"id": "401704900",
			"date": "2026-01-10T00:00Z",
			"competitions": [{
				"status": {"type": {"completed": true}},
				"competitors": [
					{"homeAway": "home", "winner": true, "score": {"value": 112, "displayValue": "112"}, "team": {"id": "2"}},
					{"homeAway": "away", "winner": false, "score": {"value": 104, "displayValue": "104"}, "team": {"id": "14"}}
				]
			}]
		},
		{
			"id": "401704950",
			"date": "2026-01-13T00:00Z",
			"competitions": [{
				"status": {"type": {"completed": true}},
				"competitors": [
					{"homeAway": "away", "winner": false, "score": "98", "team": {"id": "2"}},
					{"homeAway": "home", "winner": true, "score": "105", "team": {"id": "13"}}
				]
			}]
		},
		{
			"id": "401705010",
			"date": "2026-01-16T00:00Z",
			"competitions": [{
				"status": {"type": {"completed": false}},
				"competitors": [
					{"homeAway": "home", "team": {"id": "2"}},
					{"homeAway": "away", "team": {"id": "7"}}
				]
			}]
		}
	]
}`

func TestParseTeamSchedule(t *testing.T) {
	games, err := ParseTeamSchedule(decodeJSON(t, scheduleFixture), "2")
	require.NoError(t, err)

	// Upcoming game excluded; completed games sorted most recent first
	require.Len(t, games, 2)

	assert.Equal(t, "401704950", games[0].GameID)
	assert.Equal(t, 98, games[0].OwnScore)
	assert.Equal(t, 105, games[0].OpponentScore)
	assert.Equal(t, "L", games[0].Result)
	assert.False(t, games[0].WasHome)

	assert.Equal(t, "401704900", games[1].GameID)
	assert.Equal(t, 112, games[1].OwnScore)
	assert.Equal(t, 104, games[1].OpponentScore)
	assert.Equal(t, "W", games[1].Result)
	assert.True(t, games[1].WasHome)
}

func TestScoreboard_HasTeam(t *testing.T) {
	scoreboard := &Scoreboard{Games: []ScoreboardGame{
		{ID: "g1", Home: ScoreboardTeam{ID: "2"}, Away: ScoreboardTeam{ID: "14"}},
	}}

	assert.True(t, scoreboard.HasTeam("2"))
	assert.True(t, scoreboard.HasTeam("14"))
	assert.False(t, scoreboard.HasTeam("13"))

	var nilBoard *Scoreboard
	assert.False(t, nilBoard.HasTeam("2"))
}
