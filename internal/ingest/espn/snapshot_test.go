package espn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/scoring"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		summary string
		wins    int
		losses  int
		ok      bool
	}{
		{summary: "28-12", wins: 28, losses: 12, ok: true},
		{summary: "0-0", wins: 0, losses: 0, ok: true},
		{summary: " 16-4 ", wins: 16, losses: 4, ok: true},
		{summary: "", ok: false},
		{summary: "28", ok: false},
		{summary: "a-b", ok: false},
	}

	for _, tt := range tests {
		wins, losses, ok := parseRecord(tt.summary)
		assert.Equal(t, tt.ok, ok, "summary %q", tt.summary)
		assert.Equal(t, tt.wins, wins, "summary %q", tt.summary)
		assert.Equal(t, tt.losses, losses, "summary %q", tt.summary)
	}
}

func TestWinPercentage(t *testing.T) {
	assert.Equal(t, 0.5, winPercentage(0, 0), "no games defaults to .500")
	assert.Equal(t, 0.7, winPercentage(28, 12))
	assert.Equal(t, 0.0, winPercentage(0, 10))
}

func TestCalculateStreak(t *testing.T) {
	recent := []RecentGame{
		{Result: "L"}, {Result: "L"}, {Result: "L"}, {Result: "W"}, {Result: "L"},
	}
	assert.Equal(t, scoring.Streak{Type: "L", Count: 3}, calculateStreak(recent))

	assert.Equal(t, scoring.Streak{Type: "W", Count: 0}, calculateStreak(nil))

	allWins := []RecentGame{{Result: "W"}, {Result: "W"}}
	assert.Equal(t, scoring.Streak{Type: "W", Count: 2}, calculateStreak(allWins))
}

func TestCalculateSeasonAverage(t *testing.T) {
	assert.Equal(t, 110.0, calculateSeasonAverage(nil), "no games defaults to 110")

	recent := []RecentGame{{OwnScore: 110}, {OwnScore: 105}, {OwnScore: 112}}
	// 327/3 = 109.0
	assert.Equal(t, 109.0, calculateSeasonAverage(recent))

	uneven := []RecentGame{{OwnScore: 100}, {OwnScore: 101}, {OwnScore: 101}}
	// 302/3 = 100.666... rounds to 100.7
	assert.Equal(t, 100.7, calculateSeasonAverage(uneven))
}

func TestBuildSnapshot(t *testing.T) {
	team := ScoreboardTeam{
		ID:            "2",
		Abbreviation:  "BOS",
		City:          "Boston",
		Name:          "Celtics",
		OverallRecord: "28-12",
		HomeRecord:    "16-4",
		RoadRecord:    "12-8",
	}
	recent := []RecentGame{
		{GameID: "g3", Date: time.Now(), OwnScore: 98, OpponentScore: 105, Result: "L", WasHome: false},
		{GameID: "g2", OwnScore: 112, OpponentScore: 104, Result: "W", WasHome: true},
		{GameID: "g1", OwnScore: 110, OpponentScore: 100, Result: "W", WasHome: true},
	}

	snapshot := BuildSnapshot(team, recent)

	assert.Equal(t, "2", snapshot.ID)
	assert.Equal(t, 28, snapshot.Wins)
	assert.Equal(t, 12, snapshot.Losses)
	assert.Equal(t, 0.7, snapshot.WinPercentage)
	assert.Equal(t, scoring.Streak{Type: "L", Count: 1}, snapshot.Streak)
	// (98+112+110)/3 = 106.666... rounds to 106.7
	assert.Equal(t, 106.7, snapshot.SeasonAverage)

	require.NotNil(t, snapshot.LastGame)
	assert.Equal(t, 98, snapshot.LastGame.OwnScore)
	assert.Equal(t, 105, snapshot.LastGame.OpponentScore)
	assert.Equal(t, "L", snapshot.LastGame.Result)
	assert.False(t, snapshot.LastGame.WasFavorite, "road games are never the favorite proxy")

	require.NotNil(t, snapshot.HomeRecord)
	assert.Equal(t, scoring.Record{Wins: 16, Losses: 4}, *snapshot.HomeRecord)
	require.NotNil(t, snapshot.AwayRecord)
	assert.Equal(t, scoring.Record{Wins: 12, Losses: 8}, *snapshot.AwayRecord)
}

func TestBuildSnapshot_NoHistory(t *testing.T) {
	team := ScoreboardTeam{ID: "30", OverallRecord: "0-0"}

	snapshot := BuildSnapshot(team, nil)

	assert.Equal(t, 0.5, snapshot.WinPercentage)
	assert.Equal(t, 110.0, snapshot.SeasonAverage)
	assert.Nil(t, snapshot.LastGame)
	assert.Nil(t, snapshot.HomeRecord)
	assert.Nil(t, snapshot.AwayRecord)
}
