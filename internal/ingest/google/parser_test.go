package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameClock(t *testing.T) {
	tests := []struct {
		status string
		period int
		clock  string
	}{
		{status: "Q4 2:30", period: 4, clock: "2:30"},
		{status: "3rd 5:45", period: 3, clock: "5:45"},
		{status: "OT 1:10", period: 5, clock: "1:10"},
		{status: "Halftime", period: 2, clock: "Halftime"},
		{status: "Final", period: 0, clock: ""},
		{status: "", period: 0, clock: ""},
	}

	for _, tt := range tests {
		period, clock := parseGameClock(tt.status)
		assert.Equal(t, tt.period, period, "status %q", tt.status)
		assert.Equal(t, tt.clock, clock, "status %q", tt.status)
	}
}

func TestGetTeamAbbreviation(t *testing.T) {
	assert.Equal(t, "BOS", GetTeamAbbreviation("Celtics"))
	assert.Equal(t, "BOS", GetTeamAbbreviation("Boston Celtics"))
	assert.Equal(t, "LAL", GetTeamAbbreviation(" lakers "))
	assert.Equal(t, "Unknown Team", GetTeamAbbreviation("Unknown Team"))
}

func TestFindFinalScore(t *testing.T) {
	games := []ScrapedGame{
		{HomeTeam: "Celtics", AwayTeam: "Heat", HomeScore: 112, AwayScore: 104, IsFinal: true},
		{HomeTeam: "Lakers", AwayTeam: "Nuggets", HomeScore: 88, AwayScore: 90, IsLive: true},
	}

	game, ok := FindFinalScore(games, "BOS", "MIA")
	require.True(t, ok)
	assert.Equal(t, 112, game.HomeScore)
	assert.Equal(t, 104, game.AwayScore)

	// Live games are never returned as finals
	_, ok = FindFinalScore(games, "LAL", "DEN")
	assert.False(t, ok)

	_, ok = FindFinalScore(games, "BOS", "DEN")
	assert.False(t, ok)
}

func TestParseGames_SportsCard(t *testing.T) {
	html := `
	<html><body>
		<div class="imso_mh__lv-m-stl-cont">
			<div class="imso_mh__first-tn-ed">Celtics</div>
			<div class="imso_mh__first-tn-ed">Heat</div>
			<div class="imso_mh__l-tm-sc">112</div>
			<div class="imso_mh__l-tm-sc">104</div>
			<span class="imso_mh__ft-mtch">Final</span>
		</div>
	</body></html>`

	doc, err := ParseHTML(html)
	require.NoError(t, err)

	games, err := ParseGames(doc)
	require.NoError(t, err)
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, "Celtics", game.HomeTeam)
	assert.Equal(t, "Heat", game.AwayTeam)
	assert.Equal(t, 112, game.HomeScore)
	assert.Equal(t, 104, game.AwayScore)
	assert.True(t, game.IsFinal)
	assert.False(t, game.IsLive)
}
