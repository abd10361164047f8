package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/ingest/espn"
	"github.com/fortuna/courtside/internal/ingest/google"
)

func TestFinalFromScoreboard(t *testing.T) {
	scoreboard := &espn.Scoreboard{Games: []espn.ScoreboardGame{
		{
			ID:     "g1",
			Status: espn.StatusFinal,
			Home:   espn.ScoreboardTeam{ID: "2", Score: 112},
			Away:   espn.ScoreboardTeam{ID: "14", Score: 104},
		},
		{
			ID:     "g2",
			Status: espn.StatusInProgress,
			Home:   espn.ScoreboardTeam{ID: "13", Score: 88},
			Away:   espn.ScoreboardTeam{ID: "7", Score: 90},
		},
		{
			ID:     "g3",
			Status: espn.StatusFinal,
			Home:   espn.ScoreboardTeam{ID: "5"},
			Away:   espn.ScoreboardTeam{ID: "6"},
		},
	}}

	home, away, ok := finalFromScoreboard(scoreboard, "g1")
	require.True(t, ok)
	assert.Equal(t, 112, home)
	assert.Equal(t, 104, away)

	_, _, ok = finalFromScoreboard(scoreboard, "g2")
	assert.False(t, ok, "in-progress games are not final")

	_, _, ok = finalFromScoreboard(scoreboard, "g3")
	assert.False(t, ok, "final status without scores is not usable")

	_, _, ok = finalFromScoreboard(scoreboard, "missing")
	assert.False(t, ok)

	_, _, ok = finalFromScoreboard(nil, "g1")
	assert.False(t, ok, "a failed fetch yields no finals")
}

func TestFinalFromGoogle(t *testing.T) {
	games := []google.ScrapedGame{
		{HomeTeam: "Celtics", AwayTeam: "Heat", HomeScore: 112, AwayScore: 104, IsFinal: true},
		{HomeTeam: "Lakers", AwayTeam: "Nuggets", HomeScore: 90, AwayScore: 95, IsLive: true},
	}

	home, away, ok := finalFromGoogle(games, "Boston Celtics", "Miami Heat")
	require.True(t, ok)
	assert.Equal(t, 112, home)
	assert.Equal(t, 104, away)

	_, _, ok = finalFromGoogle(games, "Los Angeles Lakers", "Denver Nuggets")
	assert.False(t, ok, "live games are never graded")

	_, _, ok = finalFromGoogle(nil, "Boston Celtics", "Miami Heat")
	assert.False(t, ok)
}

func TestResultFromHTML(t *testing.T) {
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

	home, away, ok := resultFromHTML(html, "Boston Celtics", "Miami Heat")
	require.True(t, ok)
	assert.Equal(t, 112, home)
	assert.Equal(t, 104, away)

	_, _, ok = resultFromHTML(html, "Los Angeles Lakers", "Denver Nuggets")
	assert.False(t, ok, "a page for a different matchup never grades this one")

	_, _, ok = resultFromHTML("<html><body></body></html>", "Boston Celtics", "Miami Heat")
	assert.False(t, ok)
}
