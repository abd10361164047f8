package google

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScrapedGame is one game extracted from a Google search results page
type ScrapedGame struct {
	HomeTeam      string
	AwayTeam      string
	HomeScore     int
	AwayScore     int
	GameStatus    string
	Period        int
	TimeRemaining string
	IsLive        bool
	IsFinal       bool
}

// ParseGames extracts NBA games from Google search results
func ParseGames(doc *goquery.Document) ([]ScrapedGame, error) {
	var games []ScrapedGame

	// Google Sports uses various selectors depending on the page structure
	// We'll try multiple strategies to extract game data

	// Strategy 1: Look for sports card widgets
	doc.Find("div.imso_mh__lv-m-stl-cont").Each(func(i int, s *goquery.Selection) {
		game := parseSportsCard(s)
		if game != nil {
			games = append(games, *game)
		}
	})

	// Strategy 2: Look for game result divs
	if len(games) == 0 {
		doc.Find("div[class*='sports']").Each(func(i int, s *goquery.Selection) {
			game := parseSportsDiv(s)
			if game != nil {
				games = append(games, *game)
			}
		})
	}

	log.Printf("Parsed %d games from Google", len(games))
	return games, nil
}

// FindFinalScore looks for a completed game between two teams, matched by
// abbreviation. Returns false when the game is absent or not final yet.
func FindFinalScore(games []ScrapedGame, homeAbbr, awayAbbr string) (ScrapedGame, bool) {
	for _, game := range games {
		if !game.IsFinal {
			continue
		}
		if GetTeamAbbreviation(game.HomeTeam) == homeAbbr && GetTeamAbbreviation(game.AwayTeam) == awayAbbr {
			return game, true
		}
	}
	return ScrapedGame{}, false
}

// parseSportsCard extracts game info from a Google sports card widget
func parseSportsCard(s *goquery.Selection) *ScrapedGame {
	game := &ScrapedGame{}

	// Extract team names
	s.Find("div.imso_mh__first-tn-ed").Each(func(i int, team *goquery.Selection) {
		teamName := strings.TrimSpace(team.Text())
		if i == 0 {
			game.HomeTeam = teamName
		} else if i == 1 {
			game.AwayTeam = teamName
		}
	})

	// Extract scores
	s.Find("div.imso_mh__l-tm-sc").Each(func(i int, score *goquery.Selection) {
		scoreText := strings.TrimSpace(score.Text())
		scoreVal, err := strconv.Atoi(scoreText)
		if err == nil {
			if i == 0 {
				game.HomeScore = scoreVal
			} else if i == 1 {
				game.AwayScore = scoreVal
			}
		}
	})

	// Extract game status (Live, Final, etc.)
	statusText := s.Find("span.imso_mh__ft-mtch").Text()
	game.GameStatus = strings.TrimSpace(statusText)
	statusLower := strings.ToLower(game.GameStatus)
	game.IsLive = strings.Contains(statusLower, "live") ||
		strings.Contains(statusLower, "q1") ||
		strings.Contains(statusLower, "q2") ||
		strings.Contains(statusLower, "q3") ||
		strings.Contains(statusLower, "q4")
	game.IsFinal = strings.Contains(statusLower, "final")

	// Extract period and time
	game.Period, game.TimeRemaining = parseGameClock(game.GameStatus)

	// Only return if we have valid team names
	if game.HomeTeam != "" && game.AwayTeam != "" {
		return game
	}

	return nil
}

// parseSportsDiv is a fallback parser for alternate Google structures
func parseSportsDiv(s *goquery.Selection) *ScrapedGame {
	// Google's HTML structure can vary, so this stays deliberately loose

	text := s.Text()
	if !strings.Contains(strings.ToLower(text), "nba") {
		return nil
	}

	// Look for score patterns like "Lakers 105 - 98 Celtics"
	scorePattern := regexp.MustCompile(`(\w+)\s+(\d+)\s*-\s*(\d+)\s+(\w+)`)
	matches := scorePattern.FindStringSubmatch(text)

	if len(matches) == 5 {
		awayScore, _ := strconv.Atoi(matches[2])
		homeScore, _ := strconv.Atoi(matches[3])

		return &ScrapedGame{
			AwayTeam:   matches[1],
			HomeTeam:   matches[4],
			AwayScore:  awayScore,
			HomeScore:  homeScore,
			GameStatus: "Unknown",
			IsFinal:    strings.Contains(strings.ToLower(text), "final"),
		}
	}

	return nil
}

// parseGameClock extracts period and time remaining from status text
func parseGameClock(statusText string) (int, string) {
	statusLower := strings.ToLower(statusText)

	// Match patterns like "Q4 2:30", "3rd 5:45", "4th Quarter 1:23"
	periodMap := map[string]int{
		"q1": 1, "1st": 1, "first": 1,
		"q2": 2, "2nd": 2, "second": 2,
		"q3": 3, "3rd": 3, "third": 3,
		"q4": 4, "4th": 4, "fourth": 4,
		"ot": 5, "overtime": 5,
	}

	for key, period := range periodMap {
		if strings.Contains(statusLower, key) {
			// Try to extract time
			timePattern := regexp.MustCompile(`(\d{1,2}:\d{2})`)
			if matches := timePattern.FindStringSubmatch(statusText); len(matches) > 0 {
				return period, matches[1]
			}
			return period, ""
		}
	}

	// Check for halftime
	if strings.Contains(statusLower, "half") {
		return 2, "Halftime"
	}

	return 0, ""
}

// TeamNameToAbbreviation maps common team names to abbreviations
var TeamNameToAbbreviation = map[string]string{
	"lakers":       "LAL",
	"celtics":      "BOS",
	"warriors":     "GSW",
	"nets":         "BKN",
	"knicks":       "NYK",
	"heat":         "MIA",
	"bucks":        "MIL",
	"bulls":        "CHI",
	"cavaliers":    "CLE",
	"mavericks":    "DAL",
	"nuggets":      "DEN",
	"rockets":      "HOU",
	"clippers":     "LAC",
	"grizzlies":    "MEM",
	"timberwolves": "MIN",
	"pelicans":     "NOP",
	"thunder":      "OKC",
	"magic":        "ORL",
	"76ers":        "PHI",
	"suns":         "PHX",
	"blazers":      "POR",
	"kings":        "SAC",
	"spurs":        "SAS",
	"raptors":      "TOR",
	"jazz":         "UTA",
	"wizards":      "WAS",
	"hawks":        "ATL",
	"hornets":      "CHA",
	"pistons":      "DET",
	"pacers":       "IND",
}

// GetTeamAbbreviation returns team abbreviation from full name
func GetTeamAbbreviation(teamName string) string {
	nameLower := strings.ToLower(strings.TrimSpace(teamName))

	// Try exact match first
	if abbr, ok := TeamNameToAbbreviation[nameLower]; ok {
		return abbr
	}

	// Try partial match
	for key, abbr := range TeamNameToAbbreviation {
		if strings.Contains(nameLower, key) {
			return abbr
		}
	}

	// Return original if no match
	return teamName
}
