package odds

import "time"

// Market keys requested from The Odds API
const (
	MarketSpreads   = "spreads"
	MarketMoneyline = "h2h"
)

// Event is one game from the /v4/sports/{sport}/odds response
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's current lines for an event
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market is one priced market (spreads or h2h)
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one side of a market. Point is only set for spreads.
type Outcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"` // american odds
	Point *float64 `json:"point,omitempty"`
}

// Quota is The Odds API usage, read from response headers
type Quota struct {
	Remaining string `json:"remaining"`
	Used      string `json:"used"`
}

// GameOdds is the display shape extracted for one game: the first
// bookmaker's spread and moneylines.
type GameOdds struct {
	EventID       string  `json:"event_id"`
	Bookmaker     string  `json:"bookmaker"`
	HomeSpread    float64 `json:"home_spread"`
	HasSpread     bool    `json:"has_spread"`
	HomeMoneyline int     `json:"home_moneyline"`
	AwayMoneyline int     `json:"away_moneyline"`
	HasMoneyline  bool    `json:"has_moneyline"`
	HomeFavorite  bool    `json:"home_favorite"`
}
