package odds

import "strings"

// NormalizeTeamName lowercases a team name and strips everything but
// letters, so "Boston Celtics" and "boston-celtics" compare equal.
func NormalizeTeamName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchEvent finds the odds event for a game by its team display names.
// Exact normalized matches first; falls back to substring matching for
// names the books abbreviate ("LA Clippers" vs "Los Angeles Clippers").
func MatchEvent(events []Event, homeName, awayName string) (Event, bool) {
	home := NormalizeTeamName(homeName)
	away := NormalizeTeamName(awayName)

	for _, event := range events {
		if NormalizeTeamName(event.HomeTeam) == home && NormalizeTeamName(event.AwayTeam) == away {
			return event, true
		}
	}

	for _, event := range events {
		if namesOverlap(NormalizeTeamName(event.HomeTeam), home) &&
			namesOverlap(NormalizeTeamName(event.AwayTeam), away) {
			return event, true
		}
	}

	return Event{}, false
}

func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ExtractGameOdds pulls the first bookmaker's spread and moneylines for an
// event. Missing markets leave the Has* flags false rather than erroring.
func ExtractGameOdds(event Event) GameOdds {
	odds := GameOdds{EventID: event.ID}

	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			switch market.Key {
			case MarketSpreads:
				if odds.HasSpread {
					continue
				}
				for _, outcome := range market.Outcomes {
					if NormalizeTeamName(outcome.Name) == NormalizeTeamName(event.HomeTeam) && outcome.Point != nil {
						odds.HomeSpread = *outcome.Point
						odds.HomeFavorite = *outcome.Point < 0
						odds.HasSpread = true
						odds.Bookmaker = bookmaker.Title
					}
				}
			case MarketMoneyline:
				if odds.HasMoneyline {
					continue
				}
				var haveHome, haveAway bool
				var homePrice, awayPrice int
				for _, outcome := range market.Outcomes {
					switch NormalizeTeamName(outcome.Name) {
					case NormalizeTeamName(event.HomeTeam):
						homePrice, haveHome = outcome.Price, true
					case NormalizeTeamName(event.AwayTeam):
						awayPrice, haveAway = outcome.Price, true
					}
				}
				if haveHome && haveAway {
					odds.HomeMoneyline = homePrice
					odds.AwayMoneyline = awayPrice
					odds.HasMoneyline = true
					if odds.Bookmaker == "" {
						odds.Bookmaker = bookmaker.Title
					}
				}
			}
		}
		if odds.HasSpread && odds.HasMoneyline {
			break
		}
	}

	return odds
}
