package scoring

// Category groups scoring variables for the explainer view
type Category string

const (
	CategoryPerformance Category = "performance"
	CategorySituation   Category = "situation"
	CategoryStreak      Category = "streak"
	CategoryOpponent    Category = "opponent"
)

// Variable ids, in evaluation order
const (
	VarCloseGame          = "closeGame"
	VarFavoriteLost       = "favoriteLost"
	VarFavoriteWon        = "favoriteWon"
	VarHomeGame           = "homeGame"
	VarAwayGame           = "awayGame"
	VarScoredOver         = "scoredOver"
	VarScoredUnder        = "scoredUnder"
	VarLost2              = "lost2"
	VarLost3Plus          = "lost3Plus"
	VarOpponentUnder      = "opponentUnder"
	VarOpponentOver       = "opponentOver"
	VarBackToBack         = "backToBack"
	VarOpponentBackToBack = "opponentBackToBack"
)

// ScoringVariable describes one research-score rule. Point values are fixed
// at process start and never change at runtime.
type ScoringVariable struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Category    Category `json:"category"`
}

var variables = []ScoringVariable{
	{ID: VarCloseGame, Name: "Close Game Yesterday", Description: "Yesterday's game was within 5 points", Points: 3, Category: CategoryPerformance},
	{ID: VarFavoriteLost, Name: "Favorite Lost", Description: "Favorite lost last game", Points: 5, Category: CategoryPerformance},
	{ID: VarFavoriteWon, Name: "Favorite Won", Description: "Favorite won last game", Points: 2, Category: CategoryPerformance},
	{ID: VarHomeGame, Name: "Home Game", Description: "Playing at home", Points: 3, Category: CategorySituation},
	{ID: VarAwayGame, Name: "Away Game", Description: "Playing away", Points: -2, Category: CategorySituation},
	{ID: VarScoredOver, Name: "Scored Over Average", Description: "Scored over season average last game", Points: 2, Category: CategoryPerformance},
	{ID: VarScoredUnder, Name: "Scored Under Average", Description: "Scored under season average last game", Points: -2, Category: CategoryPerformance},
	{ID: VarLost2, Name: "2-Game Losing Streak", Description: "Lost 2 games in a row", Points: 4, Category: CategoryStreak},
	{ID: VarLost3Plus, Name: "3+ Game Losing Streak", Description: "Lost 3 or more games in a row", Points: 6, Category: CategoryStreak},
	{ID: VarOpponentUnder, Name: "Weak Opponent", Description: "Opponent is under .500", Points: 3, Category: CategoryOpponent},
	{ID: VarOpponentOver, Name: "Strong Opponent", Description: "Opponent is over .500", Points: -1, Category: CategoryOpponent},
	{ID: VarBackToBack, Name: "Back-to-Back Game", Description: "Team is on a back-to-back", Points: -4, Category: CategorySituation},
	{ID: VarOpponentBackToBack, Name: "Opponent Back-to-Back", Description: "Opponent is on a back-to-back", Points: 4, Category: CategorySituation},
}

var variablesByID = func() map[string]ScoringVariable {
	m := make(map[string]ScoringVariable, len(variables))
	for _, v := range variables {
		m[v.ID] = v
	}
	return m
}()

// Variables returns the full catalog in evaluation order. The caller must
// not modify the returned slice.
func Variables() []ScoringVariable {
	return variables
}

// VariableByID looks up a catalog entry.
func VariableByID(id string) (ScoringVariable, bool) {
	v, ok := variablesByID[id]
	return v, ok
}
