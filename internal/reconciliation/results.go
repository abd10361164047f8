package reconciliation

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/ingest/espn"
	"github.com/fortuna/courtside/internal/ingest/google"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
)

// Result sources, in priority order
const (
	SourceESPN   = "espn"
	SourceGoogle = "google"
)

// ResultUpdate is one reconciled final score, published downstream
type ResultUpdate struct {
	GameID     string                  `json:"game_id"`
	HomeFinal  int                     `json:"home_final"`
	AwayFinal  int                     `json:"away_final"`
	Source     string                  `json:"source"`
	Prediction *store.PredictionRecord `json:"prediction"`
}

// Reconciler resolves pending predictions against final scores.
// ESPN is authoritative; the Google Sports scrape fills in when ESPN has
// not marked a game final yet.
type Reconciler struct {
	predictions  *service.PredictionService
	espnClient   *espn.Client
	googleClient *google.Client
	publisher    *publisher.RedisStreamPublisher
}

// NewReconciler creates a new result reconciler. googleClient and
// publisher may be nil; reconciliation then runs ESPN-only and unpublished.
func NewReconciler(predictions *service.PredictionService, espnClient *espn.Client, googleClient *google.Client, pub *publisher.RedisStreamPublisher) *Reconciler {
	return &Reconciler{
		predictions:  predictions,
		espnClient:   espnClient,
		googleClient: googleClient,
		publisher:    pub,
	}
}

// ReconcilePending grades every pending prediction whose final score can
// be found. Returns the number of games graded.
func (r *Reconciler) ReconcilePending(ctx context.Context) (int, error) {
	pending, err := r.predictions.GetPendingResults(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	log.Printf("Reconciling %d pending predictions...", len(pending))

	// One scoreboard fetch per distinct game date
	scoreboards := map[string]*espn.Scoreboard{}
	var googleGames []google.ScrapedGame
	googleFetched := false

	graded := 0
	for _, rec := range pending {
		dateKey := rec.GameDate.Format("20060102")
		scoreboard, ok := scoreboards[dateKey]
		if !ok {
			scoreboard = r.fetchScoreboard(ctx, rec.GameDate)
			scoreboards[dateKey] = scoreboard
		}

		homeFinal, awayFinal, found := finalFromScoreboard(scoreboard, rec.GameID)
		source := SourceESPN

		if !found && r.googleClient != nil {
			if !googleFetched {
				googleGames = r.fetchGoogleGames(ctx)
				googleFetched = true
			}
			homeFinal, awayFinal, found = finalFromGoogle(googleGames, rec.HomeTeamName, rec.AwayTeamName)
			if !found {
				// Older pending games fall off the general scoreboard;
				// look the matchup up directly
				homeFinal, awayFinal, found = r.fetchTargetedResult(ctx, rec.HomeTeamName, rec.AwayTeamName)
			}
			source = SourceGoogle
		}

		if !found {
			continue
		}

		updated, err := r.predictions.RecordFinalScore(ctx, rec.GameID, homeFinal, awayFinal)
		if err != nil {
			log.Printf("⚠️  Failed to record final for game %s: %v", rec.GameID, err)
			continue
		}
		graded++
		log.Printf("✓ Graded game %s: %d-%d (%s)", rec.GameID, homeFinal, awayFinal, source)

		if r.publisher != nil {
			update := ResultUpdate{
				GameID:     rec.GameID,
				HomeFinal:  homeFinal,
				AwayFinal:  awayFinal,
				Source:     source,
				Prediction: updated,
			}
			if err := r.publisher.PublishResultUpdate(ctx, update); err != nil {
				log.Printf("⚠️  Failed to publish result for game %s: %v", rec.GameID, err)
			}
		}
	}

	log.Printf("✓ Reconciliation complete: %d of %d graded", graded, len(pending))
	return graded, nil
}

func (r *Reconciler) fetchScoreboard(ctx context.Context, date time.Time) *espn.Scoreboard {
	raw, err := r.espnClient.FetchScoreboard(ctx, date)
	if err != nil {
		log.Printf("⚠️  ESPN scoreboard fetch failed for %s: %v", date.Format("2006-01-02"), err)
		return nil
	}
	scoreboard, err := espn.ParseScoreboard(raw, date)
	if err != nil {
		log.Printf("⚠️  ESPN scoreboard parse failed for %s: %v", date.Format("2006-01-02"), err)
		return nil
	}
	return scoreboard
}

func (r *Reconciler) fetchGoogleGames(ctx context.Context) []google.ScrapedGame {
	html, err := r.googleClient.FetchScoreboard(ctx)
	if err != nil {
		log.Printf("⚠️  Google scrape failed: %v", err)
		return nil
	}
	doc, err := google.ParseHTML(html)
	if err != nil {
		log.Printf("⚠️  Google HTML parse failed: %v", err)
		return nil
	}
	games, err := google.ParseGames(doc)
	if err != nil {
		log.Printf("⚠️  Google game parse failed: %v", err)
		return nil
	}
	return games
}

// fetchTargetedResult runs a per-matchup Google query for one game
func (r *Reconciler) fetchTargetedResult(ctx context.Context, homeTeamName, awayTeamName string) (int, int, bool) {
	html, err := r.googleClient.FetchGameResult(ctx, homeTeamName, awayTeamName)
	if err != nil {
		log.Printf("⚠️  Google result lookup failed for %s vs %s: %v", homeTeamName, awayTeamName, err)
		return 0, 0, false
	}
	return resultFromHTML(html, homeTeamName, awayTeamName)
}

// resultFromHTML extracts a final score for one matchup from a scraped
// result page.
func resultFromHTML(html, homeTeamName, awayTeamName string) (int, int, bool) {
	doc, err := google.ParseHTML(html)
	if err != nil {
		return 0, 0, false
	}
	games, err := google.ParseGames(doc)
	if err != nil {
		return 0, 0, false
	}
	return finalFromGoogle(games, homeTeamName, awayTeamName)
}

// finalFromScoreboard extracts a final score for a game id. Only games
// ESPN marks final with real scores count.
func finalFromScoreboard(scoreboard *espn.Scoreboard, gameID string) (homeFinal, awayFinal int, ok bool) {
	game, found := scoreboard.FindGame(gameID)
	if !found || game.Status != espn.StatusFinal {
		return 0, 0, false
	}
	if game.Home.Score == 0 && game.Away.Score == 0 {
		return 0, 0, false
	}
	return game.Home.Score, game.Away.Score, true
}

// finalFromGoogle matches a scraped final by team abbreviation
func finalFromGoogle(games []google.ScrapedGame, homeTeamName, awayTeamName string) (homeFinal, awayFinal int, ok bool) {
	homeAbbr := google.GetTeamAbbreviation(homeTeamName)
	awayAbbr := google.GetTeamAbbreviation(awayTeamName)

	game, found := google.FindFinalScore(games, homeAbbr, awayAbbr)
	if !found {
		return 0, 0, false
	}
	return game.HomeScore, game.AwayScore, true
}
