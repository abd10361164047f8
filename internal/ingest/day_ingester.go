package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/ingest/espn"
	"github.com/fortuna/courtside/internal/ingest/odds"
	"github.com/fortuna/courtside/internal/scoring"
)

// scheduleAPI is the slice of the ESPN client the ingester uses
type scheduleAPI interface {
	FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error)
	FetchTeamSchedule(ctx context.Context, teamID string, season int) (map[string]interface{}, error)
}

// oddsAPI is the slice of the odds client the ingester uses
type oddsAPI interface {
	Configured() bool
	FetchOdds(ctx context.Context) ([]odds.Event, odds.Quota, error)
}

// slateCache caches upstream API responses between slate builds
type slateCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// AnalyzedGame is one slate entry: the scheduled game, both team
// snapshots, current odds when available, and the research analysis.
type AnalyzedGame struct {
	Game           espn.ScoreboardGame  `json:"game"`
	HomeSnapshot   scoring.TeamSnapshot `json:"home_snapshot"`
	AwaySnapshot   scoring.TeamSnapshot `json:"away_snapshot"`
	HomeBackToBack bool                 `json:"home_back_to_back"`
	AwayBackToBack bool                 `json:"away_back_to_back"`
	Odds           *odds.GameOdds       `json:"odds,omitempty"`
	Analysis       scoring.GameAnalysis `json:"analysis"`
}

// Slate is the full analyzed schedule for one date, best edges first
type Slate struct {
	Date        time.Time      `json:"date"`
	GeneratedAt time.Time      `json:"generated_at"`
	Games       []AnalyzedGame `json:"games"`
	OddsQuota   *odds.Quota    `json:"odds_quota,omitempty"`
}

// DayIngester builds the analyzed slate for a date.
// ESPN supplies the schedule and team history; The Odds API supplies
// lines and is optional. Upstream responses are cached in Redis so
// repeated builds within the TTL don't hit the APIs; RebuildSlate
// bypasses the cache for forced refreshes.
type DayIngester struct {
	espnClient scheduleAPI
	oddsClient oddsAPI
	cache      slateCache
}

// NewDayIngester creates a new day ingester. oddsClient and redisCache
// may be nil, which disables odds and response caching respectively.
func NewDayIngester(espnClient *espn.Client, oddsClient *odds.Client, redisCache *cache.RedisCache) *DayIngester {
	di := &DayIngester{espnClient: espnClient}
	if oddsClient != nil {
		di.oddsClient = oddsClient
	}
	if redisCache != nil {
		di.cache = redisCache
	}
	return di
}

// BuildSlate fetches the date's games and analyzes each one, serving
// upstream responses from cache when fresh. Games are sorted by absolute
// score differential, strongest edge first, with the game id as
// tiebreaker for a stable order.
func (di *DayIngester) BuildSlate(ctx context.Context, date time.Time) (*Slate, error) {
	return di.buildSlate(ctx, date, false)
}

// RebuildSlate builds the slate with every upstream fetched fresh,
// repopulating the cache. This is the forced-refresh path; within the
// cache TTL it is the only way to pick up moved lines or record changes.
func (di *DayIngester) RebuildSlate(ctx context.Context, date time.Time) (*Slate, error) {
	return di.buildSlate(ctx, date, true)
}

func (di *DayIngester) buildSlate(ctx context.Context, date time.Time, bypassCache bool) (*Slate, error) {
	log.Printf("Building slate for %s (bypass cache: %v)", date.Format("2006-01-02"), bypassCache)

	scoreboard, err := di.fetchScoreboard(ctx, date, bypassCache)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	// Yesterday's slate drives the back-to-back check; a miss just means
	// no fatigue flags
	yesterday, err := di.fetchScoreboard(ctx, date.AddDate(0, 0, -1), bypassCache)
	if err != nil {
		log.Printf("⚠️  Failed to fetch yesterday's scoreboard: %v", err)
		yesterday = nil
	}

	oddsEvents, quota := di.fetchOdds(ctx, bypassCache)

	slate := &Slate{
		Date:        date,
		GeneratedAt: time.Now(),
		Games:       []AnalyzedGame{},
		OddsQuota:   quota,
	}

	for _, game := range scoreboard.Games {
		analyzed, err := di.analyzeGame(ctx, game, date, yesterday, oddsEvents, bypassCache)
		if err != nil {
			log.Printf("⚠️  Skipping game %s: %v", game.ID, err)
			continue
		}
		slate.Games = append(slate.Games, analyzed)
	}

	sort.Slice(slate.Games, func(i, j int) bool {
		edgeI := absInt(slate.Games[i].Analysis.ScoreDifferential)
		edgeJ := absInt(slate.Games[j].Analysis.ScoreDifferential)
		if edgeI != edgeJ {
			return edgeI > edgeJ
		}
		return slate.Games[i].Game.ID < slate.Games[j].Game.ID
	})

	log.Printf("✓ Slate built: %d games analyzed", len(slate.Games))
	return slate, nil
}

func (di *DayIngester) analyzeGame(ctx context.Context, game espn.ScoreboardGame, date time.Time, yesterday *espn.Scoreboard, oddsEvents []odds.Event, bypassCache bool) (AnalyzedGame, error) {
	season := SeasonForDate(date)

	// The two schedule fetches are independent
	var homeRecent, awayRecent []espn.RecentGame
	var homeErr, awayErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		homeRecent, homeErr = di.fetchRecentGames(ctx, game.Home.ID, season, bypassCache)
	}()
	go func() {
		defer wg.Done()
		awayRecent, awayErr = di.fetchRecentGames(ctx, game.Away.ID, season, bypassCache)
	}()
	wg.Wait()

	if homeErr != nil {
		return AnalyzedGame{}, fmt.Errorf("home schedule: %w", homeErr)
	}
	if awayErr != nil {
		return AnalyzedGame{}, fmt.Errorf("away schedule: %w", awayErr)
	}

	analyzed := AnalyzedGame{
		Game:           game,
		HomeSnapshot:   espn.BuildSnapshot(game.Home, homeRecent),
		AwaySnapshot:   espn.BuildSnapshot(game.Away, awayRecent),
		HomeBackToBack: yesterday.HasTeam(game.Home.ID),
		AwayBackToBack: yesterday.HasTeam(game.Away.ID),
	}

	if event, ok := odds.MatchEvent(oddsEvents, game.Home.DisplayName, game.Away.DisplayName); ok {
		gameOdds := odds.ExtractGameOdds(event)
		analyzed.Odds = &gameOdds
	}

	analyzed.Analysis = scoring.Analyze(game.ID,
		analyzed.HomeSnapshot, analyzed.AwaySnapshot,
		analyzed.HomeBackToBack, analyzed.AwayBackToBack)

	return analyzed, nil
}

// fetchScoreboard returns the parsed slate for a date, cached under the
// date key.
func (di *DayIngester) fetchScoreboard(ctx context.Context, date time.Time, bypassCache bool) (*espn.Scoreboard, error) {
	key := "espn:scoreboard:" + date.Format("20060102")

	if di.cache != nil && !bypassCache {
		var cached espn.Scoreboard
		if hit, err := di.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	raw, err := di.espnClient.FetchScoreboard(ctx, date)
	if err != nil {
		return nil, err
	}

	scoreboard, err := espn.ParseScoreboard(raw, date)
	if err != nil {
		return nil, err
	}

	if di.cache != nil {
		if err := di.cache.SetJSON(ctx, key, scoreboard, cache.DefaultAPITTL); err != nil {
			log.Printf("⚠️  Failed to cache scoreboard: %v", err)
		}
	}

	return scoreboard, nil
}

func (di *DayIngester) fetchRecentGames(ctx context.Context, teamID string, season int, bypassCache bool) ([]espn.RecentGame, error) {
	key := fmt.Sprintf("espn:schedule:%s:%d", teamID, season)

	if di.cache != nil && !bypassCache {
		var cached []espn.RecentGame
		if hit, err := di.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	raw, err := di.espnClient.FetchTeamSchedule(ctx, teamID, season)
	if err != nil {
		return nil, err
	}

	recent, err := espn.ParseTeamSchedule(raw, teamID)
	if err != nil {
		return nil, err
	}

	if di.cache != nil {
		if err := di.cache.SetJSON(ctx, key, recent, cache.DefaultAPITTL); err != nil {
			log.Printf("⚠️  Failed to cache team schedule: %v", err)
		}
	}

	return recent, nil
}

// fetchOdds returns current events, or nothing when the API key is
// missing or the fetch fails. Odds never block slate building.
func (di *DayIngester) fetchOdds(ctx context.Context, bypassCache bool) ([]odds.Event, *odds.Quota) {
	if di.oddsClient == nil || !di.oddsClient.Configured() {
		return nil, nil
	}

	key := "odds:events:" + odds.SportNBA

	if di.cache != nil && !bypassCache {
		var cached []odds.Event
		if hit, err := di.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	events, quota, err := di.oddsClient.FetchOdds(ctx)
	if err != nil {
		log.Printf("⚠️  Odds fetch failed: %v (slate continues without lines)", err)
		return nil, nil
	}

	if di.cache != nil {
		if err := di.cache.SetJSON(ctx, key, events, cache.DefaultAPITTL); err != nil {
			log.Printf("⚠️  Failed to cache odds: %v", err)
		}
	}

	return events, &quota
}

// SeasonForDate maps a calendar date to ESPN's season year. Seasons run
// October through June and are named for the later year.
func SeasonForDate(date time.Time) int {
	if date.Month() >= time.October {
		return date.Year() + 1
	}
	return date.Year()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
