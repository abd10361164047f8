package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL  = "https://api.the-odds-api.com/v4"
	SportNBA = "basketball_nba"
)

// Client handles The Odds API requests. Unlike ESPN, this API accepts
// Go's HTTP client directly.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a new Odds API client
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether an API key is set. Odds are optional; the
// slate still builds without them.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

const (
	fetchAttempts = 2
	retryDelay    = 2 * time.Second
)

// FetchOdds fetches current NBA spreads and moneylines, retrying once on
// transport errors. The returned quota comes from the
// x-requests-remaining / x-requests-used response headers.
func (c *Client) FetchOdds(ctx context.Context) ([]Event, Quota, error) {
	var events []Event
	var quota Quota
	var err error

	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		events, quota, err = c.fetchOdds(ctx)
		if err == nil {
			return events, quota, nil
		}
		if attempt < fetchAttempts {
			log.Printf("[odds-client] ⚠️  Fetch attempt %d failed: %v (retrying)", attempt, err)
			select {
			case <-ctx.Done():
				return nil, quota, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	return nil, quota, err
}

func (c *Client) fetchOdds(ctx context.Context) ([]Event, Quota, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, SportNBA)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", MarketSpreads+","+MarketMoneyline)
	params.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, Quota{}, fmt.Errorf("building odds request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Quota{}, fmt.Errorf("fetching odds: %w", err)
	}
	defer resp.Body.Close()

	quota := Quota{
		Remaining: resp.Header.Get("x-requests-remaining"),
		Used:      resp.Header.Get("x-requests-used"),
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, quota, fmt.Errorf("odds API returned %d: %s", resp.StatusCode, string(body))
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, quota, fmt.Errorf("decoding odds response: %w", err)
	}

	if quota.Remaining != "" {
		log.Printf("[odds-client] Fetched %d events (%s requests remaining)", len(events), quota.Remaining)
	}

	return events, quota, nil
}
