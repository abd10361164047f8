package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

const (
	BaseURL       = "https://site.api.espn.com/apis/site/v2/sports"
	BasketballNBA = "basketball/nba"
)

// Client handles ESPN API requests
// Note: Uses curl internally because ESPN blocks Go's HTTP client fingerprint
type Client struct {
	baseURL string
}

// New creates a new ESPN API client with a custom base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
	}
}

// NewClient creates a new ESPN API client with default settings
func NewClient() *Client {
	return New(BaseURL)
}

// FetchScoreboard fetches the slate for a specific date.
// If date is zero, fetches ESPN's "today" (includes games within ~24 hours).
func (c *Client) FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	var url string
	if date.IsZero() {
		url = fmt.Sprintf("%s/%s/scoreboard", c.baseURL, BasketballNBA)
	} else {
		// Specific date in YYYYMMDD format
		url = fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, BasketballNBA, date.Format("20060102"))
	}

	return c.fetch(ctx, url)
}

// FetchTeamSchedule fetches a team's season schedule, the source for
// recent-game history (streaks, last game, season average).
func (c *Client) FetchTeamSchedule(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/teams/%s/schedule?season=%d", c.baseURL, BasketballNBA, teamID, season)
	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request using curl
// ESPN blocks Go's HTTP client but curl works reliably
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", url)

	log.Printf("[espn-client] Running: curl -s -L -m 15 %s", url)

	output, err := cmd.Output()
	if err != nil {
		log.Printf("[espn-client] ❌ curl failed: %v", err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	// Check if we got HTML error page (403, 404, etc.)
	if len(output) > 0 && output[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, string(output[:min(len(output), 200)]))
	}

	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
