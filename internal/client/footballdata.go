package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"eplwatch/analyzer/internal/metrics"
	"eplwatch/analyzer/internal/models"

	"github.com/rs/zerolog/log"
)

// MatchStatus filters the /matches endpoint.
type MatchStatus string

const (
	StatusFinished  MatchStatus = "FINISHED"
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusLive      MatchStatus = "LIVE"
)

// Client is the football-data.org v4 API client
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
}

// NewClient creates a new football-data.org API client.
// The free tier allows 10 requests per minute; the semaphore keeps
// concurrent requests bounded well below that.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	rateLimiter := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rateLimiter,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request to the football-data.org API with rate
// limiting. There is deliberately no retry loop here; callers run on
// a schedule and the next tick retries naturally.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	start := time.Now()

	// Rate limiting: acquire semaphore
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.rateLimiter:
		defer func() { c.rateLimiter <- struct{}{} }()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add headers
	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "eplwatch-analyzer/1.0")

	// Add query parameters
	if len(params) > 0 {
		q := req.URL.Query()
		for key, value := range params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	log.Debug().
		Str("url", url).
		Str("method", req.Method).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordAPICall(path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("API request successful")
		return body, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("API authentication failed (status %d): %s", resp.StatusCode, string(body))

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("API rate limit exceeded (status %d): %s", resp.StatusCode, string(body))

	default:
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// FetchMatches fetches matches for a competition within a date range,
// filtered by status. Dates follow the API's YYYY-MM-DD convention
// and dateTo is exclusive.
func (c *Client) FetchMatches(ctx context.Context, competitionID int, dateFrom, dateTo time.Time, status MatchStatus) ([]models.MatchInput, error) {
	params := map[string]string{
		"competitions": fmt.Sprintf("%d", competitionID),
		"dateFrom":     dateFrom.Format("2006-01-02"),
		"dateTo":       dateTo.Format("2006-01-02"),
		"status":       string(status),
	}

	body, err := c.get(ctx, "matches", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	var resp models.MatchesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	return resp.Matches, nil
}

// FetchStandings fetches the current league table for a competition.
func (c *Client) FetchStandings(ctx context.Context, competitionID int) (*models.StandingsResponse, error) {
	path := fmt.Sprintf("competitions/%d/standings", competitionID)

	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}

	var resp models.StandingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal standings: %w", err)
	}

	return &resp, nil
}
