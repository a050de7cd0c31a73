package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "2021", r.URL.Query().Get("competitions"))
		assert.Equal(t, "FINISHED", r.URL.Query().Get("status"))
		assert.Equal(t, "2026-08-22", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("dateTo"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resultSet": {"count": 1},
			"matches": [{
				"id": 12345,
				"utcDate": "2026-08-23T14:00:00Z",
				"status": "FINISHED",
				"matchday": 2,
				"homeTeam": {"id": 57, "name": "Arsenal FC"},
				"awayTeam": {"id": 61, "name": "Chelsea FC"},
				"score": {
					"winner": "DRAW",
					"fullTime": {"home": 2, "away": 2},
					"halfTime": {"home": 0, "away": 2}
				}
			}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret-token", 5*time.Second)

	from := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	matches, err := c.FetchMatches(context.Background(), 2021, from, to, StatusFinished)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, 12345, matches[0].ID)
	assert.Equal(t, "Arsenal FC", matches[0].HomeTeam.Name)
	require.NotNil(t, matches[0].Score.FullTime.Home)
	assert.Equal(t, 2, *matches[0].Score.FullTime.Home)
	require.NotNil(t, matches[0].Score.HalfTime.Away)
	assert.Equal(t, 2, *matches[0].Score.HalfTime.Away)
}

func TestClient_FetchStandings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions/2021/standings", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"standings": [{
				"type": "TOTAL",
				"table": [
					{"position": 1, "team": {"id": 64, "name": "Liverpool FC"}, "playedGames": 2, "points": 6},
					{"position": 2, "team": {"id": 57, "name": "Arsenal FC"}, "playedGames": 2, "points": 4}
				]
			}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret-token", 5*time.Second)

	standings, err := c.FetchStandings(context.Background(), 2021)
	require.NoError(t, err)

	rankMap := standings.RankMap()
	assert.Equal(t, map[int]int{64: 1, 57: 2}, rankMap)
}

func TestClient_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "invalid token"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "bad-token", 5*time.Second)

	_, err := c.FetchStandings(context.Background(), 2021)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, "token", 5*time.Second)

	_, err := c.FetchStandings(context.Background(), 2021)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestClient_ContextCancelled(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "token", 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchStandings(ctx, 2021)
	assert.Error(t, err)
}
