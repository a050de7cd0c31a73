//go:build integration

package repository

import (
	"database/sql"
	"testing"
	"time"

	"eplwatch/analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	match := &models.Match{
		MatchID:       50001,
		CompetitionID: 2021,
		Matchday:      3,
		HomeTeamID:    57,
		AwayTeamID:    61,
		HomeTeamName:  "Arsenal FC",
		AwayTeamName:  "Chelsea FC",
		MatchDate:     time.Now().Add(24 * time.Hour),
		Status:        "SCHEDULED",
	}

	// Insert match
	err := db.Matches.Upsert(ctx, match)
	require.NoError(t, err, "Should insert match")

	// Retrieve and verify
	retrieved, err := db.Matches.GetByMatchID(ctx, 50001)
	require.NoError(t, err, "Should retrieve match")
	assert.Equal(t, match.CompetitionID, retrieved.CompetitionID)
	assert.Equal(t, "Arsenal FC", retrieved.HomeTeamName)
	assert.Equal(t, "SCHEDULED", retrieved.Status)
	assert.False(t, retrieved.HasFullTimeScore())

	// Update with full-time result
	match.Status = "FINISHED"
	match.FullTimeHome = sql.NullInt32{Int32: 2, Valid: true}
	match.FullTimeAway = sql.NullInt32{Int32: 2, Valid: true}
	match.HalfTimeHome = sql.NullInt32{Int32: 0, Valid: true}
	match.HalfTimeAway = sql.NullInt32{Int32: 2, Valid: true}

	err = db.Matches.Upsert(ctx, match)
	require.NoError(t, err, "Should update match")

	// Verify update
	updated, err := db.Matches.GetByMatchID(ctx, 50001)
	require.NoError(t, err)
	assert.Equal(t, "FINISHED", updated.Status)
	assert.True(t, updated.HasFullTimeScore())
	assert.Equal(t, int32(2), updated.FullTimeHome.Int32)
	assert.Equal(t, int32(2), updated.HalfTimeAway.Int32)
}

func TestMatchRepository_GetFinishedBetween(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	now := time.Now()

	matches := []*models.Match{
		{MatchID: 51001, CompetitionID: 2021, HomeTeamID: 1, AwayTeamID: 2,
			HomeTeamName: "A", AwayTeamName: "B", Status: "FINISHED",
			MatchDate:    now.Add(-48 * time.Hour),
			FullTimeHome: sql.NullInt32{Int32: 1, Valid: true},
			FullTimeAway: sql.NullInt32{Int32: 0, Valid: true}},
		{MatchID: 51002, CompetitionID: 2021, HomeTeamID: 3, AwayTeamID: 4,
			HomeTeamName: "C", AwayTeamName: "D", Status: "FINISHED",
			MatchDate:    now.Add(-24 * time.Hour),
			FullTimeHome: sql.NullInt32{Int32: 3, Valid: true},
			FullTimeAway: sql.NullInt32{Int32: 3, Valid: true}},
		{MatchID: 51003, CompetitionID: 2021, HomeTeamID: 5, AwayTeamID: 6,
			HomeTeamName: "E", AwayTeamName: "F", Status: "SCHEDULED",
			MatchDate: now.Add(24 * time.Hour)},
		{MatchID: 51004, CompetitionID: 2021, HomeTeamID: 7, AwayTeamID: 8,
			HomeTeamName: "G", AwayTeamName: "H", Status: "FINISHED",
			MatchDate:    now.Add(-30 * 24 * time.Hour), // outside window
			FullTimeHome: sql.NullInt32{Int32: 2, Valid: true},
			FullTimeAway: sql.NullInt32{Int32: 1, Valid: true}},
	}

	for _, m := range matches {
		require.NoError(t, db.Matches.Upsert(ctx, m))
	}

	finished, err := db.Matches.GetFinishedBetween(ctx, 2021, now.Add(-7*24*time.Hour), now)
	require.NoError(t, err, "Should retrieve finished matches")
	assert.Len(t, finished, 2, "Only finished matches inside the window")

	// Ordered by match date ascending
	assert.Equal(t, 51001, finished[0].MatchID)
	assert.Equal(t, 51002, finished[1].MatchID)

	for _, m := range finished {
		assert.Equal(t, "FINISHED", m.Status)
	}
}
