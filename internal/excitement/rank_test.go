package excitement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedMatch(home, away string, ftHome, ftAway int) Match {
	return Match{
		HomeTeam: home,
		AwayTeam: away,
		FTHome:   ftHome,
		FTAway:   ftAway,
		Date:     time.Date(2026, 5, 3, 15, 0, 0, 0, time.UTC),
	}
}

func TestRank_DescendingStable(t *testing.T) {
	// B and C share an identical score line, A scores lower. The
	// expected order is B, C, A with B retained before C.
	matches := []Match{
		namedMatch("Fulham", "Brentford", 0, 0),   // A
		namedMatch("Arsenal", "Liverpool", 3, 2),  // B
		namedMatch("Everton", "Newcastle", 3, 2),  // C
	}

	ranked, skipped, err := Rank(matches, DefaultWeights())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Arsenal", ranked[0].Match.HomeTeam)
	assert.Equal(t, "Everton", ranked[1].Match.HomeTeam)
	assert.Equal(t, "Fulham", ranked[2].Match.HomeTeam)

	assert.Equal(t, ranked[0].Breakdown.Normalized, ranked[1].Breakdown.Normalized,
		"tie-break case requires equal scores")
	assert.Greater(t, ranked[1].Breakdown.Normalized, ranked[2].Breakdown.Normalized)
}

func TestRank_EmptyInput(t *testing.T) {
	ranked, skipped, err := Rank(nil, DefaultWeights())
	require.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Empty(t, skipped)
}

func TestRank_SkipsMalformedMatches(t *testing.T) {
	bad := namedMatch("Spurs", "West Ham", 1, 0)
	bad.HTHome = 3 // half-time goals exceed full-time goals

	matches := []Match{
		namedMatch("Arsenal", "Liverpool", 2, 2),
		bad,
		namedMatch("Everton", "Newcastle", 1, 0),
	}

	ranked, skipped, err := Rank(matches, DefaultWeights())
	require.NoError(t, err)

	assert.Len(t, ranked, 2, "malformed match is excluded, batch continues")
	require.Len(t, skipped, 1)
	assert.Equal(t, "Spurs", skipped[0].Match.HomeTeam)
	assert.ErrorIs(t, skipped[0].Err, ErrInvalidMatchData)
}

func TestRank_InvalidWeightsFatal(t *testing.T) {
	matches := []Match{namedMatch("Arsenal", "Liverpool", 2, 2)}

	w := DefaultWeights()
	w.Goal = -1

	ranked, skipped, err := Rank(matches, w)
	assert.ErrorIs(t, err, ErrInvalidWeights)
	assert.Nil(t, ranked)
	assert.Nil(t, skipped)
}
