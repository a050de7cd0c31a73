// Package excitement computes normalized excitement scores for
// completed football matches and ranks them.
//
// Scoring is a pure function of the match record and a Weights
// configuration: four weighted sub-factors (goal action, parity,
// late drama, league parity) are summed into a raw total and
// normalized into the 1-10 display range. No I/O, no ambient state.
package excitement

import (
	"errors"
	"fmt"
	"time"
)

// Scoring policy constants. These are deliberately fixed rather than
// configurable: the weights tune the balance between sub-factors, the
// constants pin what each sub-factor means.
const (
	// closenessThreshold is the maximum goal difference still
	// considered a close match. Parity decays linearly from this
	// threshold and floors at zero.
	closenessThreshold = 3.0

	// comebackBonus is awarded when a half-time lead of 2+ goals
	// erodes to a one-goal margin or less by full time.
	comebackBonus = 2.5

	// highScoringDrawBonus is awarded for a draw with 4+ total goals.
	highScoringDrawBonus = 2.5

	// matchupParityBaseline scales the bonus for games between
	// similarly placed teams: baseline / (1 + rank gap).
	matchupParityBaseline = 1.0

	// upsetWinDivisor and upsetDrawDivisor scale the upset bonus with
	// the rank gap when the worse-ranked side wins or draws.
	upsetWinDivisor  = 8.0
	upsetDrawDivisor = 16.0

	// Normalized scores are clamped to the advertised display range.
	normalizedFloor   = 1.0
	normalizedCeiling = 10.0
)

// Error kinds. Callers distinguish them with errors.Is.
var (
	// ErrInvalidMatchData marks malformed goal counts: a negative
	// value, or a half-time score exceeding the full-time score.
	ErrInvalidMatchData = errors.New("invalid match data")

	// ErrInvalidWeights marks a non-positive weight or normalization
	// ceiling. Weights apply to a whole run, so this is fatal.
	ErrInvalidWeights = errors.New("invalid weights")
)

// Match is one finished match as supplied by the data layer.
// Ranks are optional: nil means the team was absent from the
// standings snapshot, which degrades the league parity factor to
// zero rather than failing.
type Match struct {
	HomeTeam string
	AwayTeam string
	FTHome   int
	FTAway   int
	HTHome   int
	HTAway   int
	Date     time.Time
	HomeRank *int // league position, 1 = top; nil if unknown
	AwayRank *int
}

// Label returns a human-readable identifier for display and logging,
// e.g. "Arsenal vs Chelsea 2-1 (2026-05-03)".
func (m Match) Label() string {
	return fmt.Sprintf("%s vs %s %d-%d (%s)",
		m.HomeTeam, m.AwayTeam, m.FTHome, m.FTAway, m.Date.Format("2006-01-02"))
}

// validate checks the structural invariants of a match record.
func (m Match) validate() error {
	if m.FTHome < 0 || m.FTAway < 0 || m.HTHome < 0 || m.HTAway < 0 {
		return fmt.Errorf("%w: negative goal count in %s", ErrInvalidMatchData, m.Label())
	}
	if m.HTHome > m.FTHome {
		return fmt.Errorf("%w: home half-time goals %d exceed full-time goals %d",
			ErrInvalidMatchData, m.HTHome, m.FTHome)
	}
	if m.HTAway > m.FTAway {
		return fmt.Errorf("%w: away half-time goals %d exceed full-time goals %d",
			ErrInvalidMatchData, m.HTAway, m.FTAway)
	}
	return nil
}

// Weights configures the scorer. It is an immutable value passed
// explicitly into Score; nothing is read from global state.
type Weights struct {
	Goal         float64
	Parity       float64
	Drama        float64
	LeagueParity float64

	// MaxRealisticRaw is the calibration ceiling for normalization:
	// a raw total at this value maps to the top of the display range.
	MaxRealisticRaw float64
}

// DefaultWeights returns the calibrated production defaults.
func DefaultWeights() Weights {
	return Weights{
		Goal:            4.0,
		Parity:          3.0,
		Drama:           5.0,
		LeagueParity:    2.0,
		MaxRealisticRaw: 85.0,
	}
}

// Validate reports ErrInvalidWeights if any weight or the
// normalization ceiling is not strictly positive.
func (w Weights) Validate() error {
	if w.Goal <= 0 || w.Parity <= 0 || w.Drama <= 0 || w.LeagueParity <= 0 {
		return fmt.Errorf("%w: all weights must be positive (goal=%g parity=%g drama=%g lpf=%g)",
			ErrInvalidWeights, w.Goal, w.Parity, w.Drama, w.LeagueParity)
	}
	if w.MaxRealisticRaw <= 0 {
		return fmt.Errorf("%w: max realistic raw score must be positive, got %g",
			ErrInvalidWeights, w.MaxRealisticRaw)
	}
	return nil
}

// Breakdown is the per-match scoring result: the four weighted
// sub-components, their raw sum, and the normalized display score.
type Breakdown struct {
	Goal         float64
	Parity       float64
	Drama        float64
	LeagueParity float64
	RawTotal     float64

	// Normalized is the excitement score in [1, 10].
	Normalized float64
}

// Score computes the excitement breakdown for one finished match.
// It is deterministic: identical inputs always produce identical
// output.
func Score(m Match, w Weights) (Breakdown, error) {
	if err := w.Validate(); err != nil {
		return Breakdown{}, err
	}
	if err := m.validate(); err != nil {
		return Breakdown{}, err
	}

	totalGoals := m.FTHome + m.FTAway
	goalDiff := absInt(m.FTHome - m.FTAway)

	b := Breakdown{
		Goal:         w.Goal * float64(totalGoals),
		Parity:       w.Parity * max(0, closenessThreshold-float64(goalDiff)),
		Drama:        w.Drama * dramaPoints(m, goalDiff, totalGoals),
		LeagueParity: w.LeagueParity * leagueParityPoints(m),
	}
	b.RawTotal = b.Goal + b.Parity + b.Drama + b.LeagueParity
	b.Normalized = clamp(b.RawTotal/w.MaxRealisticRaw*10.0, normalizedFloor, normalizedCeiling)

	return b, nil
}

// dramaPoints sums the late-drama bonuses. Both can fire for the
// same match: a 2+ goal half-time lead eroded to a near-tie, and a
// draw with four or more goals.
func dramaPoints(m Match, goalDiff, totalGoals int) float64 {
	points := 0.0

	htDiff := absInt(m.HTHome - m.HTAway)
	if htDiff >= 2 && goalDiff <= 1 {
		points += comebackBonus
	}

	if goalDiff == 0 && totalGoals >= 4 {
		points += highScoringDrawBonus
	}

	return points
}

// leagueParityPoints computes the league parity factor from the
// standings context. Missing ranks degrade to zero, they are not an
// error: the ranking still works without a standings snapshot.
func leagueParityPoints(m Match) float64 {
	if m.HomeRank == nil || m.AwayRank == nil {
		return 0
	}

	rankGap := float64(absInt(*m.HomeRank - *m.AwayRank))
	points := matchupParityBaseline / (1.0 + rankGap)

	// Upset context: the worse-ranked side (numerically higher
	// position) avoiding defeat is worth more the bigger the gap.
	homeIsUnderdog := *m.HomeRank > *m.AwayRank
	switch {
	case m.FTHome == m.FTAway && rankGap > 0:
		points += rankGap / upsetDrawDivisor
	case homeIsUnderdog && m.FTHome > m.FTAway:
		points += rankGap / upsetWinDivisor
	case !homeIsUnderdog && m.FTAway > m.FTHome:
		points += rankGap / upsetWinDivisor
	}

	return points
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
