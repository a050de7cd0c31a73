package repository

import (
	"context"
	"fmt"

	"eplwatch/analyzer/internal/models"

	"github.com/rs/zerolog/log"
)

// StandingRepository handles standings database operations
type StandingRepository struct {
	db *Database
}

// ReplaceForCompetition atomically replaces the standings snapshot
// for a competition. Standings are a snapshot, not a history: stale
// rows for relegated or renamed teams must not linger.
func (r *StandingRepository) ReplaceForCompetition(ctx context.Context, competitionID int, standings []*models.Standing) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM standings WHERE competition_id = $1`, competitionID); err != nil {
		return fmt.Errorf("failed to clear standings: %w", err)
	}

	query := `
		INSERT INTO standings (
			competition_id, team_id, team_name, position,
			played_games, points, goal_difference
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, s := range standings {
		if _, err := tx.Exec(ctx, query,
			s.CompetitionID, s.TeamID, s.TeamName, s.Position,
			s.PlayedGames, s.Points, s.GoalDifference,
		); err != nil {
			return fmt.Errorf("failed to insert standing for team %d: %w", s.TeamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}

	log.Debug().
		Int("competition_id", competitionID).
		Int("count", len(standings)).
		Msg("Standings snapshot replaced")

	return nil
}

// RankMap returns the team id -> league position lookup for a
// competition. An empty map means no standings snapshot is stored;
// scoring degrades to zero league parity rather than failing.
func (r *StandingRepository) RankMap(ctx context.Context, competitionID int) (map[int]int, error) {
	query := `
		SELECT team_id, position
		FROM standings
		WHERE competition_id = $1
		ORDER BY position
	`

	rows, err := r.db.Pool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	defer rows.Close()

	rankMap := make(map[int]int)
	for rows.Next() {
		var teamID, position int
		if err := rows.Scan(&teamID, &position); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		rankMap[teamID] = position
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}

	return rankMap, nil
}

// Count returns the number of teams in the stored snapshot
func (r *StandingRepository) Count(ctx context.Context, competitionID int) (int, error) {
	query := `SELECT COUNT(*) FROM standings WHERE competition_id = $1`

	var count int
	err := r.db.Pool.QueryRow(ctx, query, competitionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count standings: %w", err)
	}

	return count, nil
}
