package repository

import (
	"context"
	"fmt"
	"time"

	"eplwatch/analyzer/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// MatchRepository handles match database operations
type MatchRepository struct {
	db *Database
}

// Upsert inserts or updates a match keyed by its upstream match id
func (r *MatchRepository) Upsert(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (
			match_id, competition_id, matchday, home_team_id, away_team_id,
			home_team_name, away_team_name, match_date, status,
			full_time_home, full_time_away, half_time_home, half_time_away
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (match_id) DO UPDATE SET
			competition_id = EXCLUDED.competition_id,
			matchday = EXCLUDED.matchday,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_team_name = EXCLUDED.home_team_name,
			away_team_name = EXCLUDED.away_team_name,
			match_date = EXCLUDED.match_date,
			status = EXCLUDED.status,
			full_time_home = EXCLUDED.full_time_home,
			full_time_away = EXCLUDED.full_time_away,
			half_time_home = EXCLUDED.half_time_home,
			half_time_away = EXCLUDED.half_time_away,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		match.MatchID, match.CompetitionID, match.Matchday, match.HomeTeamID, match.AwayTeamID,
		match.HomeTeamName, match.AwayTeamName, match.MatchDate, match.Status,
		match.FullTimeHome, match.FullTimeAway, match.HalfTimeHome, match.HalfTimeAway,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}

	log.Debug().
		Int("match_id", match.MatchID).
		Str("home", match.HomeTeamName).
		Str("away", match.AwayTeamName).
		Str("status", match.Status).
		Msg("Match upserted")

	return nil
}

// GetByMatchID retrieves a match by its upstream match id
func (r *MatchRepository) GetByMatchID(ctx context.Context, matchID int) (*models.Match, error) {
	query := `
		SELECT id, match_id, competition_id, matchday, home_team_id, away_team_id,
		       home_team_name, away_team_name, match_date, status,
		       full_time_home, full_time_away, half_time_home, half_time_away,
		       created_at, updated_at
		FROM matches
		WHERE match_id = $1
	`

	var match models.Match
	err := r.db.Pool.QueryRow(ctx, query, matchID).Scan(
		&match.ID, &match.MatchID, &match.CompetitionID, &match.Matchday, &match.HomeTeamID, &match.AwayTeamID,
		&match.HomeTeamName, &match.AwayTeamName, &match.MatchDate, &match.Status,
		&match.FullTimeHome, &match.FullTimeAway, &match.HalfTimeHome, &match.HalfTimeAway,
		&match.CreatedAt, &match.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("match not found: match_id=%d", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return &match, nil
}

// GetFinishedBetween retrieves finished matches for a competition
// within a date window, ordered by match date. This is the input set
// for a ranking run.
func (r *MatchRepository) GetFinishedBetween(ctx context.Context, competitionID int, from, to time.Time) ([]*models.Match, error) {
	query := `
		SELECT id, match_id, competition_id, matchday, home_team_id, away_team_id,
		       home_team_name, away_team_name, match_date, status,
		       full_time_home, full_time_away, half_time_home, half_time_away,
		       created_at, updated_at
		FROM matches
		WHERE competition_id = $1
		  AND status = 'FINISHED'
		  AND match_date >= $2
		  AND match_date < $3
		ORDER BY match_date
	`

	rows, err := r.db.Pool.Query(ctx, query, competitionID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get finished matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		var match models.Match
		err := rows.Scan(
			&match.ID, &match.MatchID, &match.CompetitionID, &match.Matchday, &match.HomeTeamID, &match.AwayTeamID,
			&match.HomeTeamName, &match.AwayTeamName, &match.MatchDate, &match.Status,
			&match.FullTimeHome, &match.FullTimeAway, &match.HalfTimeHome, &match.HalfTimeAway,
			&match.CreatedAt, &match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	log.Debug().Int("count", len(matches)).Msg("Retrieved finished matches")
	return matches, nil
}

// Count returns the total number of matches
func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM matches`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}

	return count, nil
}
