package models

import "time"

// Standing represents one team's row in the league table.
type Standing struct {
	ID            int       `db:"id"`
	CompetitionID int       `db:"competition_id"`
	TeamID        int       `db:"team_id"`
	TeamName      string    `db:"team_name"`
	Position      int       `db:"position"`
	PlayedGames   int       `db:"played_games"`
	Points        int       `db:"points"`
	GoalDifference int      `db:"goal_difference"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// StandingEntry is one table row as returned by the standings API.
type StandingEntry struct {
	Position       int     `json:"position"`
	Team           TeamRef `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Points         int     `json:"points"`
	GoalDifference int     `json:"goalDifference"`
}

// StandingsTable is one table in the standings response. The API
// returns several per competition (TOTAL, HOME, AWAY).
type StandingsTable struct {
	Type  string          `json:"type"`
	Table []StandingEntry `json:"table"`
}

// StandingsResponse is the envelope of the competition standings
// endpoint.
type StandingsResponse struct {
	Standings []StandingsTable `json:"standings"`
}

// ToStanding converts a StandingEntry (from API) to the Standing
// model.
func (se *StandingEntry) ToStanding(competitionID int) *Standing {
	return &Standing{
		CompetitionID:  competitionID,
		TeamID:         se.Team.ID,
		TeamName:       se.Team.Name,
		Position:       se.Position,
		PlayedGames:    se.PlayedGames,
		Points:         se.Points,
		GoalDifference: se.GoalDifference,
	}
}

// RankMap flattens the TOTAL table into a team id -> league position
// lookup. An empty map is returned when no TOTAL table is present;
// scoring degrades gracefully without it.
func (sr *StandingsResponse) RankMap() map[int]int {
	rankMap := make(map[int]int)
	for _, table := range sr.Standings {
		if table.Type != "TOTAL" {
			continue
		}
		for _, entry := range table.Table {
			rankMap[entry.Team.ID] = entry.Position
		}
		break
	}
	return rankMap
}
