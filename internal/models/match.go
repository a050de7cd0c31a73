package models

import (
	"database/sql"
	"time"

	"eplwatch/analyzer/internal/excitement"
)

// Match represents a league match as stored in the database.
type Match struct {
	ID            int       `db:"id"`
	MatchID       int       `db:"match_id"`
	CompetitionID int       `db:"competition_id"`
	Matchday      int       `db:"matchday"`
	HomeTeamID    int       `db:"home_team_id"`
	AwayTeamID    int       `db:"away_team_id"`
	HomeTeamName  string    `db:"home_team_name"`
	AwayTeamName  string    `db:"away_team_name"`
	MatchDate     time.Time `db:"match_date"`
	Status        string    `db:"status"`

	// Scores
	FullTimeHome sql.NullInt32 `db:"full_time_home"`
	FullTimeAway sql.NullInt32 `db:"full_time_away"`
	HalfTimeHome sql.NullInt32 `db:"half_time_home"`
	HalfTimeAway sql.NullInt32 `db:"half_time_away"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamRef is the nested team reference in API match payloads.
type TeamRef struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

// ScorePair holds one period's goals. The API sends null for periods
// it has no data for.
type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// MatchScore is the nested score object in API match payloads.
type MatchScore struct {
	Winner   string    `json:"winner"`
	Duration string    `json:"duration"`
	FullTime ScorePair `json:"fullTime"`
	HalfTime ScorePair `json:"halfTime"`
}

// MatchInput is one match as returned by the football-data.org v4 API.
type MatchInput struct {
	ID       int        `json:"id"`
	UTCDate  string     `json:"utcDate"` // ISO 8601
	Status   string     `json:"status"`
	Matchday int        `json:"matchday"`
	HomeTeam TeamRef    `json:"homeTeam"`
	AwayTeam TeamRef    `json:"awayTeam"`
	Score    MatchScore `json:"score"`
}

// MatchesResponse is the envelope of the /matches endpoint.
type MatchesResponse struct {
	ResultSet struct {
		Count int `json:"count"`
	} `json:"resultSet"`
	Matches []MatchInput `json:"matches"`
}

// ToMatch converts MatchInput (from API) to the Match model.
func (mi *MatchInput) ToMatch(competitionID int) *Match {
	match := &Match{
		MatchID:       mi.ID,
		CompetitionID: competitionID,
		Matchday:      mi.Matchday,
		HomeTeamID:    mi.HomeTeam.ID,
		AwayTeamID:    mi.AwayTeam.ID,
		HomeTeamName:  mi.HomeTeam.Name,
		AwayTeamName:  mi.AwayTeam.Name,
		Status:        mi.Status,
	}

	if matchTime, err := time.Parse(time.RFC3339, mi.UTCDate); err == nil {
		match.MatchDate = matchTime
	}

	if mi.Score.FullTime.Home != nil {
		match.FullTimeHome = sql.NullInt32{Int32: int32(*mi.Score.FullTime.Home), Valid: true}
	}
	if mi.Score.FullTime.Away != nil {
		match.FullTimeAway = sql.NullInt32{Int32: int32(*mi.Score.FullTime.Away), Valid: true}
	}
	if mi.Score.HalfTime.Home != nil {
		match.HalfTimeHome = sql.NullInt32{Int32: int32(*mi.Score.HalfTime.Home), Valid: true}
	}
	if mi.Score.HalfTime.Away != nil {
		match.HalfTimeAway = sql.NullInt32{Int32: int32(*mi.Score.HalfTime.Away), Valid: true}
	}

	return match
}

// IsFinished returns true if the match has been played to completion.
func (m *Match) IsFinished() bool {
	return m.Status == "FINISHED"
}

// HasFullTimeScore reports whether both full-time goal counts are
// present. A finished match without them cannot be scored.
func (m *Match) HasFullTimeScore() bool {
	return m.FullTimeHome.Valid && m.FullTimeAway.Valid
}

// ToRecord converts the stored match into a scoring record, resolving
// optional ranks from the standings snapshot. It returns false when
// the match has no full-time score. Missing half-time data defaults
// to 0-0, which can never fake a comeback.
func (m *Match) ToRecord(rankMap map[int]int) (excitement.Match, bool) {
	if !m.HasFullTimeScore() {
		return excitement.Match{}, false
	}

	rec := excitement.Match{
		HomeTeam: m.HomeTeamName,
		AwayTeam: m.AwayTeamName,
		FTHome:   int(m.FullTimeHome.Int32),
		FTAway:   int(m.FullTimeAway.Int32),
		Date:     m.MatchDate,
	}

	if m.HalfTimeHome.Valid {
		rec.HTHome = int(m.HalfTimeHome.Int32)
	}
	if m.HalfTimeAway.Valid {
		rec.HTAway = int(m.HalfTimeAway.Int32)
	}

	if rank, ok := rankMap[m.HomeTeamID]; ok {
		r := rank
		rec.HomeRank = &r
	}
	if rank, ok := rankMap[m.AwayTeamID]; ok {
		r := rank
		rec.AwayRank = &r
	}

	return rec, true
}
