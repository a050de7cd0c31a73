package scheduler

import (
	"context"
	"fmt"
	"time"

	"eplwatch/analyzer/internal/cache"
	"eplwatch/analyzer/internal/client"
	"eplwatch/analyzer/internal/config"
	"eplwatch/analyzer/internal/excitement"
	"eplwatch/analyzer/internal/metrics"
	"eplwatch/analyzer/internal/models"
	"eplwatch/analyzer/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler manages background tasks for the excitement analyzer:
// - Nightly standings refresh (league tables move slowly)
// - Periodic ranking runs over the recent finished matches
type Scheduler struct {
	cfg      *config.Config
	client   *client.Client
	db       *repository.Database
	cache    *cache.RedisCache // may be nil; ranking works without it
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, client *client.Client, db *repository.Database, redisCache *cache.RedisCache) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		client:   client,
		db:       db,
		cache:    redisCache,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	// Setup nightly standings refresh cron job
	if _, err := s.cron.AddFunc(s.cfg.StandingsRefreshCron, func() {
		log.Info().Msg("Running standings refresh...")
		if err := s.RefreshStandings(ctx); err != nil {
			log.Error().Err(err).Msg("Standings refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule standings refresh: %w", err)
	}

	// Start cron scheduler
	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.StandingsRefreshCron).
		Msg("Standings refresh scheduled")

	// Start ranking poll ticker
	interval := time.Duration(s.cfg.RankingPollInterval) * time.Second
	s.ticker = time.NewTicker(interval)
	log.Info().
		Dur("interval", interval).
		Msg("Ranking poll started")

	// Start polling goroutine
	go s.pollRankings(ctx)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// pollRankings periodically re-ranks the recent finished matches
func (s *Scheduler) pollRankings(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping ranking poll")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping ranking poll")
			return
		case <-s.ticker.C:
			if err := s.RunRanking(ctx); err != nil {
				log.Error().Err(err).Msg("Ranking run failed")
				metrics.RecordError("scheduler", "ranking_run")
			}
		}
	}
}

// RefreshStandings fetches the current league table, replaces the
// stored snapshot and repopulates the cache.
func (s *Scheduler) RefreshStandings(ctx context.Context) error {
	resp, err := s.client.FetchStandings(ctx, s.cfg.CompetitionID)
	if err != nil {
		return fmt.Errorf("failed to fetch standings: %w", err)
	}

	var rows []*models.Standing
	for _, table := range resp.Standings {
		if table.Type != "TOTAL" {
			continue
		}
		for i := range table.Table {
			rows = append(rows, table.Table[i].ToStanding(s.cfg.CompetitionID))
		}
		break
	}

	if len(rows) == 0 {
		log.Warn().Msg("No standings data found")
		return nil
	}

	if err := s.db.Standings.ReplaceForCompetition(ctx, s.cfg.CompetitionID, rows); err != nil {
		return err
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.CacheTTLStandings) * time.Second
		if err := s.cache.SetRankMap(ctx, s.cfg.CompetitionID, resp.RankMap(), ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache rank map")
		}
	}

	log.Info().Int("teams", len(rows)).Msg("Standings refreshed")
	return nil
}

// RunRanking fetches the finished matches in the lookback window,
// scores and ranks them, and reports the results. Malformed matches
// are logged by label and skipped; they never abort the run.
func (s *Scheduler) RunRanking(ctx context.Context) error {
	start := time.Now()

	now := time.Now()
	dateFrom := now.AddDate(0, 0, -s.cfg.LookbackDays)
	dateTo := now.AddDate(0, 0, 1) // dateTo is exclusive upstream

	// Pull the latest finished matches into the local store.
	inputs, err := s.client.FetchMatches(ctx, s.cfg.CompetitionID, dateFrom, dateTo, client.StatusFinished)
	if err != nil {
		metrics.RecordRankingRun("failure", time.Since(start).Seconds(), 0, 0)
		return fmt.Errorf("failed to fetch finished matches: %w", err)
	}

	saved := 0
	for i := range inputs {
		match := inputs[i].ToMatch(s.cfg.CompetitionID)
		if err := s.db.Matches.Upsert(ctx, match); err != nil {
			log.Error().Err(err).Int("match_id", match.MatchID).Msg("Failed to save match")
			continue
		}
		saved++
	}
	log.Info().Int("fetched", len(inputs)).Int("saved", saved).Msg("Finished matches synced")

	rankMap, err := s.loadRankMap(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Standings unavailable, ranking without league parity")
		rankMap = map[int]int{}
	}

	// Score from the stored rows so a run also covers matches synced
	// by earlier ticks that the API window no longer returns.
	stored, err := s.db.Matches.GetFinishedBetween(ctx, s.cfg.CompetitionID, dateFrom, dateTo)
	if err != nil {
		metrics.RecordRankingRun("failure", time.Since(start).Seconds(), 0, 0)
		return fmt.Errorf("failed to load finished matches: %w", err)
	}

	records := make([]excitement.Match, 0, len(stored))
	for _, m := range stored {
		rec, ok := m.ToRecord(rankMap)
		if !ok {
			log.Warn().Int("match_id", m.MatchID).Msg("Finished match has no full-time score, skipping")
			continue
		}
		records = append(records, rec)
	}

	ranked, skipped, err := excitement.Rank(records, s.cfg.Weights())
	if err != nil {
		metrics.RecordRankingRun("failure", time.Since(start).Seconds(), 0, 0)
		return fmt.Errorf("ranking failed: %w", err)
	}

	for _, sk := range skipped {
		log.Warn().
			Str("match", sk.Match.Label()).
			Err(sk.Err).
			Msg("Match excluded from ranking")
	}

	s.reportRanking(ranked)

	if len(ranked) > 0 {
		metrics.TopExcitementScore.Set(ranked[0].Breakdown.Normalized)
	}
	metrics.RecordRankingRun("success", time.Since(start).Seconds(), len(ranked), len(skipped))
	s.updateIngestionStats(ctx)

	log.Info().
		Int("ranked", len(ranked)).
		Int("skipped", len(skipped)).
		Dur("duration", time.Since(start)).
		Msg("Ranking run complete")

	return nil
}

// reportRanking logs the top matches with their score breakdowns.
func (s *Scheduler) reportRanking(ranked []excitement.Ranked) {
	limit := s.cfg.MaxResults
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	for i := 0; i < limit; i++ {
		r := ranked[i]
		log.Info().
			Int("rank", i+1).
			Str("match", r.Match.Label()).
			Float64("score", r.Breakdown.Normalized).
			Float64("goal", r.Breakdown.Goal).
			Float64("parity", r.Breakdown.Parity).
			Float64("drama", r.Breakdown.Drama).
			Float64("league_parity", r.Breakdown.LeagueParity).
			Msg("Ranked match")
	}
}

// loadRankMap resolves the standings lookup: cache first, then the
// stored snapshot, then a refresh from the API as a last resort.
func (s *Scheduler) loadRankMap(ctx context.Context) (map[int]int, error) {
	if s.cache != nil {
		rankMap, ok, err := s.cache.GetRankMap(ctx, s.cfg.CompetitionID)
		if err != nil {
			log.Warn().Err(err).Msg("Rank map cache lookup failed")
		} else if ok {
			return rankMap, nil
		}
	}

	rankMap, err := s.db.Standings.RankMap(ctx, s.cfg.CompetitionID)
	if err != nil {
		return nil, err
	}

	if len(rankMap) == 0 {
		if err := s.RefreshStandings(ctx); err != nil {
			return nil, err
		}
		rankMap, err = s.db.Standings.RankMap(ctx, s.cfg.CompetitionID)
		if err != nil {
			return nil, err
		}
	}

	if s.cache != nil && len(rankMap) > 0 {
		ttl := time.Duration(s.cfg.CacheTTLStandings) * time.Second
		if err := s.cache.SetRankMap(ctx, s.cfg.CompetitionID, rankMap, ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache rank map")
		}
	}

	return rankMap, nil
}

func (s *Scheduler) updateIngestionStats(ctx context.Context) {
	matches, err := s.db.Matches.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count matches")
		return
	}
	teams, err := s.db.Standings.Count(ctx, s.cfg.CompetitionID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count standings")
		return
	}
	metrics.UpdateIngestionStats(int64(matches), int64(teams))
}
