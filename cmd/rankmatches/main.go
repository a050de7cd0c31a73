// Command rankmatches runs one ranking pass over the recent finished
// matches and prints the ordered results. It exists for manual runs
// and cron-less deployments; the worker does the same thing on a
// schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"eplwatch/analyzer/internal/client"
	"eplwatch/analyzer/internal/config"
	"eplwatch/analyzer/internal/excitement"
	"eplwatch/analyzer/internal/repository"

	"github.com/rs/zerolog/log"
)

func main() {
	days := flag.Int("days", 0, "days back to rank (default: LOOKBACK_DAYS)")
	flag.Parse()

	ctx := context.Background()
	cfg := config.MustLoad()

	lookback := cfg.LookbackDays
	if *days > 0 {
		lookback = *days
	}

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     fmt.Sprintf("%d", cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 1. Validate database connectivity
	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	fdClient := client.NewClient(cfg.FootballDataBaseURL, cfg.FootballDataAPIKey, cfg.FootballDataTimeout)

	// 2. Fetch the current standings for league parity context
	log.Info().Msg("Fetching current league standings...")
	rankMap := map[int]int{}
	standings, err := fdClient.FetchStandings(ctx, cfg.CompetitionID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch standings, ranking without league parity")
	} else {
		rankMap = standings.RankMap()
		log.Info().Int("teams", len(rankMap)).Msg("Standings loaded")
	}

	// 3. Fetch finished matches in the window and sync them locally
	now := time.Now()
	dateFrom := now.AddDate(0, 0, -lookback)
	dateTo := now.AddDate(0, 0, 1) // dateTo is exclusive upstream

	log.Info().
		Str("from", dateFrom.Format("2006-01-02")).
		Str("to", now.Format("2006-01-02")).
		Msg("Fetching completed matches...")

	inputs, err := fdClient.FetchMatches(ctx, cfg.CompetitionID, dateFrom, dateTo, client.StatusFinished)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch matches")
	}
	if len(inputs) == 0 {
		log.Info().Int("days", lookback).Msg("No finished matches found in window. Exiting.")
		return
	}

	records := make([]excitement.Match, 0, len(inputs))
	for i := range inputs {
		match := inputs[i].ToMatch(cfg.CompetitionID)
		if err := db.Matches.Upsert(ctx, match); err != nil {
			log.Error().Err(err).Int("match_id", match.MatchID).Msg("Failed to save match. Skipping.")
			continue
		}

		rec, ok := match.ToRecord(rankMap)
		if !ok {
			log.Warn().Int("match_id", match.MatchID).Msg("Finished match has no full-time score. Skipping.")
			continue
		}
		records = append(records, rec)
	}

	// 4. Rank and report
	ranked, skipped, err := excitement.Rank(records, cfg.Weights())
	if err != nil {
		log.Fatal().Err(err).Msg("Ranking failed")
	}

	for _, sk := range skipped {
		log.Warn().Str("match", sk.Match.Label()).Err(sk.Err).Msg("Match excluded from ranking")
	}

	limit := cfg.MaxResults
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

	log.Info().Int("ranked", len(ranked)).Int("skipped", len(skipped)).Msg("Ranking complete.")
}
