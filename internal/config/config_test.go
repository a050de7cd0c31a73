package config

import (
	"testing"

	"eplwatch/analyzer/internal/excitement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("FOOTBALL_DATA_API_KEY", "test-token")
	t.Setenv("DATABASE_PASSWORD", "test-password")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.football-data.org/v4", cfg.FootballDataBaseURL)
	assert.Equal(t, 2021, cfg.CompetitionID)
	assert.Equal(t, 4.0, cfg.GoalWeight)
	assert.Equal(t, 3.0, cfg.ParityWeight)
	assert.Equal(t, 5.0, cfg.DramaWeight)
	assert.Equal(t, 2.0, cfg.LeagueParityWeight)
	assert.Equal(t, 85.0, cfg.MaxRealisticRawScore)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_WeightOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOAL_WEIGHT", "6.5")
	t.Setenv("MAX_REALISTIC_RAW_SCORE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	w := cfg.Weights()
	assert.Equal(t, 6.5, w.Goal)
	assert.Equal(t, 100.0, w.MaxRealisticRaw)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("FOOTBALL_DATA_API_KEY", "")
	t.Setenv("DATABASE_PASSWORD", "test-password")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidWeightsFatal(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DRAMA_WEIGHT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, excitement.ErrInvalidWeights)
}

func TestLoad_InvalidLookback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOOKBACK_DAYS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_RedisAddr(t *testing.T) {
	cfg := Config{RedisHost: "cache.internal", RedisPort: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
