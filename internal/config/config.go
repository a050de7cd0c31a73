package config

import (
	"fmt"
	"os"
	"time"

	"eplwatch/analyzer/internal/excitement"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// football-data.org API
	FootballDataAPIKey  string        `envconfig:"FOOTBALL_DATA_API_KEY" required:"true"`
	FootballDataBaseURL string        `envconfig:"FOOTBALL_DATA_BASE_URL" default:"https://api.football-data.org/v4"`
	FootballDataTimeout time.Duration `envconfig:"FOOTBALL_DATA_TIMEOUT" default:"30s"`
	CompetitionID       int           `envconfig:"COMPETITION_ID" default:"2021"` // Premier League

	// Scoring weights
	GoalWeight           float64 `envconfig:"GOAL_WEIGHT" default:"4.0"`
	ParityWeight         float64 `envconfig:"PARITY_WEIGHT" default:"3.0"`
	DramaWeight          float64 `envconfig:"DRAMA_WEIGHT" default:"5.0"`
	LeagueParityWeight   float64 `envconfig:"LEAGUE_PARITY_WEIGHT" default:"2.0"`
	MaxRealisticRawScore float64 `envconfig:"MAX_REALISTIC_RAW_SCORE" default:"85.0"`

	// Ranking
	LookbackDays int `envconfig:"LOOKBACK_DAYS" default:"7"`
	MaxResults   int `envconfig:"MAX_RESULTS" default:"10"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"eplwatch"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"eplwatch_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler      bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled   bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	StandingsRefreshCron string `envconfig:"STANDINGS_REFRESH_CRON" default:"0 2 * * *"`
	RankingPollInterval  int    `envconfig:"RANKING_POLL_INTERVAL" default:"900"` // seconds

	// Caching TTL (in seconds)
	CacheTTLStandings int `envconfig:"CACHE_TTL_STANDINGS" default:"3600"` // 1 hour

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration. Invalid scoring weights are a
// startup failure since they apply to every match in a run.
func (c *Config) Validate() error {
	if c.FootballDataAPIKey == "" {
		return fmt.Errorf("FOOTBALL_DATA_API_KEY is required")
	}

	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.CompetitionID <= 0 {
		return fmt.Errorf("COMPETITION_ID must be positive")
	}

	if c.LookbackDays <= 0 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive")
	}

	if err := c.Weights().Validate(); err != nil {
		return err
	}

	return nil
}

// Weights assembles the immutable scoring configuration that gets
// passed by value into the excitement scorer.
func (c *Config) Weights() excitement.Weights {
	return excitement.Weights{
		Goal:            c.GoalWeight,
		Parity:          c.ParityWeight,
		Drama:           c.DramaWeight,
		LeagueParity:    c.LeagueParityWeight,
		MaxRealisticRaw: c.MaxRealisticRawScore,
	}
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
