package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eplwatch/analyzer/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache caches the standings rank map between refreshes so a
// ranking run does not hit the database or the upstream API for a
// table that changes at most a few times a day.
type RedisCache struct {
	client *redis.Client
}

// Config holds Redis configuration
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisCache creates a new Redis cache client
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func standingsKey(competitionID int) string {
	return fmt.Sprintf("standings:rankmap:%d", competitionID)
}

// GetRankMap returns the cached rank map for a competition. The
// second return value is false on a cache miss.
func (c *RedisCache) GetRankMap(ctx context.Context, competitionID int) (map[int]int, bool, error) {
	data, err := c.client.Get(ctx, standingsKey(competitionID)).Bytes()
	if err == redis.Nil {
		metrics.RecordCacheMiss()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rank map from cache: %w", err)
	}

	var rankMap map[int]int
	if err := json.Unmarshal(data, &rankMap); err != nil {
		// Treat a corrupt entry as a miss; the caller repopulates it.
		metrics.RecordCacheMiss()
		log.Warn().Err(err).Int("competition_id", competitionID).Msg("Corrupt rank map cache entry")
		return nil, false, nil
	}

	metrics.RecordCacheHit()
	return rankMap, true, nil
}

// SetRankMap stores the rank map for a competition with a TTL.
func (c *RedisCache) SetRankMap(ctx context.Context, competitionID int, rankMap map[int]int, ttl time.Duration) error {
	data, err := json.Marshal(rankMap)
	if err != nil {
		return fmt.Errorf("failed to marshal rank map: %w", err)
	}

	if err := c.client.Set(ctx, standingsKey(competitionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rank map in cache: %w", err)
	}

	log.Debug().
		Int("competition_id", competitionID).
		Int("teams", len(rankMap)).
		Dur("ttl", ttl).
		Msg("Rank map cached")

	return nil
}
