package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"edanalyzer/internal/pkg/config"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
	"edanalyzer/internal/pkg/normalize"
)

// ResultCache stores finished analysis results keyed by site URL, so a
// repeated request within the TTL serves the stored report instead of
// re-running the whole pipeline.
type ResultCache interface {
	Get(ctx context.Context, siteURL string, out any) bool
	Set(ctx context.Context, siteURL string, result any)
}

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to Redis and returns a result cache. Results are
// stored as JSON under "analysis_result:<canonical-url>".
func NewRedisCache(cfg *config.Config) (ResultCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Failed to connect to Redis", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Connected to Redis successfully",
		zap.String("host", cfg.RedisHost),
		zap.String("port", cfg.RedisPort),
	)

	return &redisCache{
		client: rdb,
		prefix: "analysis_result",
		ttl:    time.Duration(cfg.CacheTTLMinutes) * time.Minute,
	}, nil
}

func (c *redisCache) key(siteURL string) string {
	return c.prefix + ":" + normalize.CanonicalURL(siteURL)
}

// Get loads a stored result into out. A miss or an unreadable entry
// returns false; errors never block a fresh analysis.
func (c *redisCache) Get(ctx context.Context, siteURL string, out any) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, c.key(siteURL)).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.Inc()
		return false
	}
	if err != nil {
		logger.Log.Error("Redis result lookup failed", zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Log.Warn("Discarding unreadable cached result",
			zap.String("url", siteURL),
			zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set stores a result with the configured TTL. Failures are logged only;
// caching is best effort.
func (c *redisCache) Set(ctx context.Context, siteURL string, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Log.Error("Failed to marshal result for caching", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := c.client.Set(ctx, c.key(siteURL), data, c.ttl).Err(); err != nil {
		logger.Log.Error("Failed to store result in Redis", zap.Error(err))
	}
}
