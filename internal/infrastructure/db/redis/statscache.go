package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

const (
	statsKey = "admin:dashboard_stats"
	statsTTL = 60 * time.Second
)

// StatsCache caches the admin dashboard rollup in Redis so repeated page
// loads do not re-scan the collections. Cache failures degrade to a
// recompute, never to a request failure.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) Get(ctx context.Context) (*ports.DashboardStats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn().Err(err).Msg("stats cache entry corrupt")
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *ports.DashboardStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}
