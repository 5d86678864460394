package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/model"
)

// ResultCache keeps finished runs in Redis keyed by configuration
// fingerprint. A nil *ResultCache is valid and caches nothing.
type ResultCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResultCache returns nil when caching is disabled or Redis is not
// available.
func NewResultCache(rdb *redis.Client, cfg config.CacheConfig) *ResultCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	ttl := cfg.ResultTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{rdb: rdb, prefix: cfg.Prefix, ttl: ttl}
}

func (c *ResultCache) key(fingerprint string) string {
	return c.prefix + ":result:" + fingerprint
}

// Get returns the cached run for fingerprint. Redis errors count as misses.
func (c *ResultCache) Get(ctx context.Context, fingerprint string) (*model.SimulationRun, bool) {
	if c == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key(fingerprint)).Bytes()
	if err != nil {
		return nil, false
	}
	var run model.SimulationRun
	if err := json.Unmarshal(bs, &run); err != nil {
		return nil, false
	}
	return &run, true
}

// Put stores run under its fingerprint.
func (c *ResultCache) Put(ctx context.Context, run *model.SimulationRun) error {
	if c == nil {
		return nil
	}
	bs, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return c.rdb.SetEx(ctx, c.key(run.Fingerprint), bs, c.ttl).Err()
}
