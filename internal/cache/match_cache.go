package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"career-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// MatchCache keeps computed candidate rankings for a short TTL. Rankings
// are derived data: the profile store stays authoritative and a stale entry
// only delays a recomputation.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMatchCache(address, password string, db int, ttl time.Duration) *MatchCache {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return &MatchCache{
		client: client,
		ttl:    ttl,
	}
}

func matchKey(jobID string) string {
	return "match:job:" + jobID
}

func (c *MatchCache) Get(ctx context.Context, jobID string) ([]models.MatchResult, bool) {
	raw, err := c.client.Get(ctx, matchKey(jobID)).Bytes()
	if err != nil {
		return nil, false
	}

	var results []models.MatchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *MatchCache) Set(ctx context.Context, jobID string, results []models.MatchResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal match results: %w", err)
	}

	if err := c.client.Set(ctx, matchKey(jobID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache match results: %w", err)
	}
	return nil
}

func (c *MatchCache) Invalidate(ctx context.Context, jobID string) error {
	if err := c.client.Del(ctx, matchKey(jobID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate match cache: %w", err)
	}
	return nil
}

func (c *MatchCache) Close() error {
	return c.client.Close()
}
