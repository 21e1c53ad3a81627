// Package cache provides the Redis-backed cache for summary statistics.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKey = "summary:stats"

// SummaryCache stores the rendered summary payload with a TTL so repeated
// dashboard polls do not hit the data store.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache connects to Redis and verifies the connection.
func NewSummaryCache(redisURL string, ttl time.Duration) (*SummaryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &SummaryCache{client: client, ttl: ttl}, nil
}

// NewSummaryCacheWithClient creates a cache from an existing Redis client.
func NewSummaryCacheWithClient(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary payload, or nil on a miss.
func (c *SummaryCache) Get(ctx context.Context) ([]byte, error) {
	payload, err := c.client.Get(ctx, summaryKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return payload, nil
}

// Set stores the summary payload for the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, payload []byte) error {
	if err := c.client.Set(ctx, summaryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary after a mutation.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, summaryKey).Err(); err != nil {
		return fmt.Errorf("invalidate summary: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *SummaryCache) Close() error {
	return c.client.Close()
}
