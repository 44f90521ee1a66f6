package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/cart"

	"github.com/go-redis/redis/v8"
)

// Client wraps the redis connection used for two concerns: archiving cart
// snapshots between requests and deduplicating order submissions by
// idempotency token.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Cart archive

func (c *Client) SaveCart(sessionID string, snap cart.Snapshot) error {
	ctx := context.Background()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+sessionID, data, c.ttl).Err()
}

func (c *Client) LoadCart(sessionID string) (cart.Snapshot, bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+sessionID).Result()
	if err == redis.Nil {
		return cart.Snapshot{}, false, nil
	}
	if err != nil {
		return cart.Snapshot{}, false, fmt.Errorf("failed to get cart snapshot: %w", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return cart.Snapshot{}, false, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}
	return snap, true, nil
}

func (c *Client) DeleteCart(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+sessionID).Err()
}

// Submission idempotency tokens

// MarkSubmission records that the token produced the given order.
func (c *Client) MarkSubmission(token string, orderID uint) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "submission:"+token, strconv.FormatUint(uint64(orderID), 10), c.ttl).Err()
}

// LookupSubmission returns the order already created for the token, if any.
func (c *Client) LookupSubmission(token string) (uint, bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "submission:"+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up submission token: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse submission token value: %w", err)
	}
	return uint(id), true, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
