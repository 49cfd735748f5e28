package cache

import (
	"context"
	"strconv"
)

// viewDeltaKey is the Redis hash holding view increments that have not yet
// been flushed to the database.
const viewDeltaKey = "views:delta"

// ViewCounter accumulates product view increments in a Redis hash. The view
// sync worker periodically moves accumulated deltas into the durable
// product_views table and deducts what it flushed, so increments arriving
// mid-flush are never lost.
type ViewCounter struct {
	redis *RedisClient
}

// NewViewCounter creates a ViewCounter.
func NewViewCounter(redis *RedisClient) *ViewCounter {
	return &ViewCounter{redis: redis}
}

// Incr adds one view for a product.
func (c *ViewCounter) Incr(ctx context.Context, productID int64) error {
	_, err := c.redis.HIncrBy(ctx, viewDeltaKey, strconv.FormatInt(productID, 10), 1)
	return err
}

// Deltas returns the unflushed view increments keyed by product id.
func (c *ViewCounter) Deltas(ctx context.Context) (map[int64]int64, error) {
	raw, err := c.redis.HGetAll(ctx, viewDeltaKey)
	if err != nil {
		return nil, err
	}

	deltas := make(map[int64]int64, len(raw))
	for field, val := range raw {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		deltas[id] = n
	}
	return deltas, nil
}

// Deduct subtracts n flushed views for a product and drops the field once it
// reaches zero.
func (c *ViewCounter) Deduct(ctx context.Context, productID, n int64) error {
	field := strconv.FormatInt(productID, 10)
	left, err := c.redis.HIncrBy(ctx, viewDeltaKey, field, -n)
	if err != nil {
		return err
	}
	if left == 0 {
		return c.redis.HDel(ctx, viewDeltaKey, field)
	}
	return nil
}
