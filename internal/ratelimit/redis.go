package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

// redisTimeout bounds each counter round trip. httprate's counter interface
// carries no context.
const redisTimeout = 500 * time.Millisecond

// RedisCounter is an httprate.LimitCounter that keeps one integer per key and
// fixed window in Redis, so limits hold across instances and restarts.
type RedisCounter struct {
	client redis.Cmdable
	prefix string
	window time.Duration
}

// NewRedisCounters returns a CounterFunc whose counters share client and are
// namespaced by rule.
func NewRedisCounters(client redis.Cmdable) CounterFunc {
	return func(rule Rule) httprate.LimitCounter {
		return &RedisCounter{
			client: client,
			prefix: "fuel:ratelimit:" + rule.Name + ":",
			window: rule.Window,
		}
	}
}

func (c *RedisCounter) Config(_ int, window time.Duration) {
	c.window = window
}

func (c *RedisCounter) Increment(key string, window time.Time) error {
	return c.IncrementBy(key, window, 1)
}

func (c *RedisCounter) IncrementBy(key string, window time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	k := c.key(key, window)
	pipe := c.client.TxPipeline()
	pipe.IncrBy(ctx, k, int64(amount))
	// The previous window is still read while the current one is live.
	pipe.Expire(ctx, k, 3*c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ratelimit.RedisCounter.IncrementBy: %w", err)
	}
	return nil
}

func (c *RedisCounter) Get(key string, current, previous time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, current), c.key(key, previous)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit.RedisCounter.Get: %w", err)
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("ratelimit.RedisCounter.Get: unexpected reply length %d", len(vals))
	}
	cur, err := count(vals[0])
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit.RedisCounter.Get: %w", err)
	}
	prev, err := count(vals[1])
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit.RedisCounter.Get: %w", err)
	}
	return cur, prev, nil
}

func (c *RedisCounter) key(key string, window time.Time) string {
	return c.prefix + key + ":" + strconv.FormatInt(window.Unix(), 10)
}

// count reads one MGET slot. A missing key is zero.
func count(v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("unexpected counter value %T", v)
	}
}

var _ httprate.LimitCounter = (*RedisCounter)(nil)
