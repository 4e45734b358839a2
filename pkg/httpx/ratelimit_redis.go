package httpx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed window counter: the first hit of a window sets its expiry.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// DefaultRedisPrefix namespaces limiter keys in a shared redis.
const DefaultRedisPrefix = "mibanco:rate_limit"

// RedisBackend shares counters between replicas through redis. Any
// *redis.Client or cluster client satisfies redis.Scripter.
func RedisBackend(client redis.Scripter, prefix string) LimiterBackend {
	return func(scope string, config RateLimitConfig) Limiter {
		return NewRedisLimiter(client, prefix, scope, config)
	}
}

// RedisLimiter allows RequestsPerWindow requests per key and fixed Window.
type RedisLimiter struct {
	client redis.Scripter
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Scripter, prefix, scope string, config RateLimitConfig) *RedisLimiter {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if scope = strings.TrimSpace(scope); scope != "" {
		prefix += ":" + scope
	}

	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  config.RequestsPerWindow,
		window: max(config.Window, time.Second),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	raw, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis limiter: %w", err)
	}

	values, ok := raw.([]any)
	if !ok || len(values) != 2 {
		return Decision{}, fmt.Errorf("redis limiter: unexpected response %T", raw)
	}
	count, ok := values[0].(int64)
	if !ok {
		return Decision{}, fmt.Errorf("redis limiter: unexpected count %T", values[0])
	}
	ttl, ok := values[1].(int64)
	if !ok {
		return Decision{}, fmt.Errorf("redis limiter: unexpected ttl %T", values[1])
	}

	if count <= int64(l.limit) {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, RetryAfter: time.Duration(ttl) * time.Millisecond}, nil
}
