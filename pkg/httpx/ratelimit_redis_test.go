//go:build integration

package httpx_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute}
	backend := httpx.RedisBackend(client, "test:rate_limit")
	login := backend("login", config)

	for range 2 {
		d, err := login.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}

	d, err := login.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Greater(t, d.RetryAfter, 50*time.Second)

	d, err = login.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	d, err = backend("cuentas", config).Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}
