package banco_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/network"
)

// TestRateLimitLoginEndpoint verifies the strict profile (5 req/min) on
// login with the production defaults.
func TestRateLimitLoginEndpoint(t *testing.T) {
	client := bancosdk.NewSDKClient(startBanco(t, nil))
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Login(ctx, clientRUT, "incorrecta")
		assertAPIError(t, err, http.StatusUnauthorized)
		t.Logf("request %d rejected with 401", i+1)
	}

	_, err := client.Login(ctx, clientRUT, "incorrecta")
	apiErr := assertAPIError(t, err, http.StatusTooManyRequests)
	require.NotEmpty(t, apiErr.RetryAfter)
	require.Equal(t, "Demasiadas solicitudes, por favor intente más tarde", apiErr.Message)
}

// TestRateLimitSharedThroughRedis runs two replicas on one redis and checks
// the login budget is spent across both.
func TestRateLimitSharedThroughRedis(t *testing.T) {
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nw.Remove(context.Background()) })

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine", network.WithNetwork([]string{"redis"}, nw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisContainer.Terminate(context.Background()) })

	onNetwork := func(req *testcontainers.ContainerRequest) {
		req.Networks = []string{nw.Name}
	}
	env := map[string]string{
		"REDIS_URL":       "redis://redis:6379/0",
		"TRUSTED_PROXIES": "0.0.0.0/0,::/0",
	}

	replicas := []*bancosdk.SDKClient{
		behindProxy(startBanco(t, env, onNetwork), "203.0.113.7"),
		behindProxy(startBanco(t, env, onNetwork), "203.0.113.7"),
	}

	for i := range 5 {
		_, err := replicas[i%2].Login(t.Context(), clientRUT, "incorrecta")
		assertAPIError(t, err, http.StatusUnauthorized)
	}

	for i, replica := range replicas {
		_, err := replica.Login(t.Context(), clientRUT, "incorrecta")
		assertAPIError(t, err, http.StatusTooManyRequests)
		t.Logf("replica %d limited", i)
	}
}

// forwardedFor sets X-Forwarded-For on every request, as a load balancer in
// front of the replicas would.
type forwardedFor struct {
	ip   string
	next http.RoundTripper
}

func (f forwardedFor) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Forwarded-For", f.ip)
	return f.next.RoundTrip(req)
}

func behindProxy(baseURL, ip string) *bancosdk.SDKClient {
	client := bancosdk.NewSDKClient(baseURL)
	client.HTTPClient.Transport = forwardedFor{ip: ip, next: http.DefaultTransport}
	return client
}
