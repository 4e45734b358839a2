package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// scriptStub answers the fixed window script in place of redis. It keeps
// one counter per key and reports ttl for every window.
type scriptStub struct {
	redis.Scripter

	mu     sync.Mutex
	counts map[string]int64
	keys   []string
	ttl    int64
	reply  any
	err    error
}

func newScriptStub(ttl time.Duration) *scriptStub {
	return &scriptStub{counts: map[string]int64{}, ttl: ttl.Milliseconds()}
}

func (s *scriptStub) EvalSha(ctx context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := redis.NewCmd(ctx)
	s.keys = append(s.keys, keys[0])
	switch {
	case s.err != nil:
		cmd.SetErr(s.err)
	case s.reply != nil:
		cmd.SetVal(s.reply)
	default:
		s.counts[keys[0]]++
		cmd.SetVal([]any{s.counts[keys[0]], s.ttl})
	}
	return cmd
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func loginRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/usuario/login", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func decodeRateLimitEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorBody {
	t.Helper()

	var env struct {
		OK   bool            `json:"ok"`
		Body httpx.ErrorBody `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.OK)
	return env.Body
}

func TestClientIPExtractor(t *testing.T) {
	t.Parallel()

	proxies, err := httpx.ParseTrustedProxies([]string{"10.0.0.0/8", "172.17.0.1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		trusted []netip.Prefix
		remote  string
		xff     string
		want    string
	}{
		{name: "no proxies ignores header", remote: "198.51.100.4:5000", xff: "203.0.113.9", want: "198.51.100.4"},
		{name: "untrusted peer ignores header", trusted: proxies, remote: "198.51.100.4:5000", xff: "203.0.113.9", want: "198.51.100.4"},
		{name: "trusted peer uses forwarded client", trusted: proxies, remote: "10.1.2.3:5000", xff: "203.0.113.9", want: "203.0.113.9"},
		{name: "client cannot prepend a fake hop", trusted: proxies, remote: "10.1.2.3:5000", xff: "1.1.1.1, 203.0.113.9", want: "203.0.113.9"},
		{name: "skips chained trusted proxies", trusted: proxies, remote: "172.17.0.1:5000", xff: "203.0.113.9, 10.0.0.7", want: "203.0.113.9"},
		{name: "garbage hop ends the chain", trusted: proxies, remote: "10.1.2.3:5000", xff: "203.0.113.9, not-an-ip", want: "10.1.2.3"},
		{name: "trusted peer without header", trusted: proxies, remote: "10.1.2.3:5000", want: "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := loginRequest(tt.remote)
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			require.Equal(t, tt.want, httpx.ClientIPExtractor(tt.trusted)(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	t.Parallel()

	prefixes, err := httpx.ParseTrustedProxies([]string{" 10.0.0.0/8", "", "192.168.1.7", "::1"})
	require.NoError(t, err)
	require.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("::1/128"),
	}, prefixes)

	_, err = httpx.ParseTrustedProxies([]string{"10.0.0.0/33"})
	require.Error(t, err)
	_, err = httpx.ParseTrustedProxies([]string{"proxy.local"})
	require.Error(t, err)
}

// TestForgedForwardedForDoesNotResetLoginBudget rotates X-Forwarded-For on
// every attempt from one peer; the peer is still limited.
func TestForgedForwardedForDoesNotResetLoginBudget(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}
	limited := httpx.RateLimitMiddleware(httpx.NewMemoryLimiter(config), config, httpx.ClientIPExtractor(nil))(okHandler())

	codes := make([]int, 0, 6)
	for i := range 6 {
		req := loginRequest("198.51.100.4:5000")
		req.Header.Set("X-Forwarded-For", netip.AddrFrom4([4]byte{203, 0, 113, byte(i)}).String())
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	require.Equal(t, []int{200, 200, 200, 200, 200, 429}, codes)
}

func TestMemoryLimiterRejectsWithEnvelope(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	limited := httpx.RateLimitMiddleware(httpx.NewMemoryLimiter(config), config, httpx.IPKeyExtractor)(okHandler())

	for range 2 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

	// One token comes back every 30s.
	require.Contains(t, []string{"29", "30"}, rec.Header().Get("Retry-After"))

	body := decodeRateLimitEnvelope(t, rec)
	require.Equal(t, httpx.RateLimitMessage, body.Message)
	require.Equal(t, "Too Many Requests", body.Error)

	// Another caller keeps its own bucket.
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest("198.51.100.5:5000"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMemoryBackendSeparatesScopes(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	backend := httpx.MemoryBackend()
	ctx := context.Background()

	cuentas := backend("cuentas_create", config)
	transferencias := backend("transferencias_create", config)

	d, err := cuentas.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	d, err = cuentas.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Greater(t, d.RetryAfter, time.Duration(0))

	d, err = transferencias.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestRedisLimiterCountsFixedWindows(t *testing.T) {
	stub := newScriptStub(42 * time.Second)
	config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute}
	backend := httpx.RedisBackend(stub, "mibanco:rate_limit:")
	login := backend("login", config)
	ctx := context.Background()

	for range 2 {
		d, err := login.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}

	d, err := login.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Equal(t, 42*time.Second, d.RetryAfter)

	_, err = backend("usuario", config).Allow(ctx, "10.0.0.1")
	require.NoError(t, err)

	require.Equal(t, []string{
		"mibanco:rate_limit:login:10.0.0.1",
		"mibanco:rate_limit:login:10.0.0.1",
		"mibanco:rate_limit:login:10.0.0.1",
		"mibanco:rate_limit:usuario:10.0.0.1",
	}, stub.keys)
}

func TestRedisLimiterDefaultsPrefix(t *testing.T) {
	stub := newScriptStub(time.Minute)
	limiter := httpx.NewRedisLimiter(stub, "  ", "login", httpx.StrictLimit)

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, []string{httpx.DefaultRedisPrefix + ":login:10.0.0.1"}, stub.keys)
}

func TestRedisLimiterRejectsUnexpectedReply(t *testing.T) {
	stub := newScriptStub(time.Minute)
	stub.reply = "OK"

	_, err := httpx.NewRedisLimiter(stub, "", "login", httpx.StrictLimit).Allow(context.Background(), "10.0.0.1")
	require.ErrorContains(t, err, "unexpected response")
}

func TestRedisLimiterRejectsWithEnvelope(t *testing.T) {
	stub := newScriptStub(42500 * time.Millisecond)
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute}
	limited := httpx.RateLimitMiddleware(httpx.RedisBackend(stub, "")("login", config), config, httpx.IPKeyExtractor)(okHandler())

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "43", rec.Header().Get("Retry-After"))
	require.Equal(t, httpx.RateLimitMessage, decodeRateLimitEnvelope(t, rec).Message)
}

func TestRateLimitFailsOpenWhenRedisErrors(t *testing.T) {
	stub := newScriptStub(time.Minute)
	stub.err = errors.New("dial tcp 10.0.0.9:6379: connect: connection refused")

	limited := httpx.RateLimitMiddleware(
		httpx.RedisBackend(stub, "")("login", httpx.StrictLimit),
		httpx.StrictLimit,
		httpx.IPKeyExtractor,
	)(okHandler())

	for range httpx.StrictLimit.RequestsPerWindow + 3 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Len(t, stub.keys, httpx.StrictLimit.RequestsPerWindow+3)
}

func TestRateLimitWithoutKeyAllows(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	noKey := func(*http.Request) string { return "" }
	limited := httpx.RateLimitMiddleware(httpx.NewMemoryLimiter(config), config, noKey)(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest("198.51.100.4:5000"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{name: "defaults", want: defaults},
		{
			name: "all overridden",
			env: map[string]string{
				"RATELIMIT_BANCO_REQUESTS":   "1000",
				"RATELIMIT_BANCO_WINDOW_SEC": "60",
				"RATELIMIT_BANCO_BURST":      "1000",
			},
			want: httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
		},
		{
			name: "invalid values keep defaults",
			env: map[string]string{
				"RATELIMIT_BANCO_REQUESTS":   "muchos",
				"RATELIMIT_BANCO_WINDOW_SEC": "0",
				"RATELIMIT_BANCO_BURST":      "-3",
			},
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("BANCO", defaults))
		})
	}
}
