package ratelimit

import (
	"net/http/httptest"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAddr(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.7"})
	require.NoError(t, err)
	behindProxy := NewLimiter(WithTrustedProxies(proxies))

	tests := []struct {
		name    string
		limiter *Limiter
		remote  string
		xff     []string
		realIP  string
		want    string
	}{
		{"socket peer by default", NewLimiter(), "203.0.113.9:4000", nil, "", "203.0.113.9"},
		{"forwarding headers ignored without trusted proxies", NewLimiter(), "203.0.113.9:4000", []string{"1.1.1.1"}, "2.2.2.2", "203.0.113.9"},
		{"untrusted peer cannot forward", behindProxy, "203.0.113.9:4000", []string{"1.1.1.1"}, "", "203.0.113.9"},
		{"trusted peer forwards the client", behindProxy, "10.1.2.3:4000", []string{"198.51.100.4"}, "", "198.51.100.4"},
		{"spoofed leftmost hop is skipped", behindProxy, "10.1.2.3:4000", []string{"6.6.6.6, 198.51.100.4"}, "", "198.51.100.4"},
		{"trusted hops are walked past", behindProxy, "192.0.2.7:80", []string{"198.51.100.4", "10.9.9.9"}, "", "198.51.100.4"},
		{"X-Real-IP from a trusted peer", behindProxy, "10.1.2.3:4000", nil, "198.51.100.5", "198.51.100.5"},
		{"malformed hop stops the walk", behindProxy, "10.1.2.3:4000", []string{"198.51.100.4, junk"}, "", "10.1.2.3"},
		{"IPv6 peer", NewLimiter(), "[2001:db8::1]:443", nil, "", "2001:db8::1"},
		{"unparseable peer kept as is", NewLimiter(), "pipe", nil, "", "pipe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = tc.remote
			for _, v := range tc.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			assert.Equal(t, tc.want, tc.limiter.ClientAddr(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{"10.1.2.3/8", "::1"})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("::1/128"),
	}, got)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}

func TestLimiter_CounterDefaultsToInProcess(t *testing.T) {
	c := NewLimiter().Counter(LoginRule)
	window := time.Now().UTC().Truncate(LoginRule.Window)

	require.NoError(t, c.IncrementBy("a", window, 2))
	cur, prev, err := c.Get("a", window, window.Add(-LoginRule.Window))

	require.NoError(t, err)
	assert.Equal(t, 2, cur)
	assert.Equal(t, 0, prev)
}

func TestLimiter_WithCounters(t *testing.T) {
	var got []string
	l := NewLimiter(WithCounters(func(r Rule) httprate.LimitCounter {
		got = append(got, r.Name)
		return httprate.NewLocalLimitCounter(r.Window)
	}))

	l.Counter(LoginRule)
	l.Counter(WriteRule)

	assert.Equal(t, []string{"login", "write"}, got)
}

// TestRedisCounter runs against a real Redis and is skipped when
// TEST_REDIS_URL is not set.
func TestRedisCounter(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping integration test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	rule := Rule{Name: "test-" + time.Now().Format(time.RFC3339Nano), Limit: 2, Window: time.Minute}
	c := NewRedisCounters(client)(rule).(*RedisCounter)
	c.Config(rule.Limit, rule.Window)

	current := time.Now().UTC().Truncate(rule.Window)
	previous := current.Add(-rule.Window)
	t.Cleanup(func() { client.Del(t.Context(), c.key("a", current), c.key("a", previous)) })

	require.NoError(t, c.Increment("a", previous))
	require.NoError(t, c.IncrementBy("a", current, 3))

	cur, prev, err := c.Get("a", current, previous)
	require.NoError(t, err)
	assert.Equal(t, 3, cur)
	assert.Equal(t, 1, prev)

	ttl, err := client.TTL(t.Context(), c.key("a", current)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 2*time.Minute)

	cur, prev, err = c.Get("b", current, previous)
	require.NoError(t, err)
	assert.Zero(t, cur)
	assert.Zero(t, prev)
}
