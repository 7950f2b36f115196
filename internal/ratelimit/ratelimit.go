// Package ratelimit implements a Redis-backed token bucket so a single proxy
// instance can cap how fast anonymous clients burn the shared weatherapi key.
package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type LimiterConfig struct {
	RPS   int
	Burst int
}

type RateLimiter struct {
	Redis  *redis.Client
	Config LimiterConfig
}

func New(redis *redis.Client, cfg LimiterConfig) *RateLimiter {
	return &RateLimiter{Redis: redis, Config: cfg}
}

// Allower is what Middleware needs from a limiter. Tests substitute a stub so
// middleware behavior is checked without a Redis instance.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

func Middleware(l Allower, prefix string, keyFunc func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + keyFunc(r)
			allowed, err := l.Allow(r.Context(), key)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "rate limiter error")
				return
			}
			if !allowed {
				// The bucket refills at RPS tokens per second, so one second
				// is always a safe wait.
				w.Header().Set("Retry-After", "1")
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError duplicated locally so the limiter does not depend on httpapi.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","code":` + strconv.Itoa(status) + `}`))
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	// Token bucket algorithm using Redis Lua script
	// KEYS[1] = key
	// ARGV[1] = max_tokens (burst)
	// ARGV[2] = refill_rate (tokens per second)
	// ARGV[3] = now (ms)
	// Returns: 1 if allowed, 0 if not
	lua := `
local tokens_key = KEYS[1]
local max_tokens = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local bucket = redis.call('HMGET', tokens_key, 'tokens', 'last')
local tokens = tonumber(bucket[1]) or max_tokens
local last = tonumber(bucket[2]) or now
local delta = math.max(0, now - last) / 1000
local refill = math.floor(delta * refill_rate)
tokens = math.min(max_tokens, tokens + refill)
if tokens > 0 then
  tokens = tokens - 1
  redis.call('HMSET', tokens_key, 'tokens', tokens, 'last', now)
  redis.call('EXPIRE', tokens_key, 2)
  return 1
else
  redis.call('HMSET', tokens_key, 'tokens', tokens, 'last', now)
  redis.call('EXPIRE', tokens_key, 2)
  return 0
end
`
	maxTokens := rl.Config.Burst
	refillRate := rl.Config.RPS
	now := time.Now().UnixNano() / int64(time.Millisecond)
	res, err := rl.Redis.Eval(ctx, lua, []string{key}, maxTokens, refillRate, now).Result()
	if err != nil {
		slog.Error("redis eval error", "key", key, "error", err)
		return false, err
	}
	var allowed int64
	switch v := res.(type) {
	case int64:
		allowed = v
	case string:
		allowed, _ = strconv.ParseInt(v, 10, 64)
	default:
		allowed = 0
	}
	slog.Debug("token bucket", "key", key, "allowed", allowed, "max", maxTokens, "rps", refillRate)
	return allowed == 1, nil
}

// KeyByIP keys the bucket by client address, tolerating RemoteAddr with and
// without a port; chi's RealIP middleware rewrites it to a bare IP.
func KeyByIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
