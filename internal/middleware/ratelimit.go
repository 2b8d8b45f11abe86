package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/booking-directory/internal/config"
)

// tokenBucket refills the bucket stored under KEYS[1] and tries to take a
// token.  It returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key           = KEYS[1]
local now_ms        = tonumber(ARGV[1])
local capacity      = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms   = tonumber(ARGV[4])
local ttl_seconds   = tonumber(ARGV[5])

local state  = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last   = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now_ms
end

local steps = math.floor(math.max(0, now_ms - last) / interval_ms)
if steps > 0 then
  tokens = math.min(capacity, tokens + steps * refill_tokens)
  last = last + steps * interval_ms
end

local allowed = 0
local retry_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.max(0, interval_ms - (now_ms - last))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, tokens, retry_ms }
`)

type decision struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

type limiter struct {
	cfg    config.RateLimitConfig
	rdb    redis.Scripter
	logger *slog.Logger
	now    func() time.Time
}

func (l *limiter) take(ctx context.Context, key string) (decision, error) {
	vals, err := tokenBucket.Run(ctx, l.rdb, []string{key},
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		return decision{}, err
	}
	if len(vals) != 3 {
		return decision{}, fmt.Errorf("unexpected limiter reply %v", vals)
	}
	return decision{
		allowed:   vals[0] == 1,
		remaining: vals[1],
		retry:     time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// RateLimit throttles the configured methods (POST and DELETE by default)
// with a Redis token bucket per client key.  Other methods pass untouched.
// When rate limiting is disabled or rdb is nil the middleware is a no-op,
// and a Redis failure lets the request through.
func RateLimit(cfg config.RateLimitConfig, rdb redis.Scripter, logger *slog.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &limiter{cfg: cfg, rdb: rdb, logger: logger, now: time.Now}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}
			key := rateKey(cfg, c)
			d, err := l.take(c.Request().Context(), key)
			if err != nil {
				if cfg.Debug {
					l.logger.Warn("rate limiter unavailable", "key", key, "err", err)
				}
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))
			if d.allowed {
				return next(c)
			}

			secs := int(math.Ceil(d.retry.Seconds()))
			h.Set("Retry-After", strconv.Itoa(secs))
			if cfg.Debug {
				l.logger.Info("rate limited", "key", key, "retry_after", d.retry)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many submissions. Please wait a moment and try again.")
		}
	}
}

// rateKey identifies the bucket for the current request.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "route":
		parts = append(parts, "route", route)
	default:
		parts = append(parts, "ip", ip, "route", route)
	}
	return strings.Join(parts, ":")
}
