package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/booking-directory/internal/config"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
		Methods:        map[string]bool{http.MethodPost: true},
	}
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(testRateConfig(), nil, quiet))
	e.POST("/venues/create", ok)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_RedisDownFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	e := echo.New()
	e.Use(RateLimit(testRateConfig(), rdb, quiet))
	e.POST("/venues/create", ok)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/venues/create", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues/3/edit", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/venues/:id/edit")

	cfg := testRateConfig()
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /venues/:id/edit", rateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(cfg, c))
	cfg.KeyStrategy = "ROUTE"
	assert.Equal(t, "rl:route:POST /venues/:id/edit", rateKey(cfg, c))
}

func TestFlasher_RoundTrip(t *testing.T) {
	f := NewFlasher(NewCookieStore("test-secret-key-32-bytes-long!!", false), quiet)
	e := echo.New()
	e.Use(f.Middleware())
	e.POST("/submit", func(c echo.Context) error {
		require.NoError(t, f.Add(c, "Venue X was successfully listed!"))
		return c.Redirect(http.StatusSeeOther, "/")
	})
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, strings.Join(Flashes(c), "|"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "Venue X was successfully listed!", rec.Body.String())
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cleared {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, rec.Body.String())
}
