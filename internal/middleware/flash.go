package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "directory_flash"
	// FlashesKey is the echo.Context key holding the messages popped for
	// the current page.
	FlashesKey = "flashes"
)

// Flasher stores one-shot status messages in a cookie session.
type Flasher struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewCookieStore returns the session store used for flash messages.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// NewFlasher returns a Flasher backed by store.
func NewFlasher(store sessions.Store, logger *slog.Logger) *Flasher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flasher{store: store, logger: logger}
}

// Add queues msgs for the next page the client loads.
func (f *Flasher) Add(c echo.Context, msgs ...string) error {
	// a cookie that no longer decodes still yields a fresh session
	sess, _ := f.store.Get(c.Request(), flashSessionName)
	for _, msg := range msgs {
		sess.AddFlash(msg)
	}
	return sess.Save(c.Request(), c.Response())
}

// Pop returns and clears the queued messages.
func (f *Flasher) Pop(c echo.Context) []string {
	sess, _ := f.store.Get(c.Request(), flashSessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		f.logger.Warn("save flash session", "err", err)
	}
	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// Middleware pops pending flashes on GET requests and exposes them under
// FlashesKey for the page renderer.
func (f *Flasher) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet {
				if msgs := f.Pop(c); len(msgs) > 0 {
					c.Set(FlashesKey, msgs)
				}
			}
			return next(c)
		}
	}
}

// Flashes returns the messages exposed by Middleware for this request.
func Flashes(c echo.Context) []string {
	msgs, _ := c.Get(FlashesKey).([]string)
	return msgs
}
