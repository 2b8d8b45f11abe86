package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems.  It pings the database so a lost connection shows up
// as 503 instead of a page error.
func (h *Handler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", "err", err)
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
