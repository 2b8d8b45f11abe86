// Package handler exposes the HTTP handlers of the directory.  Pages are
// rendered through the echo renderer; every form submission answers with a
// 303 redirect and a flash message describing the outcome.
package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/middleware"
	"github.com/iliyamo/booking-directory/internal/repository"
	"github.com/iliyamo/booking-directory/internal/service"
)

// Handler bundles what the page handlers need.
type Handler struct {
	svc    *service.Service
	db     *sql.DB
	flash  *middleware.Flasher
	logger *slog.Logger
}

// New returns a Handler.  db is only used by the health check.
func New(svc *service.Service, db *sql.DB, flash *middleware.Flasher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, db: db, flash: flash, logger: logger}
}

// Home renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", nil)
}

// redirect queues msg and sends the client to path with 303 See Other, so
// the browser follows up with a GET.
func (h *Handler) redirect(c echo.Context, path, msg string) error {
	// a GET that redirects has already popped the flashes meant for this
	// page; carry them over so they show up after the redirect
	pending := append(slices.Clone(middleware.Flashes(c)), msg)
	if err := h.flash.Add(c, pending...); err != nil {
		h.logger.Warn("save flash", "err", err)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// pathID parses the :id route parameter.  Anything that is not a positive
// integer is treated as an unknown page.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// reason explains a failed mutation to the user.  Unexpected errors get no
// explanation and are logged instead.
func (h *Handler) reason(c echo.Context, op string, err error) string {
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		return " That name is already taken."
	case errors.Is(err, repository.ErrMissingField):
		return " A required field was left empty."
	case errors.Is(err, repository.ErrInvalidReference):
		return " The venue or artist does not exist."
	case errors.Is(err, service.ErrInvalidInput):
		return " Some values could not be understood."
	case errors.Is(err, repository.ErrVenueNotFound), errors.Is(err, repository.ErrArtistNotFound):
		return ""
	}
	h.logger.Error(op+" failed", "path", c.Request().URL.Path, "err", err)
	return ""
}
