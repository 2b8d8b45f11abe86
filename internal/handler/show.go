package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/service"
)

// ListShows renders the shows that have not started yet.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.svc.UpcomingShows(c.Request().Context())
	if err != nil {
		h.logger.Error("list shows", "err", err)
		return h.redirect(c, "/", "An error occurred. No shows to display currently")
	}
	return c.Render(http.StatusOK, "shows", shows)
}

// CreateShowForm renders the show form.
func (h *Handler) CreateShowForm(c echo.Context) error {
	return c.Render(http.StatusOK, "show_form", nil)
}

// CreateShow handles the new show form.
func (h *Handler) CreateShow(c echo.Context) error {
	in := service.ShowInput{
		StartTime: c.FormValue("start_time"),
		VenueID:   c.FormValue("venue_id"),
		ArtistID:  c.FormValue("artist_id"),
	}
	if _, err := h.svc.CreateShow(c.Request().Context(), in); err != nil {
		return h.redirect(c, "/", "An error occurred. Show could not be listed."+h.reason(c, "create show", err))
	}
	return h.redirect(c, "/", "Show was successfully listed!")
}
