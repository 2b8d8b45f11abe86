package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
	"github.com/iliyamo/booking-directory/internal/service"
)

type searchPage struct {
	Kind   string
	Term   string
	Result service.SearchResult
}

type venueForm struct {
	Title  string
	Action string
	Venue  model.Venue
}

func venueInput(c echo.Context) service.VenueInput {
	return service.VenueInput{
		Name:               c.FormValue("name"),
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Address:            c.FormValue("address"),
		Phone:              c.FormValue("phone"),
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingTalent:      service.SeekingFlag(c.FormValue("seeking_talent")),
		SeekingDescription: c.FormValue("seeking_description"),
	}
}

// ListVenues renders every venue grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	areas, err := h.svc.VenuesByArea(c.Request().Context())
	if err != nil {
		h.logger.Error("list venues", "err", err)
		return h.redirect(c, "/", "An error occurred. No venues to display currently")
	}
	return c.Render(http.StatusOK, "venues", areas)
}

// SearchVenues handles POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.svc.SearchVenues(c.Request().Context(), term)
	if err != nil {
		h.logger.Error("search venues", "term", term, "err", err)
		return h.redirect(c, "/venues", "An error occurred while searching, please try again")
	}
	return c.Render(http.StatusOK, "search", searchPage{Kind: "venues", Term: term, Result: res})
}

// ShowVenue renders a venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.VenueDetail(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrVenueNotFound) {
			h.logger.Error("venue detail", "id", id, "err", err)
		}
		return h.redirect(c, "/", "Sorry, we couldn't show that venue")
	}
	return c.Render(http.StatusOK, "venue", detail)
}

// CreateVenueForm renders an empty venue form.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return c.Render(http.StatusOK, "venue_form", venueForm{
		Title:  "List a new venue",
		Action: "/venues/create",
		Venue:  model.Venue{SeekingTalent: true},
	})
}

// CreateVenue handles the new venue form.
func (h *Handler) CreateVenue(c echo.Context) error {
	in := venueInput(c)
	v, err := h.svc.CreateVenue(c.Request().Context(), in)
	if err != nil {
		msg := fmt.Sprintf("An error occurred. Venue %s could not be listed.", in.Name)
		return h.redirect(c, "/", msg+h.reason(c, "create venue", err))
	}
	return h.redirect(c, "/", fmt.Sprintf("Venue %s was successfully listed!", v.Name))
}

// EditVenueForm renders the venue form pre-filled with the stored values.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetVenue(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrVenueNotFound) {
			h.logger.Error("load venue for edit", "id", id, "err", err)
		}
		return h.redirect(c, "/", "Sorry, we could not find that venue")
	}
	return c.Render(http.StatusOK, "venue_form", venueForm{
		Title:  "Edit venue " + v.Name,
		Action: fmt.Sprintf("/venues/%d/edit", id),
		Venue:  *v,
	})
}

// EditVenue overwrites the venue with the submitted form and returns to
// its page.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/venues/%d", id)
	if _, err := h.svc.UpdateVenue(c.Request().Context(), id, venueInput(c)); err != nil {
		return h.redirect(c, back, "An error occurred. Venue could not be updated."+h.reason(c, "update venue", err))
	}
	return h.redirect(c, back, "Venue was successfully updated!")
}

// DeleteVenue removes a venue and its shows.  Browsers reach it through
// POST with _method=DELETE.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVenue(c.Request().Context(), id); err != nil {
		h.reason(c, "delete venue", err)
		return h.redirect(c, "/", "An error occurred when deleting venue, please try again later")
	}
	return h.redirect(c, "/", "Successfully deleted venue")
}
