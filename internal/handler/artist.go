package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
	"github.com/iliyamo/booking-directory/internal/service"
)

// Genres offered by the artist form.
var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

type artistForm struct {
	Title        string
	Action       string
	Artist       model.Artist
	GenreChoices []string
}

// genreChoices lists the offered genres followed by any stored genre that
// is not among them, so editing never silently drops one.
func genreChoices(current []string) []string {
	out := slices.Clone(Genres)
	for _, g := range current {
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}

func artistInput(c echo.Context) service.ArtistInput {
	var genres []string
	if form, err := c.FormParams(); err == nil {
		genres = form["genres"]
	}
	return service.ArtistInput{
		Name:               c.FormValue("name"),
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Phone:              c.FormValue("phone"),
		Genres:             genres,
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingVenue:       service.SeekingFlag(c.FormValue("seeking_venue")),
		SeekingDescription: c.FormValue("seeking_description"),
	}
}

// ListArtists renders the id and name of every artist.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.svc.ListArtists(c.Request().Context())
	if err != nil {
		h.logger.Error("list artists", "err", err)
		return h.redirect(c, "/", "An error occurred. No artists to display currently")
	}
	return c.Render(http.StatusOK, "artists", artists)
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.svc.SearchArtists(c.Request().Context(), term)
	if err != nil {
		h.logger.Error("search artists", "term", term, "err", err)
		return h.redirect(c, "/artists", "An error occurred while searching, please try again")
	}
	return c.Render(http.StatusOK, "search", searchPage{Kind: "artists", Term: term, Result: res})
}

// ShowArtist renders an artist with its past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrArtistNotFound) {
			h.logger.Error("artist detail", "id", id, "err", err)
		}
		return h.redirect(c, "/", "Sorry, we couldn't show that artist")
	}
	return c.Render(http.StatusOK, "artist", detail)
}

// CreateArtistForm renders an empty artist form.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	return c.Render(http.StatusOK, "artist_form", artistForm{
		Title:        "List a new artist",
		Action:       "/artists/create",
		Artist:       model.Artist{SeekingVenue: true},
		GenreChoices: Genres,
	})
}

// CreateArtist handles the new artist form.
func (h *Handler) CreateArtist(c echo.Context) error {
	in := artistInput(c)
	a, err := h.svc.CreateArtist(c.Request().Context(), in)
	if err != nil {
		msg := fmt.Sprintf("An error occurred. Artist %s could not be listed.", in.Name)
		return h.redirect(c, "/", msg+h.reason(c, "create artist", err))
	}
	return h.redirect(c, "/", fmt.Sprintf("Artist %s was successfully listed!", a.Name))
}

// EditArtistForm renders the artist form pre-filled with the stored values.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.GetArtist(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrArtistNotFound) {
			h.logger.Error("load artist for edit", "id", id, "err", err)
		}
		return h.redirect(c, "/", "Sorry, we could not find that artist")
	}
	return c.Render(http.StatusOK, "artist_form", artistForm{
		Title:        "Edit artist " + a.Name,
		Action:       fmt.Sprintf("/artists/%d/edit", id),
		Artist:       *a,
		GenreChoices: genreChoices(a.Genres),
	})
}

// EditArtist overwrites the artist with the submitted form and returns to
// its page.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/artists/%d", id)
	if _, err := h.svc.UpdateArtist(c.Request().Context(), id, artistInput(c)); err != nil {
		return h.redirect(c, back, "An error occurred. Artist could not be updated."+h.reason(c, "update artist", err))
	}
	return h.redirect(c, back, "Artist was successfully updated!")
}
