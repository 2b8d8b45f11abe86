package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
)

// SeekingFlag interprets a submitted "seeking" checkbox.  Only the exact
// value "True" counts as checked.
func SeekingFlag(v string) bool {
	return v == "True"
}

// VenueInput holds the editable fields of a venue as submitted.  Empty
// optional links are stored as NULL; an empty seeking description falls
// back to model.DefaultVenueSeekingDescription.
type VenueInput struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
}

func (in VenueInput) apply(v *model.Venue) {
	v.Name = strings.TrimSpace(in.Name)
	v.City = in.City
	v.State = in.State
	v.Address = in.Address
	v.Phone = in.Phone
	v.ImageLink = in.ImageLink
	v.Website = optional(in.Website)
	v.FacebookLink = optional(in.FacebookLink)
	v.SeekingTalent = in.SeekingTalent
	v.SeekingDescription = in.SeekingDescription
	if v.SeekingDescription == "" {
		v.SeekingDescription = model.DefaultVenueSeekingDescription
	}
}

// ArtistInput holds the editable fields of an artist as submitted.
type ArtistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	ImageLink          string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
}

func (in ArtistInput) apply(a *model.Artist) {
	a.Name = strings.TrimSpace(in.Name)
	a.City = in.City
	a.State = in.State
	a.Phone = in.Phone
	a.Genres = append([]string(nil), in.Genres...)
	a.ImageLink = in.ImageLink
	a.Website = optional(in.Website)
	a.FacebookLink = optional(in.FacebookLink)
	a.SeekingVenue = in.SeekingVenue
	a.SeekingDescription = in.SeekingDescription
	if a.SeekingDescription == "" {
		a.SeekingDescription = model.DefaultArtistSeekingDescription
	}
}

// ShowInput holds a show submission exactly as the form sent it.
type ShowInput struct {
	StartTime string
	VenueID   string
	ArtistID  string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateVenue lists a new venue.
func (s *Service) CreateVenue(ctx context.Context, in VenueInput) (*model.Venue, error) {
	var v model.Venue
	in.apply(&v)
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.venues.CreateTx(ctx, tx, &v)
	})
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.publish(ctx, queue.NewListingEvent(queue.VenueCreated, v.ID, v.Name, s.now()))
	return &v, nil
}

// UpdateVenue replaces every editable field of venue id with in.  Fields
// left empty in the submission are cleared, not preserved.
func (s *Service) UpdateVenue(ctx context.Context, id uint64, in VenueInput) (*model.Venue, error) {
	var v *model.Venue
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if v, err = s.venues.GetByIDTx(ctx, tx, id); err != nil {
			return err
		}
		in.apply(v)
		return s.venues.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, fmt.Errorf("update venue %d: %w", id, err)
	}
	s.publish(ctx, queue.NewListingEvent(queue.VenueUpdated, v.ID, v.Name, s.now()))
	return v, nil
}

// DeleteVenue removes venue id together with its shows.
func (s *Service) DeleteVenue(ctx context.Context, id uint64) error {
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.venues.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	s.publish(ctx, queue.NewListingEvent(queue.VenueDeleted, id, "", s.now()))
	return nil
}

// CreateArtist lists a new artist.
func (s *Service) CreateArtist(ctx context.Context, in ArtistInput) (*model.Artist, error) {
	var a model.Artist
	in.apply(&a)
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.artists.CreateTx(ctx, tx, &a)
	})
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	s.publish(ctx, queue.NewListingEvent(queue.ArtistCreated, a.ID, a.Name, s.now()))
	return &a, nil
}

// UpdateArtist replaces every editable field of artist id with in.
func (s *Service) UpdateArtist(ctx context.Context, id uint64, in ArtistInput) (*model.Artist, error) {
	var a *model.Artist
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if a, err = s.artists.GetByIDTx(ctx, tx, id); err != nil {
			return err
		}
		in.apply(a)
		return s.artists.UpdateTx(ctx, tx, a)
	})
	if err != nil {
		return nil, fmt.Errorf("update artist %d: %w", id, err)
	}
	s.publish(ctx, queue.NewListingEvent(queue.ArtistUpdated, a.ID, a.Name, s.now()))
	return a, nil
}

// CreateShow schedules a show.  Unknown venue or artist ids surface as
// repository.ErrInvalidReference.
func (s *Service) CreateShow(ctx context.Context, in ShowInput) (*model.Show, error) {
	show, err := parseShow(in)
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.shows.CreateTx(ctx, tx, show)
	})
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	ev := queue.NewListingEvent(queue.ShowCreated, show.ID, "", s.now())
	ev.VenueID = show.VenueID
	ev.ArtistID = show.ArtistID
	ev.StartTime = repository.StoredTime(show.StartTime).Format(time.RFC3339)
	s.publish(ctx, ev)
	return show, nil
}

func parseShow(in ShowInput) (*model.Show, error) {
	venueID, err := parseID("venue_id", in.VenueID)
	if err != nil {
		return nil, err
	}
	artistID, err := parseID("artist_id", in.ArtistID)
	if err != nil {
		return nil, err
	}
	start, err := ParseStartTime(in.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{StartTime: start, VenueID: venueID, ArtistID: artistID}, nil
}

func parseID(field, v string) (uint64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("%s: %w", field, repository.ErrMissingField)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, v, ErrInvalidInput)
	}
	return id, nil
}

// startTimeLayouts are tried in order; values without a zone are UTC.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseStartTime accepts the layouts the show form produces and RFC 3339.
func ParseStartTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("start_time: %w", repository.ErrMissingField)
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("start_time %q: %w", v, ErrInvalidInput)
}
