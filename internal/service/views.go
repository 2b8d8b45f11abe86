package service

import (
	"context"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
)

// ShowView is a show ready for display, with both counterparts resolved
// and the start time formatted as MM/DD/YYYY, HH:MM.
type ShowView struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

func toShowViews(rows []repository.ShowRow) []ShowView {
	out := make([]ShowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ShowView{
			ID:              r.ShowID,
			VenueID:         r.VenueID,
			VenueName:       r.VenueName,
			VenueImageLink:  r.VenueImageLink,
			ArtistID:        r.ArtistID,
			ArtistName:      r.ArtistName,
			ArtistImageLink: r.ArtistImageLink,
			StartTime:       model.FormatStartTime(r.StartTime),
		})
	}
	return out
}

// VenueDetail is a venue with its shows split around the current time.
type VenueDetail struct {
	model.Venue
	PastShows          []ShowView
	UpcomingShows      []ShowView
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistDetail is an artist with its shows split around the current time.
type ArtistDetail struct {
	model.Artist
	PastShows          []ShowView
	UpcomingShows      []ShowView
	PastShowsCount     int
	UpcomingShowsCount int
}

// VenueDetail loads a venue and its past and upcoming shows.  A show that
// starts exactly now is in neither list.  Unknown ids yield
// repository.ErrVenueNotFound.
func (s *Service) VenueDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	past, err := s.shows.ListByVenue(ctx, id, repository.Past, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.shows.ListByVenue(ctx, id, repository.Upcoming, now)
	if err != nil {
		return nil, err
	}
	return &VenueDetail{
		Venue:              *v,
		PastShows:          toShowViews(past),
		UpcomingShows:      toShowViews(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// ArtistDetail is the artist counterpart of VenueDetail.
func (s *Service) ArtistDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	past, err := s.shows.ListByArtist(ctx, id, repository.Past, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.shows.ListByArtist(ctx, id, repository.Upcoming, now)
	if err != nil {
		return nil, err
	}
	return &ArtistDetail{
		Artist:             *a,
		PastShows:          toShowViews(past),
		UpcomingShows:      toShowViews(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// GetVenue returns the stored venue, for pre-filling the edit form.
func (s *Service) GetVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// GetArtist returns the stored artist, for pre-filling the edit form.
func (s *Service) GetArtist(ctx context.Context, id uint64) (*model.Artist, error) {
	return s.artists.GetByID(ctx, id)
}
