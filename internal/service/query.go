package service

import (
	"context"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
)

// SearchResult is the answer to a name search.
type SearchResult struct {
	Count int
	Data  []repository.NameMatch
}

// SearchVenues finds venues whose name contains term, ignoring case.
func (s *Service) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	matches, err := s.venues.SearchByName(ctx, term, s.now())
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Count: len(matches), Data: matches}, nil
}

// SearchArtists finds artists whose name contains term, ignoring case.
func (s *Service) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	matches, err := s.artists.SearchByName(ctx, term, s.now())
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Count: len(matches), Data: matches}, nil
}

// AreaGroup is one (city, state) pair with the venues located there.
type AreaGroup struct {
	model.Area
	Venues []repository.NameMatch
}

// VenuesByArea groups every venue by city and state.  Areas appear in the
// order of their first venue.
func (s *Service) VenuesByArea(ctx context.Context) ([]AreaGroup, error) {
	summaries, err := s.venues.ListSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}
	groups := []AreaGroup{}
	index := make(map[model.Area]int)
	for _, v := range summaries {
		area := model.Area{City: v.City, State: v.State}
		i, ok := index[area]
		if !ok {
			i = len(groups)
			index[area] = i
			groups = append(groups, AreaGroup{Area: area})
		}
		groups[i].Venues = append(groups[i].Venues, repository.NameMatch{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: v.NumUpcomingShows,
		})
	}
	return groups, nil
}

// ListArtists returns the id and name of every artist.
func (s *Service) ListArtists(ctx context.Context) ([]repository.ArtistRef, error) {
	return s.artists.ListRefs(ctx)
}

// UpcomingShows returns every show that has not started yet.
func (s *Service) UpcomingShows(ctx context.Context) ([]ShowView, error) {
	rows, err := s.shows.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return toShowViews(rows), nil
}
