// Package queue defines the listing events published to the message broker
// and the publishers that deliver them.
package queue

import "time"

// Kinds of ListingEvent.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// ListingEvent is published after a directory record was committed.  It
// carries enough for downstream consumers to log or reindex without
// querying the primary database.
type ListingEvent struct {
	Kind       string `json:"kind"`
	ID         uint64 `json:"id"`
	Name       string `json:"name,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent returns an event of the given kind stamped with at.
func NewListingEvent(kind string, id uint64, name string, at time.Time) ListingEvent {
	return ListingEvent{Kind: kind, ID: id, Name: name, OccurredAt: at.UTC().Format(time.RFC3339)}
}
