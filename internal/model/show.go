package model

import "time"

// DisplayTimeLayout is the layout used for every rendered show time
// (MM/DD/YYYY, HH:MM on a 24 hour clock).
const DisplayTimeLayout = "01/02/2006, 15:04"

// Show is a scheduled event linking one venue and one artist at a
// start time.  Whether a show is past or upcoming is never stored; it
// is derived from StartTime at read time with Classify.
//
// Fields:
//  ID        – primary key identifier.
//  StartTime – when the show begins (UTC).
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
type Show struct {
	ID        uint64    // shows.id
	StartTime time.Time // shows.start_time
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
}

// Timing is the classification of a show relative to a moment.
type Timing int

const (
	// TimingNow means the show starts exactly at the reference moment.
	// Such a show is neither past nor upcoming.
	TimingNow Timing = iota
	TimingPast
	TimingUpcoming
)

func (t Timing) String() string {
	switch t {
	case TimingPast:
		return "past"
	case TimingUpcoming:
		return "upcoming"
	default:
		return "now"
	}
}

// Classify reports whether the show is past or upcoming relative to now.
// Both comparisons are strict, so a show starting exactly at now falls in
// neither bucket.
func (s Show) Classify(now time.Time) Timing {
	switch {
	case s.StartTime.After(now):
		return TimingUpcoming
	case s.StartTime.Before(now):
		return TimingPast
	default:
		return TimingNow
	}
}

// FormatStartTime renders t with DisplayTimeLayout.
func FormatStartTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
