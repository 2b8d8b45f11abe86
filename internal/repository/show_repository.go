package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/booking-directory/internal/model"
)

// ShowRow is a show joined with both of its counterparts.  Detail pages
// use only the side they are not already describing.
type ShowRow struct {
	ShowID          uint64
	StartTime       time.Time
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// CreateTx inserts a new show inside tx and sets s.ID.  A venue or artist
// id that does not exist yields ErrInvalidReference.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = `INSERT INTO shows (start_time, venue_id, artist_id) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, StoredTime(s.StartTime), s.VenueID, s.ArtistID)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// StoredTime normalises t the way start times are persisted: UTC with
// whole seconds.  Both drivers then compare stored values consistently.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Window selects which side of the reference time a show query returns.
type Window int

const (
	// Past selects shows with start_time < now.
	Past Window = iota
	// Upcoming selects shows with start_time > now.
	Upcoming
)

func (w Window) predicate() string {
	if w == Upcoming {
		return "s.start_time > ?"
	}
	return "s.start_time < ?"
}

const showRowSelect = `SELECT s.id, s.start_time, v.id, v.name, v.image_link, a.id, a.name, a.image_link
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ListByVenue returns the venue's shows on side w of now ordered by start
// time.  A show starting exactly at now is never returned.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64, w Window, now time.Time) ([]ShowRow, error) {
	q := showRowSelect + ` WHERE s.venue_id = ? AND ` + w.predicate() + ` ORDER BY s.start_time, s.id`
	return r.query(ctx, q, venueID, now.UTC())
}

// ListByArtist returns the artist's shows on side w of now ordered by
// start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64, w Window, now time.Time) ([]ShowRow, error) {
	q := showRowSelect + ` WHERE s.artist_id = ? AND ` + w.predicate() + ` ORDER BY s.start_time, s.id`
	return r.query(ctx, q, artistID, now.UTC())
}

// ListUpcoming returns every show starting strictly after now.
func (r *ShowRepo) ListUpcoming(ctx context.Context, now time.Time) ([]ShowRow, error) {
	q := showRowSelect + ` WHERE ` + Upcoming.predicate() + ` ORDER BY s.start_time, s.id`
	return r.query(ctx, q, now.UTC())
}

func (r *ShowRepo) query(ctx context.Context, q string, args ...any) ([]ShowRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ShowRow{}
	for rows.Next() {
		var s ShowRow
		if err := rows.Scan(&s.ShowID, &s.StartTime, &s.VenueID, &s.VenueName, &s.VenueImageLink,
			&s.ArtistID, &s.ArtistName, &s.ArtistImageLink); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
