package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/booking-directory/internal/model"
)

// VenueSummary is a venue row reduced to what the listing pages need,
// with the number of its shows that start after the reference time.
type VenueSummary struct {
	ID               uint64
	Name             string
	City             string
	State            string
	NumUpcomingShows int
}

// VenueRepo encapsulates all database queries related to venues.  Reads
// go through the pool; writes take the caller's transaction.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, image_link, website, facebook_link, seeking_talent, seeking_description`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.Website, &v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateTx inserts a new venue inside tx and sets v.ID to the generated id.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, website, facebook_link, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		nullIfEmpty(v.Name), nullIfEmpty(v.City), nullIfEmpty(v.State), nullIfEmpty(v.Address),
		nullIfEmpty(v.Phone), nullIfEmpty(v.ImageLink), v.Website, v.FacebookLink,
		v.SeekingTalent, nullIfEmpty(v.SeekingDescription))
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return getVenue(ctx, r.db, id)
}

// GetByIDTx is GetByID inside tx; updates use it to load the row they are
// about to overwrite.
func (r *VenueRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Venue, error) {
	return getVenue(ctx, tx, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getVenue(ctx context.Context, q queryRower, id uint64) (*model.Venue, error) {
	v, err := scanVenue(q.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// UpdateTx overwrites every editable column of the venue with v's values.
// Optional fields that are nil are cleared.
func (r *VenueRepo) UpdateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
	               website = ?, facebook_link = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		nullIfEmpty(v.Name), nullIfEmpty(v.City), nullIfEmpty(v.State), nullIfEmpty(v.Address),
		nullIfEmpty(v.Phone), nullIfEmpty(v.ImageLink), v.Website, v.FacebookLink,
		v.SeekingTalent, nullIfEmpty(v.SeekingDescription), v.ID)
	return classify(err)
}

// DeleteTx removes a venue together with its shows.  The shows go first so
// the foreign key on shows.venue_id never dangles.  ErrVenueNotFound is
// returned when the venue does not exist.
func (r *VenueRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return classify(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return classify(err)
	}
	return nil
}

// ListSummaries returns every venue ordered by id, each with the count of
// shows starting strictly after now.
func (r *VenueRepo) ListSummaries(ctx context.Context, now time.Time) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	                  (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?)
	           FROM venues v
	           ORDER BY v.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VenueSummary
	for rows.Next() {
		var s VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]NameMatch, error) {
	return searchByName(ctx, r.db, "venues", "venue_id", term, now)
}
