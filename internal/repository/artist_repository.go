package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/booking-directory/internal/model"
)

// ArtistRef is the id/name pair shown on the artist listing page.
type ArtistRef struct {
	ID   uint64
	Name string
}

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, genres, image_link, website, facebook_link, seeking_venue, seeking_description`

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a      model.Artist
		genres string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.Website, &a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(genres), &a.Genres); err != nil {
		return nil, fmt.Errorf("decode genres of artist %d: %w", a.ID, err)
	}
	return &a, nil
}

// encodeGenres stores the ordered genre list as a JSON array.
func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateTx inserts a new artist inside tx and sets a.ID.
func (r *ArtistRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, website, facebook_link, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		nullIfEmpty(a.Name), nullIfEmpty(a.City), nullIfEmpty(a.State), nullIfEmpty(a.Phone),
		genres, nullIfEmpty(a.ImageLink), a.Website, a.FacebookLink,
		a.SeekingVenue, nullIfEmpty(a.SeekingDescription))
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an artist by its ID.  It returns ErrArtistNotFound if no
// row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return getArtist(ctx, r.db, id)
}

// GetByIDTx is GetByID inside tx.
func (r *ArtistRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Artist, error) {
	return getArtist(ctx, tx, id)
}

func getArtist(ctx context.Context, q queryRower, id uint64) (*model.Artist, error) {
	a, err := scanArtist(q.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateTx overwrites every editable column of the artist with a's values.
func (r *ArtistRepo) UpdateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
	               website = ?, facebook_link = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		nullIfEmpty(a.Name), nullIfEmpty(a.City), nullIfEmpty(a.State), nullIfEmpty(a.Phone),
		genres, nullIfEmpty(a.ImageLink), a.Website, a.FacebookLink,
		a.SeekingVenue, nullIfEmpty(a.SeekingDescription), a.ID)
	return classify(err)
}

// ListRefs returns the id and name of every artist ordered by id.
func (r *ArtistRepo) ListRefs(ctx context.Context) ([]ArtistRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistRef{}
	for rows.Next() {
		var a ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]NameMatch, error) {
	return searchByName(ctx, r.db, "artists", "artist_id", term, now)
}
