package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/testutil"
)

var refTime = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleVenue(name string) *model.Venue {
	return &model.Venue{
		Name:               name,
		City:               "San Francisco",
		State:              "CA",
		Address:            "1805 Geary Blvd",
		Phone:              "415-346-6000",
		ImageLink:          "https://img.example/venue.jpg",
		Website:            strPtr("https://venue.example"),
		SeekingTalent:      true,
		SeekingDescription: model.DefaultVenueSeekingDescription,
	}
}

func sampleArtist(name string) *model.Artist {
	return &model.Artist{
		Name:               name,
		City:               "Woodstock",
		State:              "NY",
		Phone:              "845-555-0101",
		Genres:             []string{"Rock", "Folk"},
		ImageLink:          "https://img.example/artist.jpg",
		Website:            strPtr("https://artist.example"),
		SeekingVenue:       true,
		SeekingDescription: model.DefaultArtistSeekingDescription,
	}
}

type fixture struct {
	db      *sql.DB
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
}

func newFixture(t *testing.T) fixture {
	db := testutil.OpenTestDB(t)
	return fixture{db: db, venues: NewVenueRepo(db), artists: NewArtistRepo(db), shows: NewShowRepo(db)}
}

func (f fixture) addVenue(t *testing.T, v *model.Venue) {
	t.Helper()
	require.NoError(t, WithTx(context.Background(), f.db, func(tx *sql.Tx) error {
		return f.venues.CreateTx(context.Background(), tx, v)
	}))
}

func (f fixture) addArtist(t *testing.T, a *model.Artist) {
	t.Helper()
	require.NoError(t, WithTx(context.Background(), f.db, func(tx *sql.Tx) error {
		return f.artists.CreateTx(context.Background(), tx, a)
	}))
}

func (f fixture) addShow(t *testing.T, venueID, artistID uint64, start time.Time) *model.Show {
	t.Helper()
	s := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}
	require.NoError(t, WithTx(context.Background(), f.db, func(tx *sql.Tx) error {
		return f.shows.CreateTx(context.Background(), tx, s)
	}))
	return s
}

func TestVenueRepo_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("The Fillmore")
	f.addVenue(t, v)
	require.NotZero(t, v.ID)

	got, err := f.venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	assert.Nil(t, got.FacebookLink)
}

func TestVenueRepo_GetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.venues.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_ConstraintErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addVenue(t, sampleVenue("Dup"))

	err := WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.venues.CreateTx(ctx, tx, sampleVenue("Dup"))
	})
	assert.ErrorIs(t, err, ErrDuplicateName)

	blank := sampleVenue("No Phone")
	blank.Phone = ""
	err = WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.venues.CreateTx(ctx, tx, blank)
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestVenueRepo_UpdateOverwritesOptionalFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("Paradise")
	f.addVenue(t, v)

	v.Website = nil
	v.City = "Boston"
	require.NoError(t, WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.venues.UpdateTx(ctx, tx, v)
	}))

	got, err := f.venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Website)
	assert.Equal(t, "Boston", got.City)
}

func TestVenueRepo_DeleteRemovesShows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("Gone Soon")
	f.addVenue(t, v)
	a := sampleArtist("Touring Act")
	f.addArtist(t, a)
	f.addShow(t, v.ID, a.ID, refTime.Add(time.Hour))

	require.NoError(t, WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.venues.DeleteTx(ctx, tx, v.ID)
	}))

	_, err := f.venues.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	shows, err := f.shows.ListByArtist(ctx, a.ID, Upcoming, refTime)
	require.NoError(t, err)
	assert.Empty(t, shows)

	err = WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.venues.DeleteTx(ctx, tx, v.ID)
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_ListSummariesCountsUpcomingOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("Counted")
	f.addVenue(t, v)
	a := sampleArtist("Counter")
	f.addArtist(t, a)
	f.addShow(t, v.ID, a.ID, refTime.Add(-time.Hour))
	f.addShow(t, v.ID, a.ID, refTime)
	f.addShow(t, v.ID, a.ID, refTime.Add(time.Hour))
	f.addShow(t, v.ID, a.ID, refTime.Add(48*time.Hour))

	got, err := f.venues.ListSummaries(ctx, refTime)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].NumUpcomingShows)
	assert.Equal(t, "San Francisco", got[0].City)
}

func TestArtistRepo_GenresRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := sampleArtist("Genre Mixer")
	a.Genres = []string{"Jazz", "Blues", "Hip-Hop"}
	f.addArtist(t, a)

	got, err := f.artists.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Blues", "Hip-Hop"}, got.Genres)

	refs, err := f.artists.ListRefs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ArtistRef{{ID: a.ID, Name: "Genre Mixer"}}, refs)
}

func TestArtistRepo_GetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.artists.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestShowRepo_InvalidReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := &model.Show{VenueID: 100, ArtistID: 200, StartTime: refTime}

	err := WithTx(ctx, f.db, func(tx *sql.Tx) error {
		return f.shows.CreateTx(ctx, tx, s)
	})

	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestShowRepo_WindowsAreStrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("Edge")
	f.addVenue(t, v)
	a := sampleArtist("Edgy")
	f.addArtist(t, a)
	past := f.addShow(t, v.ID, a.ID, refTime.Add(-time.Minute))
	f.addShow(t, v.ID, a.ID, refTime)
	next := f.addShow(t, v.ID, a.ID, refTime.Add(time.Minute))

	before, err := f.shows.ListByVenue(ctx, v.ID, Past, refTime)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, past.ID, before[0].ShowID)
	assert.Equal(t, "Edgy", before[0].ArtistName)

	after, err := f.shows.ListByArtist(ctx, a.ID, Upcoming, refTime)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, next.ID, after[0].ShowID)
	assert.Equal(t, "Edge", after[0].VenueName)
	assert.True(t, after[0].StartTime.Equal(refTime.Add(time.Minute)))

	all, err := f.shows.ListUpcoming(ctx, refTime)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShowRepo_StoresUTCSeconds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := sampleVenue("Zoned")
	f.addVenue(t, v)
	a := sampleArtist("Zoner")
	f.addArtist(t, a)
	est := time.FixedZone("EST", -5*3600)
	start := time.Date(2026, 6, 1, 15, 0, 0, 500, est)
	f.addShow(t, v.ID, a.ID, start)

	got, err := f.shows.ListUpcoming(ctx, refTime)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC), got[0].StartTime)
}

func TestSearchByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fart := sampleVenue("Club Fart")
	f.addVenue(t, fart)
	f.addVenue(t, sampleVenue("Lounge"))
	f.addVenue(t, sampleVenue("100% Pure"))
	a := sampleArtist("Guns N Petals")
	f.addArtist(t, a)
	f.addShow(t, fart.ID, a.ID, refTime.Add(-time.Hour))
	f.addShow(t, fart.ID, a.ID, refTime.Add(time.Hour))

	got, err := f.venues.SearchByName(ctx, "ART", refTime)
	require.NoError(t, err)
	assert.Equal(t, []NameMatch{{ID: fart.ID, Name: "Club Fart", NumUpcomingShows: 1}}, got)

	got, err = f.venues.SearchByName(ctx, "%", refTime)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Pure", got[0].Name)

	none, err := f.artists.SearchByName(ctx, "zzz", refTime)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, f.db, func(tx *sql.Tx) error {
		if err := f.venues.CreateTx(ctx, tx, sampleVenue("Never Seen")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.venues.SearchByName(ctx, "never", refTime)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Club!_Fart!%!!%", containsPattern("Club_Fart%!"))
}

func TestSearchByName_FoldsNonASCII(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	elan := sampleVenue("Élan Club")
	f.addVenue(t, elan)
	f.addVenue(t, sampleVenue("Elan Vital"))
	a := sampleArtist("Ärzte")
	f.addArtist(t, a)

	for _, term := range []string{"Élan", "élan", "ÉLAN", "an cl"} {
		got, err := f.venues.SearchByName(ctx, term, refTime)
		require.NoError(t, err, term)
		require.Len(t, got, 1, term)
		assert.Equal(t, elan.ID, got[0].ID, term)
	}

	got, err := f.artists.SearchByName(ctx, "ärz", refTime)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCasefold(t *testing.T) {
	v, err := casefold(nil, []driver.Value{"ÉLAN Straße"})
	require.NoError(t, err)
	assert.Equal(t, "élan strasse", v)

	v, err = casefold(nil, []driver.Value{nil})
	require.NoError(t, err)
	assert.Nil(t, v)
}
