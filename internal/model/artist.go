package model

// DefaultArtistSeekingDescription is stored when an artist is submitted
// without its own seeking description.
const DefaultArtistSeekingDescription = "We are looking to perform at an exciting venue!"

// Artist represents a performer that can be booked at shows.  Genres
// keep the order in which they were submitted.  This struct
// corresponds to a row in the `artists` table; genres are persisted
// as a JSON array.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – unique name of the artist.
//  City, State        – home town of the artist.
//  Phone              – contact phone number.
//  Genres             – ordered list of genres.
//  ImageLink          – URL of the artist's picture.
//  Website            – optional website URL.
//  FacebookLink       – optional facebook page URL.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free text shown next to SeekingVenue.
type Artist struct {
	ID                 uint64   // artists.id
	Name               string   // artists.name
	City               string   // artists.city
	State              string   // artists.state
	Phone              string   // artists.phone
	Genres             []string // artists.genres (JSON array)
	ImageLink          string   // artists.image_link
	Website            *string  // artists.website (nullable)
	FacebookLink       *string  // artists.facebook_link (nullable)
	SeekingVenue       bool     // artists.seeking_venue
	SeekingDescription string   // artists.seeking_description
}
