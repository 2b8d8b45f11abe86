package model

// DefaultVenueSeekingDescription is stored when a venue is submitted without
// its own seeking description.
const DefaultVenueSeekingDescription = "We are looking for an exciting artist to perform here!"

// Venue represents a physical location that hosts shows.  A venue
// has zero or more shows.  This struct corresponds to a row in the
// `venues` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – unique name of the venue.
//  City, State        – together they form the venue's area.
//  Address            – street address.
//  Phone              – contact phone number.
//  ImageLink          – URL of the venue's picture.
//  Website            – optional website URL.
//  FacebookLink       – optional facebook page URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown next to SeekingTalent.
type Venue struct {
	ID                 uint64  // venues.id
	Name               string  // venues.name
	City               string  // venues.city
	State              string  // venues.state
	Address            string  // venues.address
	Phone              string  // venues.phone
	ImageLink          string  // venues.image_link
	Website            *string // venues.website (nullable)
	FacebookLink       *string // venues.facebook_link (nullable)
	SeekingTalent      bool    // venues.seeking_talent
	SeekingDescription string  // venues.seeking_description
}

// Area is a distinct (city, state) pair used to group venues.
type Area struct {
	City  string
	State string
}
