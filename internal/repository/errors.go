// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// services and handlers to distinguish between failure kinds without
// inspecting driver errors themselves.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue lookup by id yields no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist lookup by id yields no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrDuplicateName is returned when an insert or update would give two
// venues (or two artists) the same name.
var ErrDuplicateName = errors.New("name already exists")

// ErrMissingField is returned when a required column was left empty.
var ErrMissingField = errors.New("required field missing")

// ErrInvalidReference is returned when a show points at a venue or artist
// that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")
