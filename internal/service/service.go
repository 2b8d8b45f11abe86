// Package service implements the directory's read views and mutations on
// top of the repositories.  Every mutation runs in its own transaction and
// announces the committed change on the configured queue.Publisher.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
)

// ErrInvalidInput is returned when a submitted value cannot be parsed,
// such as a malformed show start time or a non-numeric id.
var ErrInvalidInput = errors.New("invalid input")

// Clock returns the current time.  Past and upcoming shows are computed
// against it on every read.
type Clock func() time.Time

// Service bundles the repositories behind the directory operations.
type Service struct {
	db      *sql.DB
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	events  queue.Publisher
	clock   Clock
	logger  *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithPublisher sets where listing events go.  The default drops them.
func WithPublisher(p queue.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service reading from and writing to db.
func New(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:      db,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		events:  queue.NopPublisher{},
		clock:   time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// publish announces a committed change.  The mutation already succeeded, so
// a broker failure is only logged.
func (s *Service) publish(ctx context.Context, ev queue.ListingEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Error("publish listing event", "kind", ev.Kind, "id", ev.ID, "err", err)
	}
}
