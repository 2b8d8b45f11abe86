package testutil

import (
	"context"

	"github.com/iliyamo/booking-directory/internal/queue"
)

// EventRecorder is a queue.Publisher that keeps every event in memory and
// answers with Err.
type EventRecorder struct {
	Events []queue.ListingEvent
	Err    error
}

// Publish implements queue.Publisher.
func (r *EventRecorder) Publish(_ context.Context, ev queue.ListingEvent) error {
	r.Events = append(r.Events, ev)
	return r.Err
}
