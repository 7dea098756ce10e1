package booking

import (
	"context"
	"time"
)

// Store is the persistence boundary the booking core depends on.
// Implementations own the persisted Reservation and Guest records; the
// core only reads snapshots and commits whole records back.
type Store interface {
	// FindOverlapping returns the active reservations whose stay
	// overlaps [from, to), ascending by arrival date.
	FindOverlapping(ctx context.Context, from, to time.Time) ([]Reservation, error)
	FindByReference(ctx context.Context, ref string) (Reservation, error)
	// Save creates or replaces the reservation keyed by its reference.
	Save(ctx context.Context, r Reservation) error
	Delete(ctx context.Context, ref string) error

	FindGuestByEmail(ctx context.Context, email string) (Guest, error)
	SaveGuest(ctx context.Context, g Guest) error
}
