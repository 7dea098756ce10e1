package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akintayo/reservation/internal/domain/booking"
	"github.com/akintayo/reservation/internal/locking"
	"github.com/akintayo/reservation/internal/observability"
)

const msgDateConflict = "unable to find a spot for the dates provided"

// Default bounded waits for the booking lock. Creates tolerate a long
// queue; modifies give up quickly so a held lock cannot stall them.
const (
	DefaultCreateLockWait = 20 * time.Second
	DefaultModifyLockWait = 3 * time.Second
)

// Coordinator owns the booking critical section: every create and
// modify runs an optimistic availability check, then re-checks under
// the lock before committing to the store. The optimistic pass is
// purely advisory; only the locked re-check guarantees no overlap.
type Coordinator struct {
	Store   booking.Store
	Lock    locking.Locker
	Clock   booking.Clock
	Log     zerolog.Logger
	Metrics *observability.Metrics

	CreateLockWait time.Duration
	ModifyLockWait time.Duration
}

func NewCoordinator(store booking.Store, lock locking.Locker, clock booking.Clock, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		Store:          store,
		Lock:           lock,
		Clock:          clock,
		Log:            log,
		CreateLockWait: DefaultCreateLockWait,
		ModifyLockWait: DefaultModifyLockWait,
	}
}

// CheckAvailability returns the free windows within [from, to). A zero
// `from` defaults to tomorrow, a zero `to` to one month from today.
func (c *Coordinator) CheckAvailability(ctx context.Context, from, to time.Time) ([]booking.AvailableWindow, error) {
	today := booking.Date(c.Clock.Now())
	if from.IsZero() {
		from = today.AddDate(0, 0, 1)
	}
	if to.IsZero() {
		to = today.AddDate(0, 1, 0)
	}
	if err := booking.ValidateRange(from, to, today); err != nil {
		return nil, err
	}
	return c.availability(ctx, from, to, "")
}

// Book reserves [arrival, departure) for the guest identified by email,
// creating the guest on first booking. Exactly one of two concurrent
// overlapping books can succeed; the loser gets a conflict error.
func (c *Coordinator) Book(ctx context.Context, email, fullName string, arrival, departure time.Time) (booking.Reservation, error) {
	arrival, departure = booking.Date(arrival), booking.Date(departure)

	if err := booking.ValidateRange(arrival, departure, booking.Date(c.Clock.Now())); err != nil {
		c.Metrics.Outcome("book", "invalid")
		return booking.Reservation{}, err
	}
	if err := c.spotAvailable(ctx, arrival, departure, ""); err != nil {
		c.Metrics.Outcome("book", outcomeOf(err))
		return booking.Reservation{}, err
	}

	if !c.acquire(ctx, c.CreateLockWait) {
		c.Metrics.Outcome("book", "lock_timeout")
		return booking.Reservation{}, booking.NewConflict(msgDateConflict)
	}
	defer c.Lock.Release()

	if err := c.spotAvailable(ctx, arrival, departure, ""); err != nil {
		c.Metrics.Outcome("book", outcomeOf(err))
		return booking.Reservation{}, err
	}

	guest, err := c.resolveGuest(ctx, email, fullName)
	if err != nil {
		return booking.Reservation{}, err
	}

	now := c.Clock.Now()
	res := booking.Reservation{
		Reference: uuid.NewString(),
		GuestID:   guest.ID,
		Arrival:   arrival,
		Departure: departure,
		Status:    booking.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Store.Save(ctx, res); err != nil {
		return booking.Reservation{}, err
	}

	c.Metrics.Outcome("book", "ok")
	c.Log.Info().
		Str("reference", res.Reference).
		Time("arrival", res.Arrival).
		Time("departure", res.Departure).
		Msg("reservation created")
	return res, nil
}

// Modify re-validates the new range as a fresh interval, with the
// reservation's own stay excluded from the overlap checks so it never
// conflicts with itself.
func (c *Coordinator) Modify(ctx context.Context, ref string, arrival, departure time.Time) (booking.Reservation, error) {
	res, err := c.Store.FindByReference(ctx, ref)
	if err != nil {
		return booking.Reservation{}, err
	}
	arrival, departure = booking.Date(arrival), booking.Date(departure)

	if err := booking.ValidateRange(arrival, departure, booking.Date(c.Clock.Now())); err != nil {
		c.Metrics.Outcome("modify", "invalid")
		return booking.Reservation{}, err
	}
	if err := c.spotAvailable(ctx, arrival, departure, ref); err != nil {
		c.Metrics.Outcome("modify", outcomeOf(err))
		return booking.Reservation{}, err
	}

	if !c.acquire(ctx, c.ModifyLockWait) {
		c.Metrics.Outcome("modify", "lock_timeout")
		return booking.Reservation{}, booking.NewConflict(msgDateConflict)
	}
	defer c.Lock.Release()

	if err := c.spotAvailable(ctx, arrival, departure, ref); err != nil {
		c.Metrics.Outcome("modify", outcomeOf(err))
		return booking.Reservation{}, err
	}

	c.Log.Info().
		Str("reference", ref).
		Time("from_arrival", res.Arrival).Time("to_arrival", arrival).
		Time("from_departure", res.Departure).Time("to_departure", departure).
		Msg("reservation updated")

	res.Arrival = arrival
	res.Departure = departure
	res.UpdatedAt = c.Clock.Now()
	if err := c.Store.Save(ctx, res); err != nil {
		return booking.Reservation{}, err
	}
	c.Metrics.Outcome("modify", "ok")
	return res, nil
}

// Cancel removes the reservation. Deleting cannot introduce an overlap,
// so no lock is taken.
func (c *Coordinator) Cancel(ctx context.Context, ref string) error {
	if _, err := c.Store.FindByReference(ctx, ref); err != nil {
		return err
	}
	c.Log.Info().Str("reference", ref).Msg("deleting reservation")
	if err := c.Store.Delete(ctx, ref); err != nil {
		return err
	}
	c.Metrics.Outcome("cancel", "ok")
	return nil
}

func (c *Coordinator) Retrieve(ctx context.Context, ref string) (booking.Reservation, error) {
	return c.Store.FindByReference(ctx, ref)
}

// availability loads reservations in a look-around band so gaps at the
// window edges survive the scan, then computes the free windows.
func (c *Coordinator) availability(ctx context.Context, from, to time.Time, excludeRef string) ([]booking.AvailableWindow, error) {
	from, to = booking.Date(from), booking.Date(to)
	existing, err := c.Store.FindOverlapping(ctx,
		from.AddDate(0, 0, -booking.LookAroundDays),
		to.AddDate(0, 0, booking.LookAroundDays),
	)
	if err != nil {
		return nil, err
	}
	if excludeRef != "" {
		kept := existing[:0]
		for _, r := range existing {
			if r.Reference != excludeRef {
				kept = append(kept, r)
			}
		}
		existing = kept
	}
	return booking.ComputeAvailability(existing, from, to), nil
}

func (c *Coordinator) spotAvailable(ctx context.Context, start, end time.Time, excludeRef string) error {
	if booking.DaysBetween(start, end) > booking.MaxStayNights {
		return booking.NewInvalidRange("reservation can be made for a maximum of %d days", booking.MaxStayNights)
	}
	windows, err := c.availability(ctx, start, end, excludeRef)
	if err != nil {
		return err
	}
	if !booking.SpotFits(windows, start, end) {
		return booking.NewConflict(msgDateConflict)
	}
	return nil
}

func (c *Coordinator) acquire(ctx context.Context, wait time.Duration) bool {
	begin := time.Now()
	ok := c.Lock.Acquire(ctx, wait)
	c.Metrics.LockWait(time.Since(begin))
	return ok
}

func (c *Coordinator) resolveGuest(ctx context.Context, email, fullName string) (booking.Guest, error) {
	guest, err := c.Store.FindGuestByEmail(ctx, email)
	switch {
	case err == nil:
		return guest, nil
	case booking.IsNotFound(err):
		guest = booking.Guest{
			ID:        uuid.NewString(),
			Email:     email,
			FullName:  fullName,
			CreatedAt: c.Clock.Now(),
		}
		if err := c.Store.SaveGuest(ctx, guest); err != nil {
			return booking.Guest{}, err
		}
		return guest, nil
	default:
		return booking.Guest{}, err
	}
}

func outcomeOf(err error) string {
	switch booking.KindOf(err) {
	case booking.KindInvalidRange:
		return "invalid"
	case booking.KindConflict:
		return "conflict"
	case booking.KindNotFound:
		return "not_found"
	default:
		return "error"
	}
}
