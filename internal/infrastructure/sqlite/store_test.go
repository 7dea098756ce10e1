package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akintayo/reservation/internal/domain/booking"
)

var base = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestReservationRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveGuest(ctx, booking.Guest{ID: "g1", Email: "john@doe.com", FullName: "John Doe", CreatedAt: base}))

	r := booking.Reservation{
		Reference: "ref-1",
		GuestID:   "g1",
		Arrival:   day(2),
		Departure: day(4),
		Status:    booking.StatusActive,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, s.Save(ctx, r))

	got, err := s.FindByReference(ctx, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, day(2), got.Arrival)
	assert.Equal(t, day(4), got.Departure)
	assert.Equal(t, booking.StatusActive, got.Status)

	// update in place through the same Save
	r.Arrival, r.Departure = day(3), day(5)
	require.NoError(t, s.Save(ctx, r))
	got, err = s.FindByReference(ctx, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, day(3), got.Arrival)
	assert.Equal(t, day(5), got.Departure)
}

func TestFindOverlappingQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveGuest(ctx, booking.Guest{ID: "g1", Email: "a@b.com", FullName: "A", CreatedAt: base}))
	for _, r := range []booking.Reservation{
		{Reference: "late", GuestID: "g1", Arrival: day(8), Departure: day(10), Status: booking.StatusActive, CreatedAt: base, UpdatedAt: base},
		{Reference: "early", GuestID: "g1", Arrival: day(2), Departure: day(4), Status: booking.StatusActive, CreatedAt: base, UpdatedAt: base},
		{Reference: "cancelled", GuestID: "g1", Arrival: day(5), Departure: day(6), Status: booking.StatusCancelled, CreatedAt: base, UpdatedAt: base},
	} {
		require.NoError(t, s.Save(ctx, r))
	}

	got, err := s.FindOverlapping(ctx, day(3), day(9))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Reference)
	assert.Equal(t, "late", got[1].Reference)

	// half-open: a query starting on a departure day does not overlap
	got, err = s.FindOverlapping(ctx, day(4), day(5))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteAndNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.FindByReference(ctx, "missing")
	assert.True(t, booking.IsNotFound(err))
	assert.True(t, booking.IsNotFound(s.Delete(ctx, "missing")))

	require.NoError(t, s.SaveGuest(ctx, booking.Guest{ID: "g1", Email: "a@b.com", FullName: "A", CreatedAt: base}))
	require.NoError(t, s.Save(ctx, booking.Reservation{
		Reference: "ref-1", GuestID: "g1", Arrival: day(2), Departure: day(4),
		Status: booking.StatusActive, CreatedAt: base, UpdatedAt: base,
	}))
	require.NoError(t, s.Delete(ctx, "ref-1"))
	_, err = s.FindByReference(ctx, "ref-1")
	assert.True(t, booking.IsNotFound(err))
}

func TestGuestUpsertByEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.FindGuestByEmail(ctx, "john@doe.com")
	assert.True(t, booking.IsNotFound(err))

	require.NoError(t, s.SaveGuest(ctx, booking.Guest{ID: "g1", Email: "john@doe.com", FullName: "John Doe", CreatedAt: base}))
	require.NoError(t, s.SaveGuest(ctx, booking.Guest{ID: "g2", Email: "john@doe.com", FullName: "John A. Doe", CreatedAt: base}))

	got, err := s.FindGuestByEmail(ctx, "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID, "email upsert keeps the original id")
	assert.Equal(t, "John A. Doe", got.FullName)
}
