package booking

import "time"

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

// Reservation is a single stay on the campsite. The interval
// [Arrival, Departure) is half-open: a departure day may be another
// reservation's arrival day.
type Reservation struct {
	Reference string
	GuestID   string
	Arrival   time.Time
	Departure time.Time
	Status    Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Reservation) Nights() int {
	return DaysBetween(r.Arrival, r.Departure)
}

// Guest is looked up by email and never duplicated.
type Guest struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// AvailableWindow is a maximal free interval [Start, End). Computed on
// demand, never persisted.
type AvailableWindow struct {
	Start time.Time
	End   time.Time
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Date truncates t to a calendar date at UTC midnight. All interval
// arithmetic in this package assumes inputs normalized this way.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)) / (24 * time.Hour))
}
