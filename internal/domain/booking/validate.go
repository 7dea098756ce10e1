package booking

import "time"

const (
	// MinLeadDays is the minimum number of days between today and an
	// allowed arrival date.
	MinLeadDays = 1
	// HorizonDays is how far into the future a stay may start.
	HorizonDays = 30
	// MaxStayNights caps the length of a single stay.
	MaxStayNights = 3
)

// ValidateRange checks a requested [start, end) stay against today.
// Checks run in order and the first failure wins. The max-stay rule is
// not part of range validation; the coordinator enforces it when it
// checks for a fitting window.
func ValidateRange(start, end, today time.Time) error {
	start, end, today = Date(start), Date(end), Date(today)

	if start.After(end) {
		return NewInvalidRange("check in date cannot be after checkout date")
	}
	if start.Equal(end) {
		return NewInvalidRange("start date and end date cannot be the same")
	}
	if !start.After(today) {
		return NewInvalidRange("start date must be at least one day ahead")
	}
	if DaysBetween(today, start) > HorizonDays {
		return NewInvalidRange("reservation cannot be more than 1 month away")
	}
	return nil
}
