package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRange(t *testing.T) {
	today := base

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "valid two night stay", start: 2, end: 4},
		{name: "arrival at horizon", start: 30, end: 32},
		{name: "departure before arrival", start: 3, end: 2, wantErr: true},
		{name: "same day arrival and departure", start: 2, end: 2, wantErr: true},
		{name: "arrival today", start: 0, end: 2, wantErr: true},
		{name: "arrival in the past", start: -1, end: 2, wantErr: true},
		{name: "arrival beyond horizon", start: 31, end: 33, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(day(tt.start), day(tt.end), today)
			if tt.wantErr {
				assert.True(t, IsInvalidRange(err), "expected invalid range, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRangeFirstFailureWins(t *testing.T) {
	// reversed AND in the past: ordering check fires first
	err := ValidateRange(day(-1), day(-3), base)
	assert.EqualError(t, err, "check in date cannot be after checkout date")
}

func TestValidateRangeIgnoresTimeOfDay(t *testing.T) {
	start := day(1).Add(23 * time.Hour)
	end := day(3).Add(5 * time.Minute)
	assert.NoError(t, ValidateRange(start, end, base))
}
