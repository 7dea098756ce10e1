package booking

import "time"

// LookAroundDays is the band added on each side of an availability query
// when loading reservations from the store, so boundary gaps are never
// missed by the scan.
const LookAroundDays = 30

// ComputeAvailability returns the free windows within [from, to) given
// the existing reservations, which must be sorted ascending by arrival
// and pairwise non-overlapping. It is a pure function over its inputs.
//
// Gaps are collected in scan order: the requested window itself when it
// ends on or before the first arrival, the span between consecutive
// reservations whenever departure and next arrival differ, and the span
// from the last departure to the end of the window. A gap is kept when
// it ends inside the window (gap.End <= to) and the window starts before
// it ends (from < gap.End). Retained gaps keep their true bounds: a gap
// opening before `from` is returned unclipped. That can hand back a
// window slightly wider than the request; callers have come to rely on
// seeing the full gap, so it stays.
func ComputeAvailability(existing []Reservation, from, to time.Time) []AvailableWindow {
	from, to = Date(from), Date(to)

	if len(existing) == 0 {
		return []AvailableWindow{{Start: from, End: to}}
	}

	var gaps []AvailableWindow

	if !to.After(existing[0].Arrival) {
		gaps = append(gaps, AvailableWindow{Start: from, End: to})
	}
	for i := 0; i < len(existing)-1; i++ {
		if !existing[i].Departure.Equal(existing[i+1].Arrival) {
			gaps = append(gaps, AvailableWindow{Start: existing[i].Departure, End: existing[i+1].Arrival})
		}
	}
	if last := existing[len(existing)-1]; last.Departure.Before(to) {
		gaps = append(gaps, AvailableWindow{Start: last.Departure, End: to})
	}

	windows := make([]AvailableWindow, 0, len(gaps))
	for _, g := range gaps {
		if !g.End.After(to) && from.Before(g.End) {
			windows = append(windows, g)
		}
	}
	return windows
}

// SpotFits reports whether [start, end) fits entirely inside one of the
// given windows. The windows are expected to come from
// ComputeAvailability over the same [start, end) query.
func SpotFits(windows []AvailableWindow, start, end time.Time) bool {
	start, end = Date(start), Date(end)
	for _, w := range windows {
		if !end.Equal(w.End) {
			return false
		}
		if start.Equal(w.Start) && end.Equal(w.End) {
			return true
		}
		if start.Before(w.End) && !end.After(w.End) {
			return true
		}
	}
	return false
}
