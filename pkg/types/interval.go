package types

import "time"

// Interval is a closed time interval [Start, End]. A nil End means the
// interval is open-ended and extends to "now" (the query's reference time).
// Boundaries are inclusive: two intervals that touch at a single instant
// overlap.
type Interval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Window is a fully resolved closed interval, the intersection of two
// Intervals.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EndOr resolves the interval's end, substituting asOf when the end is open.
func (iv Interval) EndOr(asOf time.Time) time.Time {
	if iv.End == nil {
		return asOf
	}
	return *iv.End
}

// Valid reports whether Start <= End once the open end is resolved at asOf.
func (iv Interval) Valid(asOf time.Time) bool {
	return !iv.Start.After(iv.EndOr(asOf))
}

// Overlaps reports whether two intervals intersect, resolving open ends at
// asOf. max(start1, start2) <= min(end1, end2), boundaries inclusive.
func (iv Interval) Overlaps(other Interval, asOf time.Time) bool {
	_, ok := iv.Overlap(other, asOf)
	return ok
}

// Overlap computes the intersection window of two intervals, resolving open
// ends at asOf. The second return value is false when the intervals are
// disjoint.
func (iv Interval) Overlap(other Interval, asOf time.Time) (Window, bool) {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.EndOr(asOf)
	if o := other.EndOr(asOf); o.Before(end) {
		end = o
	}
	if start.After(end) {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// Contains reports whether the instant t falls inside the interval.
func (iv Interval) Contains(t, asOf time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.EndOr(asOf))
}

// Current reports whether the interval covers asOf itself, i.e. whether its
// overlap with the degenerate interval [asOf, asOf] is non-empty.
func (iv Interval) Current(asOf time.Time) bool {
	return iv.Contains(asOf, asOf)
}
