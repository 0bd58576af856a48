package production

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Window is the validity interval of a target rule. End == nil is open-ended.
type Window struct {
	Start time.Time
	End   *time.Time
}

// Valid reports whether End is not before Start.
func (w Window) Valid() bool {
	return w.End == nil || !DateOnly(*w.End).Before(DateOnly(w.Start))
}

// Covers reports whether day falls inside the closed interval.
func (w Window) Covers(day time.Time) bool {
	d := DateOnly(day)
	if DateOnly(w.Start).After(d) {
		return false
	}
	return w.End == nil || !DateOnly(*w.End).Before(d)
}

// Overlaps reports whether the two intervals share at least one day.
func (w Window) Overlaps(o Window) bool {
	if w.End != nil && DateOnly(*w.End).Before(DateOnly(o.Start)) {
		return false
	}
	if o.End != nil && DateOnly(*o.End).Before(DateOnly(w.Start)) {
		return false
	}
	return true
}

// SelectActive picks the candidate whose window covers day and started most
// recently. Ties on start keep the earlier candidate, so callers pass
// candidates in their preferred secondary order.
func SelectActive[T any](candidates []T, window func(T) Window, day time.Time) (T, bool) {
	var (
		best  T
		found bool
		start time.Time
	)
	for _, c := range candidates {
		w := window(c)
		if !w.Covers(day) {
			continue
		}
		s := DateOnly(w.Start)
		if !found || s.After(start) {
			best, start, found = c, s, true
		}
	}
	return best, found
}

// DateOnly strips the clock, keeping the calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today is the current calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOnly(now.In(loc))
}
