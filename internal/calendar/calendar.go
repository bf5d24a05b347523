// Package calendar holds the date and clock helpers shared by the schedule and
// billing engines.
//
// Every date handled here is a local calendar date: "2024-03-04" means the 4th of
// March wherever the caller is. Dates are parsed to midnight UTC and never
// converted between zones, so the expander, the special-service matcher and the
// proration engine always agree on which weekday a date falls on.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

var (
	// ErrMalformedDate is returned for date strings that are not YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedClock is returned for time-of-day strings that are not HH:MM.
	ErrMalformedClock = errors.New("malformed clock time")
)

// ParseDate parses "YYYY-MM-DD". A full RFC3339 timestamp is accepted and
// truncated to the date as written, without shifting it into another zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate drops the clock part of t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayName returns the lowercase English weekday name, e.g. "monday".
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// SameWeekday reports whether name ("Monday", "monday", " MONDAY ") names the
// weekday t falls on.
func SameWeekday(name string, t time.Time) bool {
	return strings.EqualFold(strings.TrimSpace(name), t.Weekday().String())
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses both bounds. The bounds are swapped if given in reverse.
func NewRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	if e.Before(s) {
		s, e = e, s
	}
	return Range{Start: s, End: e}, nil
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d time.Time) bool {
	return InRange(d, r.Start, r.End)
}

// Days enumerates every calendar day in the range.
func (r Range) Days() []time.Time {
	return Days(r.Start, r.End)
}

// InRange reports whether start <= d <= end at day granularity.
func InRange(d, start, end time.Time) bool {
	d, start, end = Truncate(d), Truncate(start), Truncate(end)
	return !d.Before(start) && !d.After(end)
}

// InStringRange is InRange over raw date strings. Any malformed bound or date
// makes the date non-matching.
func InStringRange(date, start, end string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	s, err := ParseDate(start)
	if err != nil {
		return false
	}
	e, err := ParseDate(end)
	if err != nil {
		return false
	}
	return InRange(d, s, e)
}

// SameDate compares two date strings by calendar date. Malformed input never
// matches.
func SameDate(a, b string) bool {
	da, err := ParseDate(a)
	if err != nil {
		return false
	}
	db, err := ParseDate(b)
	if err != nil {
		return false
	}
	return da.Equal(db)
}

// Days enumerates calendar days from start to end inclusive. It returns nil when
// end is before start.
func Days(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return nil
	}
	out := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	return hour*60 + minute, nil
}

// Hour returns the hour component of "HH:MM".
func Hour(s string) (int, error) {
	mins, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return mins / 60, nil
}

// IsMorning reports whether the clock time falls before noon.
func IsMorning(s string) (bool, error) {
	h, err := Hour(s)
	if err != nil {
		return false, err
	}
	return h < 12, nil
}
