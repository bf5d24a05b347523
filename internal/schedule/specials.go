package schedule

import (
	"time"

	"crown_transport/internal/calendar"
)

// SpecialMatch is a special service falling on a concrete date.
type SpecialMatch struct {
	Service SpecialService
	// Leg is set only when Timed is true.
	Leg   Leg
	Timed bool
}

// Classify puts a service on the AM leg when its special time is before noon
// and on the PM leg otherwise. Services without a parsable special time are
// untimed: they are still billed per occurrence but belong to no leg.
func Classify(s SpecialService) (Leg, bool) {
	if s.SpecialTime == "" {
		return "", false
	}
	morning, err := calendar.IsMorning(s.SpecialTime)
	if err != nil {
		return "", false
	}
	if morning {
		return LegAM, true
	}
	return LegPM, true
}

// MatchSpecialServices selects the services whose weekday is the weekday of
// date, in declaration order.
func MatchSpecialServices(services []SpecialService, date time.Time) []SpecialMatch {
	var out []SpecialMatch
	for _, s := range services {
		if !calendar.SameWeekday(s.DayOfWeek, date) {
			continue
		}
		leg, timed := Classify(s)
		out = append(out, SpecialMatch{Service: s, Leg: leg, Timed: timed})
	}
	return out
}

// SpecialTimeFor returns the first special time matched for the student on the
// given leg.
func SpecialTimeFor(matches []SpecialMatch, studentID uint, leg Leg) (string, bool) {
	for _, m := range matches {
		if m.Timed && m.Leg == leg && m.Service.StudentID == studentID {
			return m.Service.SpecialTime, true
		}
	}
	return "", false
}
