package schedule

import (
	"cmp"
	"math"
	"slices"

	"crown_transport/internal/calendar"
)

// BuildPickupList expands jobs over rng, applies their overlays and returns the
// legs sorted for dispatch.
func BuildPickupList(jobs []Job, rng calendar.Range) []PickupEvent {
	var out []PickupEvent
	for i := range jobs {
		events := expandJob(&jobs[i], rng)
		Annotate(&jobs[i], events)
		out = append(out, events...)
	}
	SortPickups(out)
	return out
}

type dayOverlay struct {
	assignment Assignment
	specials   []SpecialMatch
	holidays   []SchoolHoliday
}

// Annotate fills the overlay fields of events produced for job: effective
// driver and vehicle, school holidays of the leg's school, the student's special
// services for that weekday and the special pickup time of the leg.
func Annotate(job *Job, events []PickupEvent) {
	days := make(map[string]*dayOverlay)
	for i := range events {
		ev := &events[i]
		d, err := calendar.ParseDate(ev.Date)
		if err != nil {
			continue
		}
		ov, ok := days[ev.Date]
		if !ok {
			ov = &dayOverlay{
				assignment: ResolveOverlay(job, d),
				specials:   MatchSpecialServices(job.SpecialServices, d),
				holidays:   holidaysOn(job.SchoolHolidays, ev.Date),
			}
			days[ev.Date] = ov
		}

		ev.Assignment = ov.assignment
		ev.SchoolHolidays = nil
		if ev.SchoolID != nil {
			for _, h := range ov.holidays {
				if h.SchoolID == *ev.SchoolID {
					ev.SchoolHolidays = append(ev.SchoolHolidays, h)
				}
			}
		}
		ev.SpecialServices = nil
		for _, m := range ov.specials {
			if m.Service.StudentID == ev.StudentID {
				ev.SpecialServices = append(ev.SpecialServices, m.Service)
			}
		}
		if t, ok := SpecialTimeFor(ov.specials, ev.StudentID, ev.Leg); ok {
			ev.SpecialPickupTime = t
		}
	}
}

func holidaysOn(holidays []SchoolHoliday, date string) []SchoolHoliday {
	var out []SchoolHoliday
	for _, h := range holidays {
		if calendar.SameDate(h.Date, date) {
			out = append(out, h)
		}
	}
	return out
}

// SortPickups orders legs by date, then AM before PM, then pickup time as
// minutes since midnight. Unparsable pickup times go last within their group.
func SortPickups(events []PickupEvent) {
	slices.SortStableFunc(events, func(a, b PickupEvent) int {
		if c := cmp.Compare(dateKey(a.Date), dateKey(b.Date)); c != 0 {
			return c
		}
		if c := cmp.Compare(legRank(a.Leg), legRank(b.Leg)); c != 0 {
			return c
		}
		return cmp.Compare(clockKey(a.PickupTime), clockKey(b.PickupTime))
	})
}

func dateKey(s string) int64 {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return math.MaxInt64
	}
	return d.Unix()
}

func legRank(l Leg) int {
	if l == LegAM {
		return 0
	}
	return 1
}

func clockKey(s string) int {
	m, err := calendar.ParseClock(s)
	if err != nil {
		return math.MaxInt
	}
	return m
}
