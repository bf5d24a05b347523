package schedule

import (
	"time"

	"crown_transport/internal/calendar"
)

// ResolveOverlay returns the driver and vehicle in effect for job on date.
//
// An assignment matches when its Date equals date or date lies within
// StartDate..EndDate. When several assignments overlap the first one declared
// wins, not the narrowest. A match overrides both legs; TimeOfDay is carried
// through for display only.
func ResolveOverlay(job *Job, date time.Time) Assignment {
	if ta, ok := matchTemporary(job.TemporaryAssignments, date); ok {
		return Assignment{
			Driver:    ta.Driver,
			Vehicle:   ta.Vehicle,
			Temporary: true,
			TimeOfDay: ta.TimeOfDay,
		}
	}
	return Assignment{Driver: job.Driver, Vehicle: job.Vehicle}
}

func matchTemporary(assignments []TemporaryAssignment, date time.Time) (TemporaryAssignment, bool) {
	for _, ta := range assignments {
		if ta.Date != "" {
			if d, err := calendar.ParseDate(ta.Date); err == nil && d.Equal(date) {
				return ta, true
			}
		}
		if ta.StartDate == "" || ta.EndDate == "" {
			continue
		}
		start, err := calendar.ParseDate(ta.StartDate)
		if err != nil {
			continue
		}
		end, err := calendar.ParseDate(ta.EndDate)
		if err != nil {
			continue
		}
		if calendar.InRange(date, start, end) {
			return ta, true
		}
	}
	return TemporaryAssignment{}, false
}
