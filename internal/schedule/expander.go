package schedule

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"crown_transport/internal/calendar"
)

// Expand flattens jobs into raw AM/PM legs for every operating date inside rng.
// Overlays are not applied; see BuildPickupList for the annotated list.
func Expand(jobs []Job, rng calendar.Range) []PickupEvent {
	var out []PickupEvent
	for i := range jobs {
		out = append(out, expandJob(&jobs[i], rng)...)
	}
	return out
}

func expandJob(job *Job, rng calendar.Range) []PickupEvent {
	dates := OperatingDatesIn(job, rng)
	if len(dates) == 0 {
		return nil
	}
	home, school := stopIndex(job)

	var out []PickupEvent
	for _, studentID := range studentOrder(job) {
		h, okHome := home[studentID]
		s, okSchool := school[studentID]
		if !okHome || !okSchool {
			logrus.WithFields(logrus.Fields{
				"job_id":     job.ID,
				"student_id": studentID,
				"has_home":   okHome,
				"has_school": okSchool,
			}).Debug(ErrMissingReference.Error())
			continue
		}
		for _, d := range dates {
			date := calendar.FormatDate(d)
			if h.Location != s.Location {
				out = append(out, PickupEvent{
					JobID:      job.ID,
					RouteNo:    job.RouteNo,
					StudentID:  studentID,
					Date:       date,
					Leg:        LegAM,
					From:       h.Location,
					To:         s.Location,
					SchoolID:   s.SchoolID,
					PickupTime: h.TimeAM,
					Pricing:    job.Pricing,
				}, PickupEvent{
					JobID:      job.ID,
					RouteNo:    job.RouteNo,
					StudentID:  studentID,
					Date:       date,
					Leg:        LegPM,
					From:       s.Location,
					To:         h.Location,
					SchoolID:   s.SchoolID,
					PickupTime: s.TimePM,
					Pricing:    job.Pricing,
				})
			}
		}
	}
	return out
}

// OperatingDatesIn returns the job's operating dates that fall inside rng,
// ascending and without duplicates. Malformed dates are skipped.
func OperatingDatesIn(job *Job, rng calendar.Range) []time.Time {
	seen := make(map[time.Time]struct{}, len(job.OperatingDates))
	var out []time.Time
	for _, raw := range job.OperatingDates {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			logrus.WithError(err).WithField("job_id", job.ID).Debug("skipping operating date")
			continue
		}
		if !rng.Contains(d) {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	slices.SortFunc(out, time.Time.Compare)
	return out
}

// stopIndex maps each student to the first home stop and the first school stop
// listing them.
func stopIndex(job *Job) (home, school map[uint]*Stop) {
	home = make(map[uint]*Stop)
	school = make(map[uint]*Stop)
	for i := range job.Stops {
		stop := &job.Stops[i]
		target := home
		if stop.IsSchool {
			target = school
		}
		for _, id := range stop.Students {
			if _, ok := target[id]; !ok {
				target[id] = stop
			}
		}
	}
	return home, school
}

// studentOrder lists students in order of first appearance across the stops.
func studentOrder(job *Job) []uint {
	seen := make(map[uint]struct{})
	var out []uint
	for _, stop := range job.Stops {
		for _, id := range stop.Students {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

