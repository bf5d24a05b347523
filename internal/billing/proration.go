// Package billing turns attendance into billable quantities and assembles the
// priced invoice document for a route.
package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crown_transport/internal/calendar"
	"crown_transport/internal/schedule"
)

// ServiceCharge is the prorated charge of one special service over a range.
type ServiceCharge struct {
	JobID               uint                    `json:"job_id"`
	Service             schedule.SpecialService `json:"service"`
	Occurrences         int                     `json:"occurrences"`
	BillableOccurrences int                     `json:"billable_occurrences"`
	Amount              decimal.Decimal         `json:"amount"`
}

// WeekdayGroup collects the special services sharing a weekday.
type WeekdayGroup struct {
	Day                 string          `json:"day"`
	BillableOccurrences int             `json:"billable_occurrences"`
	Amount              decimal.Decimal `json:"amount"`
}

// Proration is the attendance-derived quantities for a set of jobs.
type Proration struct {
	BillableDays         int             `json:"billable_days"`
	BillableDates        []string        `json:"billable_dates"`
	Services             []ServiceCharge `json:"services"`
	Groups               []WeekdayGroup  `json:"groups"`
	SpecialServiceAmount decimal.Decimal `json:"special_service_amount"`
}

// TotalBillableOccurrences sums the billable occurrences of every service.
func (p Proration) TotalBillableOccurrences() int {
	n := 0
	for _, s := range p.Services {
		n += s.BillableOccurrences
	}
	return n
}

type attendanceKey struct {
	student uint
	date    time.Time
}

// Prorate computes billable days and special-service charges for jobs in rng.
//
// A date is billable when any attendance record of any job has a morning or
// evening leg attended on it. A special service is billed once per date in rng
// falling on its weekday, unless the student was absent for the service's leg
// that day. Missing attendance counts as absent.
func Prorate(jobs []schedule.Job, rng calendar.Range) Proration {
	p := Proration{SpecialServiceAmount: decimal.Zero}

	billable := make(map[time.Time]struct{})
	for i := range jobs {
		for _, rec := range jobs[i].Attendance {
			if !rec.MorningAttended && !rec.EveningAttended {
				continue
			}
			d, err := calendar.ParseDate(rec.Date)
			if err != nil || !rng.Contains(d) {
				continue
			}
			billable[d] = struct{}{}
		}
	}
	days := rng.Days()
	for _, d := range days {
		if _, ok := billable[d]; ok {
			p.BillableDates = append(p.BillableDates, calendar.FormatDate(d))
		}
	}
	p.BillableDays = len(p.BillableDates)

	groupIdx := make(map[string]int)
	for i := range jobs {
		job := &jobs[i]
		if len(job.SpecialServices) == 0 {
			continue
		}
		attendance := indexAttendance(job.Attendance)
		for _, svc := range job.SpecialServices {
			charge := ServiceCharge{JobID: job.ID, Service: svc}
			leg, timed := schedule.Classify(svc)
			for _, d := range days {
				if !calendar.SameWeekday(svc.DayOfWeek, d) {
					continue
				}
				charge.Occurrences++
				rec, found := attendance[attendanceKey{svc.StudentID, d}]
				if !isAbsent(rec, found, leg, timed) {
					charge.BillableOccurrences++
				}
			}
			charge.Amount = svc.AdditionalCharge.Mul(decimal.NewFromInt(int64(charge.BillableOccurrences)))
			p.Services = append(p.Services, charge)
			p.SpecialServiceAmount = p.SpecialServiceAmount.Add(charge.Amount)

			day := strings.ToLower(strings.TrimSpace(svc.DayOfWeek))
			gi, ok := groupIdx[day]
			if !ok {
				gi = len(p.Groups)
				groupIdx[day] = gi
				p.Groups = append(p.Groups, WeekdayGroup{Day: day, Amount: decimal.Zero})
			}
			p.Groups[gi].BillableOccurrences += charge.BillableOccurrences
			p.Groups[gi].Amount = p.Groups[gi].Amount.Add(charge.Amount)
		}
	}
	return p
}

func indexAttendance(records []schedule.AttendanceRecord) map[attendanceKey]schedule.AttendanceRecord {
	out := make(map[attendanceKey]schedule.AttendanceRecord, len(records))
	for _, rec := range records {
		d, err := calendar.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		k := attendanceKey{rec.StudentID, d}
		if _, dup := out[k]; !dup {
			out[k] = rec
		}
	}
	return out
}

// isAbsent applies the special-service absence rule. An explicit present=false
// wins over the leg flags; untimed services need at least one attended leg.
func isAbsent(rec schedule.AttendanceRecord, found bool, leg schedule.Leg, timed bool) bool {
	if !found {
		return true
	}
	if rec.Present != nil && !*rec.Present {
		return true
	}
	if !timed {
		return !rec.MorningAttended && !rec.EveningAttended
	}
	if leg == schedule.LegAM {
		return !rec.MorningAttended
	}
	return !rec.EveningAttended
}
