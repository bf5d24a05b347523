// Package schedule expands recurring jobs into concrete per-date pickup legs and
// layers the time-scoped overlays (temporary drivers, school holidays, weekly
// special services) on top of them.
package schedule

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrMissingReference marks a student that is not assigned to both a home stop
// and a school stop of a job. Such students are skipped, never fatal.
var ErrMissingReference = errors.New("student has no home/school stop pair")

// Leg is the direction of a pickup.
type Leg string

const (
	LegAM Leg = "AM" // home -> school
	LegPM Leg = "PM" // school -> home
)

// TimeOfDay tags a temporary assignment. It is display metadata only: a
// matching assignment overrides both legs whatever its tag.
type TimeOfDay string

const (
	Morning TimeOfDay = "MORNING"
	Evening TimeOfDay = "EVENING"
	Both    TimeOfDay = "BOTH"
)

type Driver struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Vehicle struct {
	ID           uint   `json:"id"`
	Registration string `json:"registration"`
}

// Stop is one ordered stop of a job. School stops carry the school they serve.
type Stop struct {
	Location string `json:"location"`
	IsSchool bool   `json:"is_school"`
	SchoolID *uint  `json:"school_id,omitempty"`
	Students []uint `json:"students"`
	TimeAM   string `json:"time_am"`
	TimePM   string `json:"time_pm"`
}

// TemporaryAssignment replaces the job's driver and vehicle for a single Date
// or for the inclusive span StartDate..EndDate.
type TemporaryAssignment struct {
	Date      string    `json:"date,omitempty"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	Driver    Driver    `json:"driver"`
	Vehicle   Vehicle   `json:"vehicle"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

type SchoolHoliday struct {
	Date     string `json:"date"`
	SchoolID uint   `json:"school_id"`
}

// SpecialService is a weekly recurring extra charge for one student.
type SpecialService struct {
	StudentID        uint            `json:"student_id"`
	DayOfWeek        string          `json:"day_of_week"`
	ServiceType      string          `json:"service_type"`
	SpecialTime      string          `json:"special_time,omitempty"`
	AdditionalCharge decimal.Decimal `json:"additional_charge"`
	Notes            string          `json:"notes,omitempty"`
}

// AttendanceRecord is what actually happened for one student on one date.
// Present is the coarse flag some records carry; only the special-service
// absence check reads it.
type AttendanceRecord struct {
	StudentID       uint   `json:"student_id"`
	Date            string `json:"date"`
	MorningAttended bool   `json:"morning_attended"`
	EveningAttended bool   `json:"evening_attended"`
	Present         *bool  `json:"present,omitempty"`
}

// Pricing holds the job-level price overrides. A null price falls back to the
// route default when billing.
type Pricing struct {
	ContractPrice decimal.NullDecimal `json:"contract_price"`
	DriverPrice   decimal.NullDecimal `json:"driver_price"`
	PAPrice       decimal.NullDecimal `json:"pa_price"`
	IsPANeeded    bool                `json:"is_pa_needed"`
}

// Job is a recurring route assignment with its overlays.
type Job struct {
	ID                   uint                  `json:"id"`
	RouteNo              string                `json:"route_no"`
	Stops                []Stop                `json:"stops"`
	OperatingDates       []string              `json:"operating_dates"`
	Driver               Driver                `json:"driver"`
	Vehicle              Vehicle               `json:"vehicle"`
	TemporaryAssignments []TemporaryAssignment `json:"temporary_assignments"`
	SchoolHolidays       []SchoolHoliday       `json:"school_holidays"`
	SpecialServices      []SpecialService      `json:"special_services"`
	Attendance           []AttendanceRecord    `json:"attendance"`
	Pricing              Pricing               `json:"pricing"`
}

// Assignment is the driver and vehicle in effect for a job on a date.
type Assignment struct {
	Driver    Driver    `json:"driver"`
	Vehicle   Vehicle   `json:"vehicle"`
	Temporary bool      `json:"temporary"`
	TimeOfDay TimeOfDay `json:"time_of_day,omitempty"`
}

// PickupEvent is one derived leg for one student on one date. It is never
// emitted with From equal to To.
type PickupEvent struct {
	JobID             uint             `json:"job_id"`
	RouteNo           string           `json:"route_no"`
	StudentID         uint             `json:"student_id"`
	Date              string           `json:"date"`
	Leg               Leg              `json:"leg"`
	From              string           `json:"from"`
	To                string           `json:"to"`
	SchoolID          *uint            `json:"school_id,omitempty"`
	PickupTime        string           `json:"pickup_time"`
	SpecialPickupTime string           `json:"special_pickup_time,omitempty"`
	Assignment        Assignment       `json:"assignment"`
	Pricing           Pricing          `json:"pricing"`
	SchoolHolidays    []SchoolHoliday  `json:"school_holidays,omitempty"`
	SpecialServices   []SpecialService `json:"special_services,omitempty"`
}
