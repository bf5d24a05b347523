package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemporaryAssignment covers a job with another driver/vehicle for Date or
// for StartDate..EndDate.
type TemporaryAssignment struct {
	gorm.Model
	JobID     uint    `json:"job_id" gorm:"index"`
	Date      string  `json:"date"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	DriverID  uint    `json:"driver_id"`
	Driver    Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	TimeOfDay string  `json:"time_of_day" gorm:"default:BOTH"` // MORNING, EVENING, BOTH
}

type SchoolHoliday struct {
	gorm.Model
	JobID    uint   `json:"job_id" gorm:"index"`
	Date     string `json:"date"`
	SchoolID uint   `json:"school_id"`
}

// SpecialService is a weekly extra charge for one student.
type SpecialService struct {
	gorm.Model
	JobID            uint            `json:"job_id" gorm:"index"`
	StudentID        uint            `json:"student_id"`
	DayOfWeek        string          `json:"day_of_week"`
	ServiceType      string          `json:"service_type"`
	SpecialTime      string          `json:"special_time"`
	AdditionalCharge decimal.Decimal `json:"additional_charge" gorm:"type:numeric(10,2)"`
	Notes            string          `json:"notes"`
}

type Attendance struct {
	gorm.Model
	JobID           uint   `json:"job_id" gorm:"index:idx_attendance_job_date"`
	StudentID       uint   `json:"student_id"`
	Date            string `json:"date" gorm:"index:idx_attendance_job_date"`
	MorningAttended bool   `json:"morning_attended"`
	EveningAttended bool   `json:"evening_attended"`
	Present         *bool  `json:"present"`
}
