package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Job is a recurring run of a route with its own driver, vehicle, stops and
// price overrides.
type Job struct {
	gorm.Model
	RouteID   uint    `json:"route_id" gorm:"index"`
	Route     Route   `gorm:"foreignKey:RouteID" json:"-"`
	DriverID  uint    `json:"driver_id"`
	Driver    Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	OperatingDates pq.StringArray `json:"operating_dates" gorm:"type:text[]"`

	ContractPrice decimal.NullDecimal `json:"contract_price" gorm:"type:numeric(10,2)"`
	DriverPrice   decimal.NullDecimal `json:"driver_price" gorm:"type:numeric(10,2)"`
	PAPrice       decimal.NullDecimal `json:"pa_price" gorm:"type:numeric(10,2)"`
	IsPANeeded    bool                `json:"is_pa_needed"`

	Stops                []Stop                `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;" json:"stops"`
	TemporaryAssignments []TemporaryAssignment `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;" json:"temporary_assignments"`
	SchoolHolidays       []SchoolHoliday       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;" json:"school_holidays"`
	SpecialServices      []SpecialService      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;" json:"special_services"`
	Attendance           []Attendance          `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;" json:"attendance,omitempty"`
}

// Stop is a pickup or drop-off point of a job, ordered by Seq.
type Stop struct {
	gorm.Model
	JobID    uint          `json:"job_id" gorm:"index"`
	Seq      int           `json:"seq"`
	Location string        `json:"location" binding:"required"`
	IsSchool bool          `json:"is_school"`
	SchoolID *uint         `json:"school_id"`
	Students pq.Int64Array `json:"students" gorm:"type:integer[]"`
	TimeAM   string        `json:"time_am"` // HH:MM
	TimePM   string        `json:"time_pm"` // HH:MM
	Lat      float64       `json:"lat"`
	Lng      float64       `json:"lng"`
}
