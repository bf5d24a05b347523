// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	VehicleNo           string `json:"vehicle_no"`
	VehicleRegistration string `json:"vehicle_registration" gorm:"uniqueIndex"`
	Seats               int    `json:"seats"`
	VendorID            uint   `json:"vendor_id" gorm:"index"`
	InService           bool   `json:"in_service" gorm:"default:true"`
}
