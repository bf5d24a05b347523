// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID        *uint  `json:"user_id" gorm:"uniqueIndex"` // drivers without a login have no user
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	VendorID      uint   `json:"vendor_id" gorm:"index"`
	Vendor        Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}
