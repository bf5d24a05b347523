// internal/models/vendor.go
package models

import (
	"gorm.io/gorm"
)

// Vendor is the transport operator that supplies a route and invoices for it.
type Vendor struct {
	gorm.Model
	Name      string `json:"name" binding:"required"`
	Owner     string `json:"owner"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"` // newline separated
	VATNumber string `json:"vat_number"`

	Vehicles []Vehicle `gorm:"foreignKey:VendorID" json:"vehicles,omitempty"`
}
