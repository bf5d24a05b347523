package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Route is a contracted transport route. Its rates are defaults that a job
// may override.
type Route struct {
	gorm.Model

	RouteNo         string              `json:"route_no" gorm:"uniqueIndex" binding:"required"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	InvoiceTemplate string              `json:"invoice_template"`
	DailyRate       decimal.NullDecimal `json:"daily_rate" gorm:"type:numeric(10,2)"`
	PARate          decimal.NullDecimal `json:"pa_rate" gorm:"type:numeric(10,2)"`

	CompanyID uint    `json:"company_id" gorm:"index"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	VendorID  uint    `json:"vendor_id" gorm:"index"`
	Vendor    Vendor  `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`

	// Geometry stored as WKB; the API speaks GeoJSON.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	Jobs []Job `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"jobs,omitempty"`
}
