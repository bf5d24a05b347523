package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceCounter is the single-row persisted invoice sequence.
type InvoiceCounter struct {
	ID        uint `gorm:"primaryKey"`
	Value     int  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// InvoiceRecord is a finalized invoice with the document as rendered.
type InvoiceRecord struct {
	gorm.Model
	Number      string          `json:"number" gorm:"index"`
	Sequence    int             `json:"sequence"`
	RouteNo     string          `json:"route_no" gorm:"index"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	NetTotal    decimal.Decimal `json:"net_total" gorm:"type:numeric(12,2)"`
	VATAmount   decimal.Decimal `json:"vat_amount" gorm:"type:numeric(12,2)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	Document    datatypes.JSON  `json:"document"`
	CreatedBy   uint            `json:"created_by"`
}
