package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company is the client billed for a route, usually a council or a school trust.
type Company struct {
	gorm.Model
	Name    string              `json:"name" binding:"required"`
	Email   string              `json:"email"`
	Phone   string              `json:"phone"`
	Address string              `json:"address"` // newline separated
	VATRate decimal.NullDecimal `json:"vat_rate" gorm:"type:numeric(5,2)"`
}
