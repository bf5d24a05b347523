package billing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"crown_transport/internal/schedule"
)

// ErrUpstreamFetch wraps failures of the detail lookups behind DetailSource.
var ErrUpstreamFetch = errors.New("upstream detail unavailable")

// Party is a client or supplier block printed on an invoice.
type Party struct {
	Name      string   `json:"name"`
	Address   []string `json:"address"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	VATNumber string   `json:"vat_number,omitempty"`
}

// RouteDetail carries the route-level defaults used when a job has no
// override of its own.
type RouteDetail struct {
	RouteNo         string
	Name            string
	InvoiceTemplate string
	DailyRate       decimal.NullDecimal
	PARate          decimal.NullDecimal
	CompanyID       uint
	VendorID        uint
}

// CompanyDetail is the billed client together with its VAT rate, if known.
type CompanyDetail struct {
	Party
	VATRate decimal.NullDecimal
}

// DetailSource fetches supporting records from the data store.
type DetailSource interface {
	Route(ctx context.Context, routeNo string) (RouteDetail, error)
	Company(ctx context.Context, id uint) (CompanyDetail, error)
	Vendor(ctx context.Context, id uint) (Party, error)
}

// Placeholders substituted when a lookup fails.
var (
	PlaceholderRoute = RouteDetail{
		Name:            "Unknown route",
		InvoiceTemplate: "",
	}
	PlaceholderClient = CompanyDetail{
		Party: Party{Name: "Client details unavailable", Address: []string{"Address unavailable"}},
	}
	PlaceholderSupplier = Party{
		Name:    "Crown Transport",
		Address: []string{"Address unavailable"},
	}
)

// DefaultVATRate applies when neither the request nor the client carries a rate.
var DefaultVATRate = decimal.NewFromInt(20)

// firstSet returns the first valid value, or zero.
func firstSet(candidates ...decimal.NullDecimal) decimal.Decimal {
	for _, c := range candidates {
		if c.Valid {
			return c.Decimal
		}
	}
	return decimal.Zero
}

// Prices resolves the unit prices for an invoice from the jobs and the route.
type Prices struct {
	Daily      decimal.Decimal
	PA         decimal.Decimal
	IsPANeeded bool
	// Mixed is set when the jobs disagree on their contract price.
	Mixed bool
}

// ResolvePrices picks the daily price from the first job with a contract
// price, then the route daily rate, then zero. The PA price follows the same
// order. PA applies when any job needs one.
func ResolvePrices(jobs []schedule.Job, route RouteDetail) Prices {
	var contract, pa []decimal.NullDecimal
	var p Prices
	for _, j := range jobs {
		if j.Pricing.ContractPrice.Valid {
			if len(contract) > 0 && !contract[0].Decimal.Equal(j.Pricing.ContractPrice.Decimal) {
				p.Mixed = true
			}
			contract = append(contract, j.Pricing.ContractPrice)
		}
		pa = append(pa, j.Pricing.PAPrice)
		p.IsPANeeded = p.IsPANeeded || j.Pricing.IsPANeeded
	}
	p.Daily = firstSet(append(contract, route.DailyRate)...)
	p.PA = firstSet(append(pa, route.PARate)...)
	return p
}
