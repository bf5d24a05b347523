package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"crown_transport/internal/calendar"
	"crown_transport/internal/schedule"
	"crown_transport/internal/sequence"
)

// ErrNegativeQuantity flags an impossible negative billable quantity.
var ErrNegativeQuantity = errors.New("negative billable quantity")

const (
	SpecialServicesDescription = "Special Services"
	PADescription              = "Passenger Assistant"
)

// LineItem is one priced row. Quantities carry one decimal, money two.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Description string `json:"description"`
		Quantity    string `json:"quantity"`
		UnitPrice   string `json:"unit_price"`
		Amount      string `json:"amount"`
	}{li.Description, Quantity(li.Quantity), Money(li.UnitPrice), Money(li.Amount)})
}

// InvoiceDocument is handed to the renderer.
type InvoiceDocument struct {
	Number      string              `json:"number"`
	Components  sequence.Components `json:"number_components"`
	InvoiceDate string              `json:"invoice_date"`
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	Client      Party               `json:"client"`
	Supplier    Party               `json:"supplier"`
	Items       []LineItem          `json:"items"`

	RouteAmount          decimal.Decimal `json:"-"`
	PAAmount             decimal.Decimal `json:"-"`
	SpecialServiceAmount decimal.Decimal `json:"-"`
	NetTotal             decimal.Decimal `json:"-"`
	VATRate              decimal.Decimal `json:"-"`
	VATAmount            decimal.Decimal `json:"-"`
	TotalAmount          decimal.Decimal `json:"-"`

	BillableDays int       `json:"billable_days"`
	Proration    Proration `json:"proration"`
	// Fallbacks names the upstream details replaced by placeholders.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

func (d InvoiceDocument) MarshalJSON() ([]byte, error) {
	type plain InvoiceDocument
	return json.Marshal(struct {
		plain
		NetTotal    string `json:"net_total"`
		VATRate     string `json:"vat_rate"`
		VATAmount   string `json:"vat_amount"`
		TotalAmount string `json:"total_amount"`
	}{plain(d), Money(d.NetTotal), Money(d.VATRate), Money(d.VATAmount), Money(d.TotalAmount)})
}

// Money renders a currency value with exactly two decimals.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }

// Quantity renders a quantity with exactly one decimal.
func Quantity(d decimal.Decimal) string { return d.StringFixed(1) }

// InvoiceRequest describes one invoice for one route.
type InvoiceRequest struct {
	RouteNo     string
	Jobs        []schedule.Job
	Range       calendar.Range
	InvoiceDate time.Time
	// Sequence is the previewed or edited sequence number.
	Sequence int
	// VATRate overrides the client's rate when set.
	VATRate decimal.NullDecimal
	// Strict surfaces upstream lookup failures instead of using placeholders.
	Strict bool
}

type Aggregator struct {
	details    DetailSource
	defaultVAT decimal.Decimal
	suffix     string
}

type AggregatorOption func(*Aggregator)

func WithDefaultVAT(rate decimal.Decimal) AggregatorOption {
	return func(a *Aggregator) { a.defaultVAT = rate }
}

func WithNumberSuffix(s string) AggregatorOption {
	return func(a *Aggregator) {
		if s != "" {
			a.suffix = s
		}
	}
}

func NewAggregator(details DetailSource, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{details: details, defaultVAT: DefaultVATRate, suffix: sequence.DefaultSuffix}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Build prices the jobs of req over its range and assembles the invoice.
func (a *Aggregator) Build(ctx context.Context, req InvoiceRequest) (*InvoiceDocument, error) {
	log := logrus.WithFields(logrus.Fields{"route_no": req.RouteNo, "from": calendar.FormatDate(req.Range.Start), "to": calendar.FormatDate(req.Range.End)})
	doc := &InvoiceDocument{
		PeriodStart: calendar.FormatDate(req.Range.Start),
		PeriodEnd:   calendar.FormatDate(req.Range.End),
	}

	route, err := a.details.Route(ctx, req.RouteNo)
	if err != nil {
		if req.Strict {
			return nil, fmt.Errorf("%w: route %s: %v", ErrUpstreamFetch, req.RouteNo, err)
		}
		log.WithError(err).Warn("route detail unavailable, using placeholder")
		route = PlaceholderRoute
		route.RouteNo = req.RouteNo
		doc.Fallbacks = append(doc.Fallbacks, "route")
	}
	client, err := a.details.Company(ctx, route.CompanyID)
	if err != nil {
		if req.Strict {
			return nil, fmt.Errorf("%w: company %d: %v", ErrUpstreamFetch, route.CompanyID, err)
		}
		log.WithError(err).Warn("company detail unavailable, using placeholder")
		client = PlaceholderClient
		doc.Fallbacks = append(doc.Fallbacks, "client")
	}
	supplier, err := a.details.Vendor(ctx, route.VendorID)
	if err != nil {
		if req.Strict {
			return nil, fmt.Errorf("%w: vendor %d: %v", ErrUpstreamFetch, route.VendorID, err)
		}
		log.WithError(err).Warn("vendor detail unavailable, using placeholder")
		supplier = PlaceholderSupplier
		doc.Fallbacks = append(doc.Fallbacks, "supplier")
	}
	doc.Client = client.Party
	doc.Supplier = supplier

	p := Prorate(req.Jobs, req.Range)
	if p.BillableDays < 0 {
		return nil, fmt.Errorf("%w: billable days %d", ErrNegativeQuantity, p.BillableDays)
	}
	doc.Proration = p
	doc.BillableDays = p.BillableDays

	prices := ResolvePrices(req.Jobs, route)
	if prices.Mixed {
		log.WithField("daily_price", Money(prices.Daily)).Warn("jobs disagree on contract price, using first")
	}
	days := decimal.NewFromInt(int64(p.BillableDays))
	daily, pa := prices.Daily.Round(2), prices.PA.Round(2)
	doc.RouteAmount = daily.Mul(days)
	doc.PAAmount = decimal.Zero
	if prices.IsPANeeded {
		doc.PAAmount = pa.Mul(days)
	}
	doc.SpecialServiceAmount = p.SpecialServiceAmount.Round(2)

	doc.Items = append(doc.Items, LineItem{
		Description: route.InvoiceTemplate,
		Quantity:    days.Round(1),
		UnitPrice:   daily,
		Amount:      doc.RouteAmount,
	})
	if doc.SpecialServiceAmount.IsPositive() {
		doc.Items = append(doc.Items, specialServicesLine(p, doc.SpecialServiceAmount))
	}
	if prices.IsPANeeded {
		doc.Items = append(doc.Items, LineItem{
			Description: PADescription,
			Quantity:    days.Round(1),
			UnitPrice:   pa,
			Amount:      doc.PAAmount,
		})
	}

	doc.NetTotal = doc.RouteAmount.Add(doc.PAAmount).Add(doc.SpecialServiceAmount)
	doc.VATRate = a.defaultVAT
	switch {
	case req.VATRate.Valid:
		doc.VATRate = req.VATRate.Decimal
	case client.VATRate.Valid:
		doc.VATRate = client.VATRate.Decimal
	}
	doc.VATAmount = doc.NetTotal.Mul(doc.VATRate).Div(decimal.NewFromInt(100)).Round(2)
	doc.TotalAmount = doc.NetTotal.Add(doc.VATAmount)

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}
	doc.InvoiceDate = calendar.FormatDate(invoiceDate)
	doc.Components = sequence.ComponentsFor(req.Sequence, req.RouteNo, req.Range.Start)
	doc.Number = sequence.FormatNumber(doc.Components, a.suffix)

	log.WithFields(logrus.Fields{
		"billable_days": p.BillableDays,
		"net_total":     Money(doc.NetTotal),
		"total":         Money(doc.TotalAmount),
	}).Debug("invoice aggregated")
	return doc, nil
}

// specialServicesLine builds the single aggregate special-services row. Its
// quantity is the billable occurrence count of the last weekday group, not the
// sum over all groups; the unit price is back-derived so that the row amount
// stays the full special-service total.
func specialServicesLine(p Proration, amount decimal.Decimal) LineItem {
	qty := 0
	if n := len(p.Groups); n > 0 {
		qty = p.Groups[n-1].BillableOccurrences
	}
	if qty == 0 {
		qty = p.TotalBillableOccurrences()
	}
	q := decimal.NewFromInt(int64(qty))
	unit := amount
	if qty > 0 {
		unit = amount.Div(q)
	}
	return LineItem{
		Description: SpecialServicesDescription,
		Quantity:    q.Round(1),
		UnitPrice:   unit.Round(2),
		Amount:      amount,
	}
}
