package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"crown_transport/internal/billing"
	"crown_transport/internal/calendar"
	"crown_transport/internal/middleware"
	"crown_transport/internal/models"
	"crown_transport/internal/sequence"
)

// draftTTL bounds how long an unfinalized preview is kept.
const draftTTL = 24 * time.Hour

// InvoiceStore is what the invoice endpoints need from the data layer.
type InvoiceStore interface {
	JobSource
	SaveInvoice(ctx context.Context, rec *models.InvoiceRecord) error
}

type pendingInvoice struct {
	draft *sequence.Draft
	doc   *billing.InvoiceDocument
}

type InvoiceController struct {
	store InvoiceStore
	agg   *billing.Aggregator
	gen   *sequence.Generator

	// mu guards the drafts map only; the counter itself is not locked.
	mu     sync.Mutex
	drafts map[uuid.UUID]*pendingInvoice
}

func NewInvoiceController(st InvoiceStore, agg *billing.Aggregator, gen *sequence.Generator) *InvoiceController {
	return &InvoiceController{
		store:  st,
		agg:    agg,
		gen:    gen,
		drafts: make(map[uuid.UUID]*pendingInvoice),
	}
}

type previewInput struct {
	From        string  `json:"from" binding:"required,calendar_date"`
	To          string  `json:"to" binding:"required,calendar_date"`
	InvoiceDate string  `json:"invoice_date" binding:"calendar_date"`
	VATRate     *string `json:"vat_rate"`
	Strict      bool    `json:"strict"`
}

// Preview prices a route for a period and reserves nothing: the returned
// number is counter+1 until finalized.
func (ic *InvoiceController) Preview(c *gin.Context) {
	var input previewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	rng, err := calendar.NewRange(input.From, input.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD dates"})
		return
	}
	req := billing.InvoiceRequest{
		RouteNo: c.Param("route_no"),
		Range:   rng,
		Strict:  input.Strict,
	}
	if input.InvoiceDate != "" {
		d, err := calendar.ParseDate(input.InvoiceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invoice_date must be YYYY-MM-DD"})
			return
		}
		req.InvoiceDate = d
	}
	if input.VATRate != nil {
		rate, err := decimal.NewFromString(*input.VATRate)
		if err != nil || rate.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vat_rate must be a non-negative number"})
			return
		}
		req.VATRate = decimal.NewNullDecimal(rate)
	}

	ctx := c.Request.Context()
	req.Jobs, err = ic.store.JobsForRoute(ctx, req.RouteNo, rng)
	if err != nil {
		respondLoadError(c, "Preview", err)
		return
	}

	draft, err := ic.gen.PreviewNext(ctx)
	if err != nil {
		logrus.WithError(err).Error("Preview: failed to read invoice counter")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read invoice counter"})
		return
	}
	req.Sequence = draft.Sequence

	doc, err := ic.agg.Build(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, billing.ErrUpstreamFetch) {
			status = http.StatusBadGateway
		}
		logrus.WithError(err).WithField("route_no", req.RouteNo).Error("Preview: invoice aggregation failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ic.mu.Lock()
	ic.pruneLocked(time.Now())
	ic.drafts[draft.ID] = &pendingInvoice{draft: draft, doc: doc}
	ic.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"draft_id": draft.ID,
		"sequence": draft.Number(),
		"invoice":  doc,
	})
}

// Finalize commits a previewed invoice, optionally with an edited sequence
// number, and stores the document.
func (ic *InvoiceController) Finalize(c *gin.Context) {
	id, ok := parseDraftID(c)
	if !ok {
		return
	}
	var input struct {
		SequenceNumber int `json:"sequence_number"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
	}
	if input.SequenceNumber < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sequence_number must be positive"})
		return
	}

	// The draft leaves the map for the duration of the commit, so a second
	// finalize or cancel of the same draft sees 404.
	pending, ok := ic.claim(c, id)
	if !ok {
		return
	}

	comps := pending.doc.Components
	comps.SequenceNumber = input.SequenceNumber
	if comps.SequenceNumber == 0 {
		comps.SequenceNumber = pending.draft.Sequence
	}

	ctx := c.Request.Context()
	number, err := ic.gen.Finalize(ctx, pending.draft, comps)
	if err != nil {
		if errors.Is(err, sequence.ErrDraftClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ic.restore(id, pending)
		logrus.WithError(err).Error("Finalize: failed to commit invoice number")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit invoice number"})
		return
	}

	doc := *pending.doc
	doc.Components = comps
	doc.Number = number

	raw, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode invoice"})
		return
	}
	rec := models.InvoiceRecord{
		Number:      number,
		Sequence:    comps.SequenceNumber,
		RouteNo:     comps.RouteNumber,
		PeriodStart: doc.PeriodStart,
		PeriodEnd:   doc.PeriodEnd,
		NetTotal:    doc.NetTotal,
		VATAmount:   doc.VATAmount,
		TotalAmount: doc.TotalAmount,
		Document:    datatypes.JSON(raw),
		CreatedBy:   middleware.UserID(c),
	}
	if err := ic.store.SaveInvoice(ctx, &rec); err != nil {
		logrus.WithError(err).WithField("number", number).Error("Finalize: number committed but invoice not saved")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invoice number committed but the invoice could not be saved", "number": number})
		return
	}

	logrus.WithFields(logrus.Fields{"number": number, "total": billing.Money(doc.TotalAmount)}).Info("invoice finalized")
	c.JSON(http.StatusCreated, gin.H{"number": number, "invoice": doc})
}

// Cancel drops a previewed invoice. The counter is untouched.
func (ic *InvoiceController) Cancel(c *gin.Context) {
	id, ok := parseDraftID(c)
	if !ok {
		return
	}
	pending, ok := ic.claim(c, id)
	if !ok {
		return
	}
	if err := ic.gen.Cancel(pending.draft); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice draft cancelled"})
}

func parseDraftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("draft"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft ID"})
		return uuid.Nil, false
	}
	return id, true
}

// claim removes the draft from the map and hands it to the caller.
func (ic *InvoiceController) claim(c *gin.Context, id uuid.UUID) (*pendingInvoice, bool) {
	ic.mu.Lock()
	pending, ok := ic.drafts[id]
	delete(ic.drafts, id)
	ic.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice draft not found"})
		return nil, false
	}
	return pending, true
}

// restore puts back a claimed draft whose commit failed.
func (ic *InvoiceController) restore(id uuid.UUID, p *pendingInvoice) {
	ic.mu.Lock()
	ic.drafts[id] = p
	ic.mu.Unlock()
}

// pruneLocked cancels drafts older than draftTTL.
func (ic *InvoiceController) pruneLocked(now time.Time) {
	for id, p := range ic.drafts {
		if now.Sub(p.draft.CreatedAt) > draftTTL {
			_ = ic.gen.Cancel(p.draft)
			delete(ic.drafts, id)
		}
	}
}
