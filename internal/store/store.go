// Package store is the Postgres data-access layer feeding the schedule and
// billing engines.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"crown_transport/internal/billing"
	"crown_transport/internal/calendar"
	"crown_transport/internal/models"
	"crown_transport/internal/schedule"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ billing.DetailSource = (*Repository)(nil)

// JobsForRoute loads every job of routeNo with its stops, overlays and the
// attendance recorded inside rng.
func (r *Repository) JobsForRoute(ctx context.Context, routeNo string, rng calendar.Range) ([]schedule.Job, error) {
	var route models.Route
	if err := r.db.WithContext(ctx).Where("route_no = ?", routeNo).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("route %s: %w", routeNo, ErrNotFound)
		}
		return nil, err
	}

	lo, hi := attendanceBounds(rng)
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("route_id = ?", route.ID).
		Preload("Driver").
		Preload("Vehicle").
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC, id ASC") }).
		Preload("TemporaryAssignments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("TemporaryAssignments.Driver").
		Preload("TemporaryAssignments.Vehicle").
		Preload("SchoolHolidays").
		Preload("SpecialServices", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Attendance", "date >= ? AND date < ?", lo, hi).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]schedule.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, toJob(&rows[i], route.RouteNo))
	}
	return jobs, nil
}

// attendanceBounds returns the half-open text bounds [lo, hi) covering rng.
// Dates are stored as text and may carry a time suffix, so the upper bound is
// the day after rng.End.
func attendanceBounds(rng calendar.Range) (lo, hi string) {
	return calendar.FormatDate(rng.Start), calendar.FormatDate(rng.End.AddDate(0, 0, 1))
}

// SaveInvoice persists a finalized invoice.
func (r *Repository) SaveInvoice(ctx context.Context, rec *models.InvoiceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) Route(ctx context.Context, routeNo string) (billing.RouteDetail, error) {
	var route models.Route
	if err := r.db.WithContext(ctx).Where("route_no = ?", routeNo).First(&route).Error; err != nil {
		return billing.RouteDetail{}, notFound(err, "route "+routeNo)
	}
	return billing.RouteDetail{
		RouteNo:         route.RouteNo,
		Name:            route.Name,
		InvoiceTemplate: route.InvoiceTemplate,
		DailyRate:       route.DailyRate,
		PARate:          route.PARate,
		CompanyID:       route.CompanyID,
		VendorID:        route.VendorID,
	}, nil
}

func (r *Repository) Company(ctx context.Context, id uint) (billing.CompanyDetail, error) {
	if id == 0 {
		return billing.CompanyDetail{}, fmt.Errorf("company: %w", ErrNotFound)
	}
	var c models.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return billing.CompanyDetail{}, notFound(err, fmt.Sprintf("company %d", id))
	}
	return billing.CompanyDetail{
		Party: billing.Party{
			Name:    c.Name,
			Address: splitAddress(c.Address),
			Email:   c.Email,
			Phone:   c.Phone,
		},
		VATRate: c.VATRate,
	}, nil
}

func (r *Repository) Vendor(ctx context.Context, id uint) (billing.Party, error) {
	if id == 0 {
		return billing.Party{}, fmt.Errorf("vendor: %w", ErrNotFound)
	}
	var v models.Vendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return billing.Party{}, notFound(err, fmt.Sprintf("vendor %d", id))
	}
	return billing.Party{
		Name:      v.Name,
		Address:   splitAddress(v.Address),
		Email:     v.Email,
		Phone:     v.Phone,
		VATNumber: v.VATNumber,
	}, nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func splitAddress(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
