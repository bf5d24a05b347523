// Package sequence issues invoice numbers from a single persisted counter.
//
// A number is first previewed as a Draft (counter+1, nothing written), then
// either finalized, which persists max(counter, chosen sequence), or cancelled.
// The counter never decreases.
//
// The generator does no locking around the load/save pair. Two sessions
// finalizing at the same moment can both read the same counter and issue
// adjacent duplicate numbers; the service assumes one invoicing admin at a time.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrDraftClosed is returned when finalizing or cancelling a draft that was
// already finalized or cancelled.
var ErrDraftClosed = errors.New("invoice draft is no longer open")

// DefaultSuffix closes every invoice number.
const DefaultSuffix = "crown"

// State of a draft.
type State int

const (
	Previewed State = iota
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Previewed:
		return "previewed"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Components are the parts an invoice number is assembled from.
type Components struct {
	SequenceNumber int    `json:"sequence_number"`
	RouteNumber    string `json:"route_number"`
	Month          string `json:"month"`
	ShortYear      string `json:"short_year"`
	FullYear       string `json:"full_year"`
}

// ComponentsFor builds the components for an invoice of routeNo covering the
// month of period.
func ComponentsFor(seq int, routeNo string, period time.Time) Components {
	return Components{
		SequenceNumber: seq,
		RouteNumber:    routeNo,
		Month:          fmt.Sprintf("%02d", int(period.Month())),
		ShortYear:      fmt.Sprintf("%02d", period.Year()%100),
		FullYear:       fmt.Sprintf("%04d", period.Year()),
	}
}

// FormatSequence zero-pads a sequence number to two digits.
func FormatSequence(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatNumber assembles "{seq}_invoice_{route}_{month}{shortYear}_{suffix}".
func FormatNumber(c Components, suffix string) string {
	return fmt.Sprintf("%s_invoice_%s_%s%s_%s",
		FormatSequence(c.SequenceNumber), c.RouteNumber, c.Month, c.ShortYear, suffix)
}

// Store persists the counter.
type Store interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, value int) error
}

// Draft is an in-flight preview.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
	state     State
}

// Number is the previewed sequence, zero-padded.
func (d *Draft) Number() string { return FormatSequence(d.Sequence) }

func (d *Draft) State() State { return d.state }

type Generator struct {
	store  Store
	suffix string
	now    func() time.Time
}

type Option func(*Generator)

// WithSuffix replaces DefaultSuffix.
func WithSuffix(s string) Option {
	return func(g *Generator) {
		if s != "" {
			g.suffix = s
		}
	}
}

// WithClock sets the clock stamped on drafts.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func NewGenerator(store Store, opts ...Option) *Generator {
	g := &Generator{store: store, suffix: DefaultSuffix, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Suffix returns the suffix used by FormatNumber for this generator.
func (g *Generator) Suffix() string { return g.suffix }

// Current returns the persisted counter.
func (g *Generator) Current(ctx context.Context) (int, error) {
	v, err := g.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load invoice counter: %w", err)
	}
	return v, nil
}

// PreviewNext proposes counter+1 without writing anything.
func (g *Generator) PreviewNext(ctx context.Context) (*Draft, error) {
	cur, err := g.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &Draft{
		ID:        uuid.New(),
		Sequence:  cur + 1,
		CreatedAt: g.now(),
		state:     Previewed,
	}, nil
}

// Finalize commits the draft and returns the assembled invoice number.
//
// A zero c.SequenceNumber means no manual edit: the draft's sequence is used.
// The counter becomes max(current, sequence); a sequence below the counter is
// printed as given but does not move the counter back.
func (g *Generator) Finalize(ctx context.Context, d *Draft, c Components) (string, error) {
	if d != nil && d.state != Previewed {
		return "", fmt.Errorf("%w: %s", ErrDraftClosed, d.state)
	}
	if c.SequenceNumber <= 0 && d != nil {
		c.SequenceNumber = d.Sequence
	}
	cur, err := g.Current(ctx)
	if err != nil {
		return "", err
	}
	next := max(cur, c.SequenceNumber)
	if c.SequenceNumber < cur {
		logrus.WithFields(logrus.Fields{
			"requested": c.SequenceNumber,
			"counter":   cur,
		}).Warn("invoice sequence below counter; counter kept")
	}
	if next != cur {
		if err := g.store.Save(ctx, next); err != nil {
			return "", fmt.Errorf("save invoice counter: %w", err)
		}
	}
	if d != nil {
		d.state = Committed
	}
	return FormatNumber(c, g.suffix), nil
}

// Cancel discards the draft. The counter is untouched.
func (g *Generator) Cancel(d *Draft) error {
	if d.state != Previewed {
		return fmt.Errorf("%w: %s", ErrDraftClosed, d.state)
	}
	d.state = Cancelled
	return nil
}
