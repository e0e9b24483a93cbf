// Package planform implements the create/edit plan form. A form is Closed or
// Open with a mode and a draft. The draft is a set of text fields decoded and
// validated on submit; it never aliases a cached record.
package planform

import (
	"alcyxob/plan-admin/internal/catalog"
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/session"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrClosed       = errors.New("no plan form is open")
	ErrAlreadyOpen  = errors.New("a plan form is already open")
	ErrUnknownField = errors.New("unknown plan field")
)

// Mode is Create or Edit.
type Mode interface{ isMode() }

// Create is the mode of a form for a new plan.
type Create struct{}

// Edit is the mode of a form editing the plan with ID.
type Edit struct{ ID primitive.ObjectID }

func (Create) isMode() {}
func (Edit) isMode()   {}

// Repository is the part of the catalog client the form writes through.
type Repository[P domain.PlanRecord] interface {
	CreatePlan(ctx context.Context, sess session.Session, fields P) (P, error)
	UpdatePlan(ctx context.Context, sess session.Session, id primitive.ObjectID, fields P) (P, error)
}

// Refresher refetches the catalog after a successful write.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// State is a point-in-time view of the form for rendering.
type State struct {
	Open    bool
	Mode    Mode
	Fields  Fields
	Err     error // last validation or repository error of the open form
	Pending int   // submits in flight
}

// Controller is safe for concurrent use. Its lock is never held across a
// repository call, so Cancel and SetField stay available during a submit.
type Controller[P domain.PlanRecord] struct {
	repo      Repository[P]
	codec     Codec[P]
	session   session.Session
	refresher Refresher

	mu         sync.Mutex
	open       bool
	mode       Mode
	base       P
	fields     Fields
	err        error
	generation uint64
	pending    int
}

// New builds a closed form. refresher may be nil.
func New[P domain.PlanRecord](repo Repository[P], codec Codec[P], sess session.Session, refresher Refresher) *Controller[P] {
	return &Controller[P]{repo: repo, codec: codec, session: sess, refresher: refresher}
}

// OpenForCreate opens an empty draft prefilled with the catalog defaults.
func (c *Controller[P]) OpenForCreate() error {
	var zero P
	return c.openWith(Create{}, zero, c.codec.Defaults())
}

// OpenForEdit opens a draft copied from record.
func (c *Controller[P]) OpenForEdit(record P) error {
	return c.openWith(Edit{ID: record.PlanID()}, record, c.codec.Encode(record))
}

func (c *Controller[P]) openWith(mode Mode, base P, fields Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		return ErrAlreadyOpen
	}
	c.generation++
	c.open = true
	c.mode = mode
	c.base = base
	c.fields = fields
	c.err = nil
	return nil
}

// SetField changes one draft field. No I/O is performed.
func (c *Controller[P]) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return ErrClosed
	}
	if !slices.Contains(c.codec.Names(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.fields[name] = value
	return nil
}

// Cancel closes the form and discards the draft. A submit already in flight
// is not aborted; its result no longer affects the form.
func (c *Controller[P]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller[P]) closeLocked() {
	var zero P
	c.open = false
	c.mode = nil
	c.base = zero
	c.fields = nil
	c.err = nil
}

// Submit validates the draft and writes it through the repository. A
// validation failure or a missing session is recorded on the form and no
// request is made. A repository failure is recorded and the draft kept for a
// retry. On success the form closes and the catalog is refreshed; a refresh
// failure is logged and does not fail the submit.
func (c *Controller[P]) Submit(ctx context.Context) (P, error) {
	var zero P

	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	gen, mode := c.generation, c.mode
	plan, err := c.codec.Decode(c.base, c.fields)
	if err == nil {
		if _, serr := c.session.OwnerID(); serr != nil {
			err = fmt.Errorf("%w: %w", catalog.ErrAuth, serr)
		}
	}
	if err != nil {
		c.err = err
		c.mu.Unlock()
		return zero, err
	}
	c.pending++
	c.mu.Unlock()

	var saved P
	switch m := mode.(type) {
	case Create:
		saved, err = c.repo.CreatePlan(ctx, c.session, plan)
	case Edit:
		saved, err = c.repo.UpdatePlan(ctx, c.session, m.ID, plan)
	}

	c.mu.Lock()
	c.pending--
	current := c.open && c.generation == gen
	if err != nil {
		if current {
			c.err = err
		}
		c.mu.Unlock()
		return zero, err
	}
	if current {
		c.closeLocked()
	}
	c.mu.Unlock()

	if c.refresher != nil {
		if rerr := c.refresher.Refresh(ctx); rerr != nil {
			log.Printf("WARN: refresh after saving %s plan %s failed: %v", saved.Catalog(), saved.PlanID().Hex(), rerr)
		}
	}
	return saved, nil
}

// State returns a copy of the current form state.
func (c *Controller[P]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Open:    c.open,
		Mode:    c.mode,
		Fields:  c.fields.Clone(),
		Err:     c.err,
		Pending: c.pending,
	}
}

// Names lists the editable fields in display order.
func (c *Controller[P]) Names() []string { return c.codec.Names() }
