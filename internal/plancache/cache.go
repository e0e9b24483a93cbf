// Package plancache holds the last fetched plan list of one catalog for the
// session owner. The cache is replaced wholesale on refresh and never patched
// from mutation responses.
package plancache

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/session"
	"context"
	"slices"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lister fetches the full plan list of one catalog.
type Lister[P domain.PlanRecord] interface {
	ListPlans(ctx context.Context, sess session.Session) ([]P, error)
}

type snapshot[P domain.PlanRecord] struct {
	ticket    uint64
	plans     []P
	fetchedAt time.Time
}

// Cache is safe for concurrent use. Readers always see a complete list.
type Cache[P domain.PlanRecord] struct {
	lister  Lister[P]
	session session.Session
	issued  atomic.Uint64
	current atomic.Pointer[snapshot[P]]
}

func New[P domain.PlanRecord](lister Lister[P], sess session.Session) *Cache[P] {
	return &Cache[P]{lister: lister, session: sess}
}

// Refresh refetches the list and replaces the cache. Each call takes a
// ticket before fetching; a result is dropped when a later ticket has
// already been published, so overlapping refreshes settle on the newest
// request. A failed fetch leaves the previous contents in place.
func (c *Cache[P]) Refresh(ctx context.Context) error {
	ticket := c.issued.Add(1)
	plans, err := c.lister.ListPlans(ctx, c.session)
	if err != nil {
		return err
	}
	next := &snapshot[P]{ticket: ticket, plans: slices.Clone(plans), fetchedAt: time.Now()}
	for {
		cur := c.current.Load()
		if cur != nil && cur.ticket > ticket {
			return nil
		}
		if c.current.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

// Plans returns a copy of the cached list in service order, or nil before
// the first successful refresh.
func (c *Cache[P]) Plans() []P {
	snap := c.current.Load()
	if snap == nil {
		return nil
	}
	return slices.Clone(snap.plans)
}

// Get looks a plan up by id.
func (c *Cache[P]) Get(id primitive.ObjectID) (P, bool) {
	var zero P
	snap := c.current.Load()
	if snap == nil {
		return zero, false
	}
	for _, p := range snap.plans {
		if p.PlanID() == id {
			return p, true
		}
	}
	return zero, false
}

// Loaded reports whether a refresh has ever succeeded.
func (c *Cache[P]) Loaded() bool { return c.current.Load() != nil }

// FetchedAt is the time of the published snapshot, zero before the first load.
func (c *Cache[P]) FetchedAt() time.Time {
	if snap := c.current.Load(); snap != nil {
		return snap.fetchedAt
	}
	return time.Time{}
}
