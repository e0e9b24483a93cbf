// Package planadmin wires one catalog's repository, cache and form together
// for a single manager session.
package planadmin

import (
	"alcyxob/plan-admin/internal/catalog"
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/plancache"
	"alcyxob/plan-admin/internal/planform"
	"alcyxob/plan-admin/internal/session"
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace is the plan administration surface of one catalog.
type Workspace[P domain.PlanRecord] struct {
	repo    catalog.PlanRepository[P]
	session session.Session
	Cache   *plancache.Cache[P]
	Form    *planform.Controller[P]
}

func New[P domain.PlanRecord](repo catalog.PlanRepository[P], codec planform.Codec[P], sess session.Session) *Workspace[P] {
	cache := plancache.New[P](repo, sess)
	return &Workspace[P]{
		repo:    repo,
		session: sess,
		Cache:   cache,
		Form:    planform.New[P](repo, codec, sess, cache),
	}
}

// Academy builds the academy workspace over client.
func Academy(client *catalog.Client, sess session.Session) *Workspace[domain.AcademyPlan] {
	return New[domain.AcademyPlan](client.AcademyPlans(), planform.AcademyCodec{}, sess)
}

// Turf builds the turf workspace over client.
func Turf(client *catalog.Client, sess session.Session) *Workspace[domain.TurfPlan] {
	return New[domain.TurfPlan](client.TurfPlans(), planform.TurfCodec{}, sess)
}

func (w *Workspace[P]) Refresh(ctx context.Context) error {
	return w.Cache.Refresh(ctx)
}

// Toggle flips the plan's active flag on the service and refreshes the
// cache. The cache is never patched from the response.
func (w *Workspace[P]) Toggle(ctx context.Context, id primitive.ObjectID) (P, error) {
	toggled, err := w.repo.ToggleActive(ctx, w.session, id)
	if err != nil {
		return toggled, err
	}
	if rerr := w.Cache.Refresh(ctx); rerr != nil {
		log.Printf("WARN: refresh after toggling %s plan %s failed: %v", toggled.Catalog(), id.Hex(), rerr)
	}
	return toggled, nil
}

// Edit opens the form on the cached plan with id, loading the cache first
// if it has never been filled.
func (w *Workspace[P]) Edit(ctx context.Context, id primitive.ObjectID) error {
	if !w.Cache.Loaded() {
		if err := w.Cache.Refresh(ctx); err != nil {
			return err
		}
	}
	plan, ok := w.Cache.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, id.Hex())
	}
	return w.Form.OpenForEdit(plan)
}
