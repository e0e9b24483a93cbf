package memory

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type academyPlanRepository struct {
	plans *table[domain.AcademyPlan]
}

// NewAcademyPlanRepository returns an empty in-memory academy catalog.
func NewAcademyPlanRepository() repository.AcademyPlanRepository {
	return &academyPlanRepository{
		plans: newTable(func(p domain.AcademyPlan) primitive.ObjectID { return p.OwnerID }),
	}
}

func (r *academyPlanRepository) Create(ctx context.Context, plan *domain.AcademyPlan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires ownerId and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans.insert(plan.ID, *plan)
	return plan.ID, nil
}

func (r *academyPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error) {
	plan, ok := r.plans.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (r *academyPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.AcademyPlan, error) {
	return r.plans.byOwner(ownerID), nil
}

func (r *academyPlanRepository) Update(ctx context.Context, plan *domain.AcademyPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("academy plan ID is required for update")
	}
	plan.UpdatedAt = time.Now().UTC()
	_, ok := r.plans.modify(plan.ID, func(stored *domain.AcademyPlan) {
		stored.Name = plan.Name
		stored.Amount = plan.Amount
		stored.PlanLimit = plan.PlanLimit
		stored.Sport = plan.Sport
		stored.Active = plan.Active
		stored.UpdatedAt = plan.UpdatedAt
	})
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *academyPlanRepository) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error) {
	plan, ok := r.plans.modify(id, func(stored *domain.AcademyPlan) {
		stored.Active = !stored.Active
		stored.UpdatedAt = time.Now().UTC()
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

type turfPlanRepository struct {
	plans *table[domain.TurfPlan]
}

// NewTurfPlanRepository returns an empty in-memory turf catalog.
func NewTurfPlanRepository() repository.TurfPlanRepository {
	return &turfPlanRepository{
		plans: newTable(func(p domain.TurfPlan) primitive.ObjectID { return p.OwnerID }),
	}
}

func (r *turfPlanRepository) Create(ctx context.Context, plan *domain.TurfPlan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires ownerId and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans.insert(plan.ID, *plan)
	return plan.ID, nil
}

func (r *turfPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error) {
	plan, ok := r.plans.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (r *turfPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TurfPlan, error) {
	return r.plans.byOwner(ownerID), nil
}

func (r *turfPlanRepository) Update(ctx context.Context, plan *domain.TurfPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("turf plan ID is required for update")
	}
	plan.UpdatedAt = time.Now().UTC()
	_, ok := r.plans.modify(plan.ID, func(stored *domain.TurfPlan) {
		stored.Name = plan.Name
		stored.Amount = plan.Amount
		stored.TimeHr = plan.TimeHr
		stored.TimeMin = plan.TimeMin
		stored.Category = plan.Category
		stored.Sport = plan.Sport
		stored.From = plan.From
		stored.To = plan.To
		stored.Active = plan.Active
		stored.UpdatedAt = plan.UpdatedAt
	})
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *turfPlanRepository) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error) {
	plan, ok := r.plans.modify(id, func(stored *domain.TurfPlan) {
		stored.Active = !stored.Active
		stored.UpdatedAt = time.Now().UTC()
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}
