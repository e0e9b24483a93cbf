package service

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TurfPlanService owns the turf catalog rules. Active is a first-class field
// on both create and edit, exactly like academy plans.
type TurfPlanService interface {
	ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TurfPlan, error)
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, fields domain.TurfPlan) (*domain.TurfPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, fields domain.TurfPlan) (*domain.TurfPlan, error)
	ToggleActive(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.TurfPlan, error)
}

type turfPlanService struct {
	planRepo repository.TurfPlanRepository
}

// NewTurfPlanService creates a new instance of turfPlanService.
func NewTurfPlanService(planRepo repository.TurfPlanRepository) TurfPlanService {
	return &turfPlanService{planRepo: planRepo}
}

func (s *turfPlanService) ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TurfPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

func (s *turfPlanService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, fields domain.TurfPlan) (*domain.TurfPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	plan := fields
	plan.ID = primitive.NilObjectID
	plan.OwnerID = ownerID
	if err := domain.ValidateTurfPlan(plan); err != nil {
		return nil, err
	}

	if _, err := s.planRepo.Create(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *turfPlanService) UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, fields domain.TurfPlan) (*domain.TurfPlan, error) {
	existing, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}

	existing.Name = fields.Name
	existing.Amount = fields.Amount
	existing.TimeHr = fields.TimeHr
	existing.TimeMin = fields.TimeMin
	existing.Category = fields.Category
	existing.Sport = fields.Sport
	existing.From = fields.From
	existing.To = fields.To
	existing.Active = fields.Active
	if err := domain.ValidateTurfPlan(*existing); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *turfPlanService) ToggleActive(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.TurfPlan, error) {
	if _, err := s.ownedPlan(ctx, ownerID, planID); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.ToggleActive(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *turfPlanService) ownedPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.TurfPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}
