package service

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrValidationFailed = domain.ErrValidation
	ErrOwnerRequired    = errors.New("owner ID is required")
)

// AcademyPlanService owns the academy catalog rules: ownership, field
// invariants and the active toggle.
type AcademyPlanService interface {
	ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.AcademyPlan, error)
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, fields domain.AcademyPlan) (*domain.AcademyPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, fields domain.AcademyPlan) (*domain.AcademyPlan, error)
	ToggleActive(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.AcademyPlan, error)
}

type academyPlanService struct {
	planRepo repository.AcademyPlanRepository
}

// NewAcademyPlanService creates a new instance of academyPlanService.
func NewAcademyPlanService(planRepo repository.AcademyPlanRepository) AcademyPlanService {
	return &academyPlanService{planRepo: planRepo}
}

// ListPlans returns the owner's full catalog in creation order.
func (s *academyPlanService) ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.AcademyPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

// CreatePlan stores a new plan for ownerID. Identity and timestamps in fields are ignored.
func (s *academyPlanService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, fields domain.AcademyPlan) (*domain.AcademyPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	plan := domain.AcademyPlan{
		OwnerID:   ownerID,
		Name:      fields.Name,
		Amount:    fields.Amount,
		PlanLimit: fields.PlanLimit,
		Sport:     fields.Sport,
		Active:    fields.Active,
	}
	if err := domain.ValidateAcademyPlan(plan); err != nil {
		return nil, err
	}

	if _, err := s.planRepo.Create(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan replaces every mutable field of an owned plan with fields.
func (s *academyPlanService) UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, fields domain.AcademyPlan) (*domain.AcademyPlan, error) {
	existing, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}

	existing.Name = fields.Name
	existing.Amount = fields.Amount
	existing.PlanLimit = fields.PlanLimit
	existing.Sport = fields.Sport
	existing.Active = fields.Active
	if err := domain.ValidateAcademyPlan(*existing); err != nil {
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

// ToggleActive flips the plan's active flag server-side.
func (s *academyPlanService) ToggleActive(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.AcademyPlan, error) {
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

// ownedPlan loads a plan and hides plans of other owners behind ErrPlanNotFound.
func (s *academyPlanService) ownedPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.AcademyPlan, error) {
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
