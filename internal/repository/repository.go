package repository

import (
	"alcyxob/plan-admin/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AcademyPlanRepository defines the interface for interacting with academy plan data.
type AcademyPlanRepository interface {
	Create(ctx context.Context, plan *domain.AcademyPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.AcademyPlan, error) // Creation order
	Update(ctx context.Context, plan *domain.AcademyPlan) error                                // Replaces every mutable field
	ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error)       // Returns the post-toggle record
}

// TurfPlanRepository defines the interface for interacting with turf plan data.
type TurfPlanRepository interface {
	Create(ctx context.Context, plan *domain.TurfPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TurfPlan, error)
	Update(ctx context.Context, plan *domain.TurfPlan) error
	ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error)
}

// BookingRepository is read-only from the plan-admin side.
type BookingRepository interface {
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Booking, error)
}
