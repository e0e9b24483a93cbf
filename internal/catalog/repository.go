package catalog

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/session"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanRepository fetches, creates, updates and toggles the plans of one
// catalog. Create and update callers must have validated the fields already;
// update is a full-record replace, so fields carries every field.
type PlanRepository[P domain.PlanRecord] interface {
	ListPlans(ctx context.Context, sess session.Session) ([]P, error)
	CreatePlan(ctx context.Context, sess session.Session, fields P) (P, error)
	UpdatePlan(ctx context.Context, sess session.Session, id primitive.ObjectID, fields P) (P, error)
	ToggleActive(ctx context.Context, sess session.Session, id primitive.ObjectID) (P, error)
}
