package catalog

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/session"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type academyOwnerBody struct {
	UserID string `json:"userId"`
}

type academyPlanBody struct {
	UserID    string       `json:"userId,omitempty"`
	Name      string       `json:"name"`
	Amount    float64      `json:"amount"`
	PlanLimit int          `json:"plan_limit"`
	Sport     domain.Sport `json:"sport"`
	Active    bool         `json:"active"`
}

func newAcademyPlanBody(owner string, p domain.AcademyPlan) academyPlanBody {
	return academyPlanBody{
		UserID:    owner,
		Name:      p.Name,
		Amount:    p.Amount,
		PlanLimit: p.PlanLimit,
		Sport:     p.Sport,
		Active:    p.Active,
	}
}

// AcademyRepository is the PlanRepository of the academy catalog.
type AcademyRepository struct {
	client *Client
}

var _ PlanRepository[domain.AcademyPlan] = (*AcademyRepository)(nil)

// AcademyPlans returns the academy catalog repository.
func (c *Client) AcademyPlans() *AcademyRepository {
	return &AcademyRepository{client: c}
}

func (r *AcademyRepository) ListPlans(ctx context.Context, sess session.Session) ([]domain.AcademyPlan, error) {
	owner, err := ownerOf(sess)
	if err != nil {
		return nil, err
	}
	var plans []domain.AcademyPlan
	if err := r.client.do(ctx, sess, http.MethodPost, "/api/academy/all-plans", academyOwnerBody{UserID: owner}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *AcademyRepository) CreatePlan(ctx context.Context, sess session.Session, fields domain.AcademyPlan) (domain.AcademyPlan, error) {
	var created domain.AcademyPlan
	owner, err := ownerOf(sess)
	if err != nil {
		return created, err
	}
	err = r.client.do(ctx, sess, http.MethodPost, "/api/academy/add-plan", newAcademyPlanBody(owner, fields), &created)
	return created, err
}

func (r *AcademyRepository) UpdatePlan(ctx context.Context, sess session.Session, id primitive.ObjectID, fields domain.AcademyPlan) (domain.AcademyPlan, error) {
	var updated domain.AcademyPlan
	owner, err := ownerOf(sess)
	if err != nil {
		return updated, err
	}
	err = r.client.do(ctx, sess, http.MethodPut, "/api/academy/update-plan/"+id.Hex(), newAcademyPlanBody(owner, fields), &updated)
	return updated, err
}

func (r *AcademyRepository) ToggleActive(ctx context.Context, sess session.Session, id primitive.ObjectID) (domain.AcademyPlan, error) {
	var toggled domain.AcademyPlan
	if _, err := ownerOf(sess); err != nil {
		return toggled, err
	}
	err := r.client.do(ctx, sess, http.MethodPatch, "/api/academy/update-plan-status/"+id.Hex()+"/toggle", nil, &toggled)
	return toggled, err
}
