package catalog

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/session"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type turfOwnerBody struct {
	UserID string `json:"userid"`
}

type turfPlanBody struct {
	UserID   string           `json:"userid,omitempty"`
	PlanID   string           `json:"_id,omitempty"`
	Name     string           `json:"name"`
	Amount   float64          `json:"amount"`
	TimeHr   int              `json:"time_hr"`
	TimeMin  int              `json:"time_min"`
	Category domain.Category  `json:"category"`
	Sport    domain.Sport     `json:"sport"`
	From     domain.TimeOfDay `json:"from"`
	To       domain.TimeOfDay `json:"to"`
	Active   bool             `json:"active"`
}

func newTurfPlanBody(owner string, p domain.TurfPlan) turfPlanBody {
	return turfPlanBody{
		UserID:   owner,
		Name:     p.Name,
		Amount:   p.Amount,
		TimeHr:   p.TimeHr,
		TimeMin:  p.TimeMin,
		Category: p.Category,
		Sport:    p.Sport,
		From:     p.From,
		To:       p.To,
		Active:   p.Active,
	}
}

// TurfRepository is the PlanRepository of the turf catalog.
type TurfRepository struct {
	client *Client
}

var _ PlanRepository[domain.TurfPlan] = (*TurfRepository)(nil)

// TurfPlans returns the turf catalog repository.
func (c *Client) TurfPlans() *TurfRepository {
	return &TurfRepository{client: c}
}

func (r *TurfRepository) ListPlans(ctx context.Context, sess session.Session) ([]domain.TurfPlan, error) {
	owner, err := ownerOf(sess)
	if err != nil {
		return nil, err
	}
	var plans []domain.TurfPlan
	if err := r.client.do(ctx, sess, http.MethodPost, "/api/turf-admin/plans", turfOwnerBody{UserID: owner}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *TurfRepository) CreatePlan(ctx context.Context, sess session.Session, fields domain.TurfPlan) (domain.TurfPlan, error) {
	var created domain.TurfPlan
	owner, err := ownerOf(sess)
	if err != nil {
		return created, err
	}
	err = r.client.do(ctx, sess, http.MethodPost, "/api/turf-admin/add-plan", newTurfPlanBody(owner, fields), &created)
	return created, err
}

// UpdatePlan sends the whole draft to edit-plan; the target travels in the body.
func (r *TurfRepository) UpdatePlan(ctx context.Context, sess session.Session, id primitive.ObjectID, fields domain.TurfPlan) (domain.TurfPlan, error) {
	var updated domain.TurfPlan
	owner, err := ownerOf(sess)
	if err != nil {
		return updated, err
	}
	body := newTurfPlanBody(owner, fields)
	body.PlanID = id.Hex()
	err = r.client.do(ctx, sess, http.MethodPost, "/api/turf-admin/edit-plan", body, &updated)
	return updated, err
}

func (r *TurfRepository) ToggleActive(ctx context.Context, sess session.Session, id primitive.ObjectID) (domain.TurfPlan, error) {
	var toggled domain.TurfPlan
	if _, err := ownerOf(sess); err != nil {
		return toggled, err
	}
	err := r.client.do(ctx, sess, http.MethodPatch, "/api/turf-admin/update-plan-status/"+id.Hex()+"/toggle", nil, &toggled)
	return toggled, err
}

// ListBookings returns the owner's bookings as the service sends them.
func (c *Client) ListBookings(ctx context.Context, sess session.Session) ([]domain.Booking, error) {
	owner, err := ownerOf(sess)
	if err != nil {
		return nil, err
	}
	var bookings []domain.Booking
	if err := c.do(ctx, sess, http.MethodPost, "/api/turf-admin/get-all-bookings", turfOwnerBody{UserID: owner}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ExportResult mirrors the service's export response.
type ExportResult struct {
	Catalog string `json:"catalog"`
	Key     string `json:"key"`
	URL     string `json:"url"`
	Count   int    `json:"count"`
}

// Export asks the service to snapshot a catalog into object storage.
func (c *Client) Export(ctx context.Context, sess session.Session, cat domain.Catalog) (ExportResult, error) {
	var result ExportResult
	owner, err := ownerOf(sess)
	if err != nil {
		return result, err
	}
	var path string
	var body any
	switch cat {
	case domain.CatalogAcademy:
		path, body = "/api/academy/export", academyOwnerBody{UserID: owner}
	default:
		path, body = "/api/turf-admin/export", turfOwnerBody{UserID: owner}
	}
	err = c.do(ctx, sess, http.MethodPost, path, body, &result)
	return result, err
}
