package planadmin

import (
	"alcyxob/plan-admin/internal/api"
	"alcyxob/plan-admin/internal/catalog"
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository/memory"
	"alcyxob/plan-admin/internal/service"
	"alcyxob/plan-admin/internal/session"
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newClient(t *testing.T) (*catalog.Client, session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	academy := service.NewAcademyPlanService(memory.NewAcademyPlanRepository())
	turf := service.NewTurfPlanService(memory.NewTurfPlanRepository())
	router := gin.New()
	api.SetupRoutes(router, "ws-secret", api.Services{
		Academy:  academy,
		Turf:     turf,
		Bookings: service.NewBookingService(memory.NewBookingRepository()),
		Export:   service.NewExportService(academy, turf, nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	owner := primitive.NewObjectID().Hex()
	token, err := session.Issue("ws-secret", owner, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return catalog.NewClient(srv.URL), session.New(owner, token)
}

func TestWorkspace_CreateThenListProjectsDraft(t *testing.T) {
	client, sess := newClient(t)
	ws := Turf(client, sess)
	ctx := context.Background()

	_ = ws.Form.OpenForCreate()
	for name, value := range map[string]string{"name": "Morning", "amount": "650", "time_hr": "1", "time_min": "15", "sport": "Football"} {
		if err := ws.Form.SetField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ws.Form.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	plans := ws.Cache.Plans()
	if len(plans) != 1 {
		t.Fatalf("cached plans = %+v", plans)
	}
	got := plans[0]
	if got.Name != "Morning" || got.Amount != 650 || got.Duration() != 75*time.Minute ||
		got.Category != domain.CategoryTurf || got.From != "09:00" || got.To != "18:59" || !got.Active {
		t.Errorf("listed plan = %+v", got)
	}
}

func TestWorkspace_ToggleRefreshesCache(t *testing.T) {
	client, sess := newClient(t)
	ws := Academy(client, sess)
	ctx := context.Background()

	created, err := client.AcademyPlans().CreatePlan(ctx, sess, domain.AcademyPlan{
		Name: "Gold", Amount: 1500, PlanLimit: 30, Sport: domain.SportCricket, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := ws.Toggle(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if p, _ := ws.Cache.Get(created.ID); p.Active {
		t.Error("cache should show the plan inactive after one toggle")
	}
	if _, err := ws.Toggle(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if p, _ := ws.Cache.Get(created.ID); !p.Active {
		t.Error("two toggles should restore the original state")
	}
}

func TestWorkspace_EditLoadsCacheAndRejectsUnknown(t *testing.T) {
	client, sess := newClient(t)
	ws := Academy(client, sess)
	ctx := context.Background()

	created, err := client.AcademyPlans().CreatePlan(ctx, sess, domain.AcademyPlan{
		Name: "Silver", Amount: 900, PlanLimit: 14, Sport: domain.SportFootball, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := ws.Edit(ctx, primitive.NewObjectID()); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Edit unknown = %v", err)
	}
	if err := ws.Edit(ctx, created.ID); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	_ = ws.Form.SetField("amount", "2000")
	if _, err := ws.Form.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	p, _ := ws.Cache.Get(created.ID)
	if p.Amount != 2000 || p.Name != "Silver" || p.PlanLimit != 14 || p.Sport != domain.SportFootball {
		t.Errorf("after edit = %+v", p)
	}
}

func TestWorkspace_InfiniteAmountStaysLocal(t *testing.T) {
	client, sess := newClient(t)
	ws := Academy(client, sess)
	ctx := context.Background()

	_ = ws.Form.OpenForCreate()
	for name, value := range map[string]string{"name": "Gold", "amount": "Inf", "plan_limit": "30", "sport": "Cricket"} {
		if err := ws.Form.SetField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	_, err := ws.Form.Submit(ctx)
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("Submit err = %v, want validation error", err)
	}
	if !ws.Form.State().Open {
		t.Error("form should stay open with the draft")
	}

	plans, err := client.AcademyPlans().ListPlans(ctx, sess)
	if err != nil || len(plans) != 0 {
		t.Errorf("service plans = %+v, %v", plans, err)
	}
}
