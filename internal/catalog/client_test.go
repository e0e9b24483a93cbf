package catalog

import (
	"alcyxob/plan-admin/internal/api"
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository/memory"
	"alcyxob/plan-admin/internal/service"
	"alcyxob/plan-admin/internal/session"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "catalog-test-secret"

type testServer struct {
	*httptest.Server
	requests atomic.Int64
	session  session.Session
	bookings *memory.BookingRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	academy := service.NewAcademyPlanService(memory.NewAcademyPlanRepository())
	turf := service.NewTurfPlanService(memory.NewTurfPlanRepository())
	bookings := memory.NewBookingRepository()
	router := gin.New()
	api.SetupRoutes(router, testSecret, api.Services{
		Academy:  academy,
		Turf:     turf,
		Bookings: service.NewBookingService(bookings),
		Export:   service.NewExportService(academy, turf, nil),
	})

	ts := &testServer{bookings: bookings}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.requests.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	owner := primitive.NewObjectID().Hex()
	token, err := session.Issue(testSecret, owner, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	ts.session = session.New(owner, token)
	return ts
}

func goldPlan() domain.AcademyPlan {
	return domain.AcademyPlan{Name: "Gold", Amount: 1500, PlanLimit: 30, Sport: domain.SportCricket, Active: true}
}

func eveningPlan() domain.TurfPlan {
	return domain.TurfPlan{
		Name: "Evening", Amount: 1200, TimeHr: 1, TimeMin: 30,
		Category: domain.CategoryTurf, Sport: domain.SportFootball,
		From: "17:00", To: "22:00", Active: true,
	}
}

func TestAcademyRepository_CreateListUpdateToggle(t *testing.T) {
	ts := newTestServer(t)
	repo := NewClient(ts.URL).AcademyPlans()
	ctx := context.Background()

	created, err := repo.CreatePlan(ctx, ts.session, goldPlan())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if created.ID.IsZero() || created.OwnerID.Hex() != mustOwner(t, ts.session) {
		t.Fatalf("created = %+v", created)
	}

	plans, err := repo.ListPlans(ctx, ts.session)
	if err != nil || len(plans) != 1 || plans[0].Name != "Gold" {
		t.Fatalf("ListPlans = %+v, %v", plans, err)
	}

	fields := created
	fields.Amount = 2000
	updated, err := repo.UpdatePlan(ctx, ts.session, created.ID, fields)
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if updated.Amount != 2000 || updated.Name != "Gold" || updated.PlanLimit != 30 || !updated.Active {
		t.Errorf("updated = %+v", updated)
	}

	toggled, err := repo.ToggleActive(ctx, ts.session, created.ID)
	if err != nil || toggled.Active {
		t.Fatalf("first toggle = %+v, %v", toggled, err)
	}
	toggled, err = repo.ToggleActive(ctx, ts.session, created.ID)
	if err != nil || !toggled.Active {
		t.Fatalf("second toggle = %+v, %v", toggled, err)
	}
}

func TestTurfRepository_EditSendsWholeRecord(t *testing.T) {
	ts := newTestServer(t)
	repo := NewClient(ts.URL).TurfPlans()
	ctx := context.Background()

	created, err := repo.CreatePlan(ctx, ts.session, eveningPlan())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	fields := created
	fields.Category = domain.CategoryGroundB
	fields.To = "23:00"
	edited, err := repo.UpdatePlan(ctx, ts.session, created.ID, fields)
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if edited.ID != created.ID || edited.Category != domain.CategoryGroundB || edited.To != "23:00" || edited.From != "17:00" {
		t.Errorf("edited = %+v", edited)
	}

	toggled, err := repo.ToggleActive(ctx, ts.session, created.ID)
	if err != nil || toggled.Active {
		t.Errorf("toggle = %+v, %v", toggled, err)
	}
}

func TestRepository_ValidationErrorCarriesFields(t *testing.T) {
	ts := newTestServer(t)
	repo := NewClient(ts.URL).TurfPlans()

	bad := eveningPlan()
	bad.From, bad.To = "19:00", "09:00"
	_, err := repo.CreatePlan(context.Background(), ts.session, bad)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["to"] == "" {
		t.Errorf("expected a field message for to, got %v", err)
	}
}

func TestRepository_UnencodableAmountIsValidationError(t *testing.T) {
	ts := newTestServer(t)
	plan := goldPlan()
	plan.Amount = math.Inf(1)

	_, err := NewClient(ts.URL).AcademyPlans().CreatePlan(context.Background(), ts.session, plan)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if n := ts.requests.Load(); n != 0 {
		t.Errorf("%d requests reached the service", n)
	}
}

func TestRepository_NotFound(t *testing.T) {
	ts := newTestServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()

	if _, err := client.AcademyPlans().ToggleActive(ctx, ts.session, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("academy toggle unknown: %v", err)
	}
	if _, err := client.TurfPlans().UpdatePlan(ctx, ts.session, primitive.NewObjectID(), eveningPlan()); !errors.Is(err, ErrNotFound) {
		t.Errorf("turf edit unknown: %v", err)
	}
}

func TestRepository_NoSessionMakesNoRequest(t *testing.T) {
	ts := newTestServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()
	var none session.Session

	_, err := client.AcademyPlans().ListPlans(ctx, none)
	if !errors.Is(err, ErrAuth) || !errors.Is(err, session.ErrNoSession) {
		t.Errorf("ListPlans without session: %v", err)
	}
	if _, err := client.TurfPlans().CreatePlan(ctx, none, eveningPlan()); !errors.Is(err, ErrAuth) {
		t.Errorf("CreatePlan without session: %v", err)
	}
	if _, err := client.TurfPlans().ToggleActive(ctx, none, primitive.NewObjectID()); !errors.Is(err, ErrAuth) {
		t.Errorf("ToggleActive without session: %v", err)
	}
	if n := ts.requests.Load(); n != 0 {
		t.Errorf("%d requests reached the service", n)
	}
}

func TestRepository_RejectedToken(t *testing.T) {
	ts := newTestServer(t)
	forged := session.New(mustOwner(t, ts.session), "not-a-jwt")
	if _, err := NewClient(ts.URL).AcademyPlans().ListPlans(context.Background(), forged); !errors.Is(err, ErrAuth) {
		t.Errorf("err = %v, want ErrAuth", err)
	}
}

func TestRepository_ServerAndTransportFailures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request id header missing")
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer failing.Close()

	sess := session.New(primitive.NewObjectID().Hex(), "token")
	_, err := NewClient(failing.URL).AcademyPlans().ListPlans(context.Background(), sess)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("500: err = %v, want ErrNetwork", err)
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	_, err = NewClient(url, WithTimeout(time.Second)).TurfPlans().ListPlans(context.Background(), sess)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("closed server: err = %v, want ErrNetwork", err)
	}
}

func TestClient_BookingsAndExport(t *testing.T) {
	ts := newTestServer(t)
	owner, _ := primitive.ObjectIDFromHex(mustOwner(t, ts.session))
	ts.bookings.Add(domain.Booking{OwnerID: owner, CustomerName: "Ravi", Status: "confirmed"})
	client := NewClient(ts.URL)

	bookings, err := client.ListBookings(context.Background(), ts.session)
	if err != nil || len(bookings) != 1 || bookings[0].CustomerName != "Ravi" {
		t.Errorf("ListBookings = %+v, %v", bookings, err)
	}

	// No bucket configured on the test server.
	if _, err := client.Export(context.Background(), ts.session, domain.CatalogAcademy); !errors.Is(err, ErrNetwork) {
		t.Errorf("Export err = %v, want ErrNetwork", err)
	}
}

func mustOwner(t *testing.T, sess session.Session) string {
	t.Helper()
	owner, err := sess.OwnerID()
	if err != nil {
		t.Fatal(err)
	}
	return owner
}
