package api

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository/memory"
	"alcyxob/plan-admin/internal/service"
	"alcyxob/plan-admin/internal/session"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type testEnv struct {
	router   *gin.Engine
	owner    primitive.ObjectID
	token    string
	bookings *memory.BookingRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	academy := service.NewAcademyPlanService(memory.NewAcademyPlanRepository())
	turf := service.NewTurfPlanService(memory.NewTurfPlanRepository())
	bookings := memory.NewBookingRepository()

	router := gin.New()
	SetupRoutes(router, testSecret, Services{
		Academy:  academy,
		Turf:     turf,
		Bookings: service.NewBookingService(bookings),
		Export:   service.NewExportService(academy, turf, nil),
	})

	owner := primitive.NewObjectID()
	token, err := session.Issue(testSecret, owner.Hex(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{router: router, owner: owner, token: token, bookings: bookings}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /ping = %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a request id on every response")
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	w := env.do(t, http.MethodPost, "/api/academy/all-plans", map[string]string{"userId": env.owner.Hex()})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}

	env.token = "garbage"
	w = env.do(t, http.MethodPost, "/api/academy/all-plans", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token = %d, want 401", w.Code)
	}
}

func TestOwnerMismatchForbidden(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/turf-admin/plans", map[string]string{"userid": primitive.NewObjectID().Hex()})
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign owner = %d, want 403", w.Code)
	}
}

func TestAcademyPlanLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/academy/add-plan", map[string]any{
		"userId": env.owner.Hex(), "name": "Gold", "amount": 1500, "plan_limit": 30, "sport": "Cricket",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add-plan = %d: %s", w.Code, w.Body)
	}
	var created domain.AcademyPlan
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if !created.Active {
		t.Error("active should default to true on create")
	}

	w = env.do(t, http.MethodPatch, "/api/academy/update-plan-status/"+created.ID.Hex()+"/toggle", nil)
	var toggled domain.AcademyPlan
	_ = json.Unmarshal(w.Body.Bytes(), &toggled)
	if w.Code != http.StatusOK || toggled.Active {
		t.Fatalf("toggle = %d active=%v", w.Code, toggled.Active)
	}

	w = env.do(t, http.MethodPut, "/api/academy/update-plan/"+created.ID.Hex(), map[string]any{
		"name": "Gold", "amount": 2000, "plan_limit": 30, "sport": "Cricket", "active": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update-plan = %d: %s", w.Code, w.Body)
	}

	w = env.do(t, http.MethodPost, "/api/academy/all-plans", map[string]string{"userId": env.owner.Hex()})
	var plans []domain.AcademyPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plans); err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 || plans[0].Amount != 2000 || plans[0].Active {
		t.Errorf("all-plans = %+v", plans)
	}
}

func TestAcademyValidationAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/academy/add-plan", map[string]any{"name": "", "amount": -5, "plan_limit": 0, "sport": "Chess"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid add-plan = %d, want 400", w.Code)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	for _, f := range []string{"name", "amount", "plan_limit", "sport"} {
		if _, ok := body.Fields[f]; !ok {
			t.Errorf("missing field error for %q in %v", f, body.Fields)
		}
	}

	w = env.do(t, http.MethodPatch, "/api/academy/update-plan-status/"+primitive.NewObjectID().Hex()+"/toggle", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("toggle unknown = %d, want 404", w.Code)
	}
	w = env.do(t, http.MethodPut, "/api/academy/update-plan/not-an-id", map[string]any{"name": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update malformed id = %d, want 404", w.Code)
	}
}

func TestTurfEditAndToggle(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/turf-admin/add-plan", map[string]any{
		"userid": env.owner.Hex(), "name": "Evening", "amount": 1200, "time_hr": 1, "time_min": 30,
		"category": "TURF", "sport": "Football", "from": "17:00", "to": "22:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add-plan = %d: %s", w.Code, w.Body)
	}
	var created domain.TurfPlan
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = env.do(t, http.MethodPost, "/api/turf-admin/edit-plan", map[string]any{
		"userid": env.owner.Hex(), "_id": created.ID.Hex(), "name": "Evening", "amount": 1200, "time_hr": 1,
		"time_min": 30, "category": "GROUND-A", "sport": "Football", "from": "17:00", "to": "22:00", "active": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("edit-plan = %d: %s", w.Code, w.Body)
	}
	var edited domain.TurfPlan
	_ = json.Unmarshal(w.Body.Bytes(), &edited)
	if edited.Category != domain.CategoryGroundA || edited.Active {
		t.Errorf("edit-plan stored %+v", edited)
	}

	w = env.do(t, http.MethodPatch, "/api/turf-admin/update-plan-status/"+created.ID.Hex()+"/toggle", nil)
	var toggled domain.TurfPlan
	_ = json.Unmarshal(w.Body.Bytes(), &toggled)
	if w.Code != http.StatusOK || !toggled.Active {
		t.Errorf("toggle = %d active=%v, want 200 true", w.Code, toggled.Active)
	}

	w = env.do(t, http.MethodPost, "/api/turf-admin/edit-plan", map[string]any{
		"_id": created.ID.Hex(), "name": "Evening", "amount": 1200, "time_hr": 1, "category": "TURF",
		"sport": "Football", "from": "19:00", "to": "09:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("reversed window = %d, want 400", w.Code)
	}
}

func TestBookingsAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.Add(domain.Booking{OwnerID: env.owner, CustomerName: "Ravi", From: "10:00", To: "11:00", Amount: 900, Status: "confirmed"})
	env.bookings.Add(domain.Booking{OwnerID: primitive.NewObjectID(), CustomerName: "Other"})

	w := env.do(t, http.MethodPost, "/api/turf-admin/get-all-bookings", map[string]string{"userid": env.owner.Hex()})
	var bookings []domain.Booking
	_ = json.Unmarshal(w.Body.Bytes(), &bookings)
	if w.Code != http.StatusOK || len(bookings) != 1 || bookings[0].CustomerName != "Ravi" {
		t.Errorf("get-all-bookings = %d %+v", w.Code, bookings)
	}

	w = env.do(t, http.MethodPost, "/api/turf-admin/export", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("export without storage = %d, want 503", w.Code)
	}
}

func TestTurfTimesAreStoredZeroPadded(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/turf-admin/add-plan", map[string]any{
		"name": "Morning", "amount": 500, "time_hr": 1, "category": "TURF",
		"sport": "Cricket", "from": "9:00", "to": "11:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add-plan = %d: %s", w.Code, w.Body)
	}

	w = env.do(t, http.MethodPost, "/api/turf-admin/plans", nil)
	var plans []domain.TurfPlan
	_ = json.Unmarshal(w.Body.Bytes(), &plans)
	if len(plans) != 1 || plans[0].From != "09:00" || plans[0].To != "11:30" {
		t.Errorf("listed = %+v", plans)
	}
}
