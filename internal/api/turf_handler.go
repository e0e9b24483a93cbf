package api

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TurfHandler serves the turf catalog and the bookings pass-through.
type TurfHandler struct {
	turfService    service.TurfPlanService
	bookingService service.BookingService
	exportService  service.ExportService
}

func NewTurfHandler(turfService service.TurfPlanService, bookingService service.BookingService, exportService service.ExportService) *TurfHandler {
	return &TurfHandler{turfService: turfService, bookingService: bookingService, exportService: exportService}
}

// --- DTOs ---

// TurfOwnerRequest is the body of list calls. The turf routes spell the key "userid".
type TurfOwnerRequest struct {
	UserID string `json:"userid"`
}

// TurfPlanRequest carries every client-writable turf field; edit-plan also
// names its target in PlanID.
type TurfPlanRequest struct {
	UserID   string           `json:"userid"`
	PlanID   string           `json:"_id"`
	Name     string           `json:"name"`
	Amount   float64          `json:"amount"`
	TimeHr   int              `json:"time_hr"`
	TimeMin  int              `json:"time_min"`
	Category domain.Category  `json:"category"`
	Sport    domain.Sport     `json:"sport"`
	From     domain.TimeOfDay `json:"from"`
	To       domain.TimeOfDay `json:"to"`
	Active   *bool            `json:"active"`
}

func (r TurfPlanRequest) fields() domain.TurfPlan {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.TurfPlan{
		Name:     r.Name,
		Amount:   r.Amount,
		TimeHr:   r.TimeHr,
		TimeMin:  r.TimeMin,
		Category: r.Category,
		Sport:    r.Sport,
		From:     normalizeTime(r.From),
		To:       normalizeTime(r.To),
		Active:   active,
	}
}

// normalizeTime zero-pads times like "9:00". Unparseable values are left for
// validation to reject.
func normalizeTime(t domain.TimeOfDay) domain.TimeOfDay {
	if canonical, err := domain.ParseTimeOfDay(string(t)); err == nil {
		return canonical
	}
	return t
}

// --- Handler Methods ---

// ListPlans godoc
// @Summary List the manager's turf plans
// @Router /turf-admin/plans [post]
func (h *TurfHandler) ListPlans(c *gin.Context) {
	var req TurfOwnerRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plans, err := h.turfService.ListPlans(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, err, "retrieve turf plans")
		return
	}
	if plans == nil {
		plans = []domain.TurfPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary Create a turf plan
// @Router /turf-admin/add-plan [post]
func (h *TurfHandler) CreatePlan(c *gin.Context) {
	var req TurfPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.turfService.CreatePlan(c.Request.Context(), ownerID, req.fields())
	if err != nil {
		respondServiceError(c, err, "create turf plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// EditPlan godoc
// @Summary Replace every field of a turf plan named by _id in the body
// @Router /turf-admin/edit-plan [post]
func (h *TurfHandler) EditPlan(c *gin.Context) {
	var req TurfPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, service.ErrPlanNotFound.Error())
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.turfService.UpdatePlan(c.Request.Context(), ownerID, planID, req.fields())
	if err != nil {
		respondServiceError(c, err, "edit turf plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ToggleActive godoc
// @Summary Flip the active flag of a turf plan
// @Router /turf-admin/update-plan-status/{id}/toggle [patch]
func (h *TurfHandler) ToggleActive(c *gin.Context) {
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	ownerID, ok := resolveOwner(c, "")
	if !ok {
		return
	}

	plan, err := h.turfService.ToggleActive(c.Request.Context(), ownerID, planID)
	if err != nil {
		respondServiceError(c, err, "toggle turf plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListBookings godoc
// @Summary List bookings against the manager's grounds
// @Router /turf-admin/get-all-bookings [post]
func (h *TurfHandler) ListBookings(c *gin.Context) {
	var req TurfOwnerRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, err, "retrieve bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// ExportPlans godoc
// @Summary Export the turf catalog to object storage
// @Router /turf-admin/export [post]
func (h *TurfHandler) ExportPlans(c *gin.Context) {
	var req TurfOwnerRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	export, err := h.exportService.ExportCatalog(c.Request.Context(), ownerID, domain.CatalogTurf)
	if err != nil {
		respondServiceError(c, err, "export turf plans")
		return
	}
	c.JSON(http.StatusOK, export)
}
