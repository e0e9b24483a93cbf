package api

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AcademyHandler serves the academy catalog.
type AcademyHandler struct {
	academyService service.AcademyPlanService
	exportService  service.ExportService
}

func NewAcademyHandler(academyService service.AcademyPlanService, exportService service.ExportService) *AcademyHandler {
	return &AcademyHandler{academyService: academyService, exportService: exportService}
}

// --- DTOs ---

// AcademyOwnerRequest is the body of list and export calls.
type AcademyOwnerRequest struct {
	UserID string `json:"userId"`
}

// AcademyPlanRequest carries every client-writable academy field. Active
// defaults to true on create when omitted.
type AcademyPlanRequest struct {
	UserID    string       `json:"userId"`
	Name      string       `json:"name"`
	Amount    float64      `json:"amount"`
	PlanLimit int          `json:"plan_limit"`
	Sport     domain.Sport `json:"sport"`
	Active    *bool        `json:"active"`
}

func (r AcademyPlanRequest) fields() domain.AcademyPlan {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.AcademyPlan{
		Name:      r.Name,
		Amount:    r.Amount,
		PlanLimit: r.PlanLimit,
		Sport:     r.Sport,
		Active:    active,
	}
}

// --- Handler Methods ---

// ListPlans godoc
// @Summary List the manager's academy plans
// @Router /academy/all-plans [post]
func (h *AcademyHandler) ListPlans(c *gin.Context) {
	var req AcademyOwnerRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plans, err := h.academyService.ListPlans(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, err, "retrieve academy plans")
		return
	}
	if plans == nil {
		plans = []domain.AcademyPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary Create an academy plan
// @Router /academy/add-plan [post]
func (h *AcademyHandler) CreatePlan(c *gin.Context) {
	var req AcademyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.academyService.CreatePlan(c.Request.Context(), ownerID, req.fields())
	if err != nil {
		respondServiceError(c, err, "create academy plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan godoc
// @Summary Replace every field of an academy plan
// @Router /academy/update-plan/{id} [put]
func (h *AcademyHandler) UpdatePlan(c *gin.Context) {
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	var req AcademyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	plan, err := h.academyService.UpdatePlan(c.Request.Context(), ownerID, planID, req.fields())
	if err != nil {
		respondServiceError(c, err, "update academy plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ToggleActive godoc
// @Summary Flip the active flag of an academy plan
// @Router /academy/update-plan-status/{id}/toggle [patch]
func (h *AcademyHandler) ToggleActive(c *gin.Context) {
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	ownerID, ok := resolveOwner(c, "")
	if !ok {
		return
	}

	plan, err := h.academyService.ToggleActive(c.Request.Context(), ownerID, planID)
	if err != nil {
		respondServiceError(c, err, "toggle academy plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportPlans godoc
// @Summary Export the academy catalog to object storage
// @Router /academy/export [post]
func (h *AcademyHandler) ExportPlans(c *gin.Context) {
	var req AcademyOwnerRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ownerID, ok := resolveOwner(c, req.UserID)
	if !ok {
		return
	}

	export, err := h.exportService.ExportCatalog(c.Request.Context(), ownerID, domain.CatalogAcademy)
	if err != nil {
		respondServiceError(c, err, "export academy plans")
		return
	}
	c.JSON(http.StatusOK, export)
}
