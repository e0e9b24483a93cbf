package api

import (
	"alcyxob/plan-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the catalog routes need.
type Services struct {
	Academy  service.AcademyPlanService
	Turf     service.TurfPlanService
	Bookings service.BookingService
	Export   service.ExportService
}

// SetupRoutes registers the catalog service endpoints. Paths match the ones
// the deployed front-ends already call.
func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	academyHandler := NewAcademyHandler(svc.Academy, svc.Export)
	turfHandler := NewTurfHandler(svc.Turf, svc.Bookings, svc.Export)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	apiGroup.Use(AuthMiddleware(jwtSecret))
	{
		academy := apiGroup.Group("/academy")
		{
			academy.POST("/all-plans", academyHandler.ListPlans)
			academy.POST("/add-plan", academyHandler.CreatePlan)
			academy.PUT("/update-plan/:id", academyHandler.UpdatePlan)
			academy.PATCH("/update-plan-status/:id/toggle", academyHandler.ToggleActive)
			academy.POST("/export", academyHandler.ExportPlans)
		}

		turf := apiGroup.Group("/turf-admin")
		{
			turf.POST("/plans", turfHandler.ListPlans)
			turf.POST("/add-plan", turfHandler.CreatePlan)
			turf.POST("/edit-plan", turfHandler.EditPlan)
			turf.PATCH("/update-plan-status/:id/toggle", turfHandler.ToggleActive)
			turf.POST("/get-all-bookings", turfHandler.ListBookings)
			turf.POST("/export", turfHandler.ExportPlans)
		}
	}
}
