package api

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/service"
	"alcyxob/plan-admin/internal/storage"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolveOwner returns the token's owner id. When the body names an owner it
// must be the same one.
func resolveOwner(c *gin.Context, bodyOwner string) (primitive.ObjectID, bool) {
	ownerIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify manager from token.")
		return primitive.NilObjectID, false
	}
	if bodyOwner != "" && bodyOwner != ownerIDStr {
		abortWithError(c, http.StatusForbidden, "Owner in request does not match the session.")
		return primitive.NilObjectID, false
	}
	ownerID, err := primitive.ObjectIDFromHex(ownerIDStr)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid owner ID format in token.")
		return primitive.NilObjectID, false
	}
	return ownerID, true
}

// planIDParam parses the :id route parameter. Malformed ids can never match
// a stored plan, so they are reported as not found.
func planIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, service.ErrPlanNotFound.Error())
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindOptionalJSON binds the body when one was sent.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// respondServiceError maps service errors to HTTP status codes.
func respondServiceError(c *gin.Context, err error, action string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOwnerRequired):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotConfigured):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("ERROR: [%s] %s: %v", requestID(c), action, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to "+action+".")
	}
}
