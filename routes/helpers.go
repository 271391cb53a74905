package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crime-report-server/services"
)

// respondError maps domain errors onto the HTTP error taxonomy
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You do not have permission to access this resource",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "The requested resource was not found",
		})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Email already registered",
			"message": "An account with this email already exists",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid status transition",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Something went wrong",
		})
	}
}

// requestMeta extracts network metadata for the audit trail
func requestMeta(c *gin.Context) services.RequestMeta {
	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")

	meta := services.RequestMeta{}
	if ip != "" {
		meta.IPAddress = &ip
	}
	if userAgent != "" {
		meta.UserAgent = &userAgent
	}
	return meta
}
