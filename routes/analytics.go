package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
)

// RegisterAnalyticsRoutes exposes the aggregated dashboard snapshot to officials.
func RegisterAnalyticsRoutes(router *gin.RouterGroup, analytics *services.AnalyticsService) {
	router.GET("/analytics", middleware.RequireRoles(models.RolePolice, models.RoleAdmin), func(c *gin.Context) {
		view, err := analytics.Get()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"analytics": view,
		})
	})
}
