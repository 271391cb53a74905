package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
)

// RegisterAuditRoutes exposes the audit trail to administrators.
func RegisterAuditRoutes(router *gin.RouterGroup, notifications *services.NotificationService) {
	router.GET("/audit-logs", middleware.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		limit := 100
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 1000 {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "Invalid request",
					"message": "limit must be an integer between 1 and 1000",
				})
				return
			}
			limit = parsed
		}

		logs, err := notifications.ListAuditLogs(limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"audit_logs": logs,
		})
	})
}
