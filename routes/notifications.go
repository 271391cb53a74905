package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
	"crime-report-server/utils"
	ws "crime-report-server/websocket"
)

// RegisterNotificationRoutes registers the per-user notification endpoints.
// The group is expected to be behind AuthMiddleware already.
func RegisterNotificationRoutes(router *gin.RouterGroup, notifications *services.NotificationService) {
	router.GET("", func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		list, err := notifications.ListForUser(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"notifications": list,
		})
	})

	router.GET("/unread-count", func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		count, err := notifications.UnreadCount(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"unread_count": count,
		})
	})

	router.POST("/:id/read", func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		notificationID, err := parseIDParam(c)
		if err != nil {
			return
		}

		if err := notifications.MarkRead(user.ID, notificationID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Notification marked as read",
		})
	})

	router.POST("/mark-all-read", func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		if err := notifications.MarkAllRead(user.ID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "All notifications marked as read",
		})
	})
}

// RegisterNotificationStream registers the WebSocket push endpoint. It lives
// outside the authenticated group because browser WebSocket clients cannot set
// an Authorization header; the access token is passed as a query parameter.
func RegisterNotificationStream(router *gin.RouterGroup, db *gorm.DB, hub *ws.Hub) {
	router.GET("/notifications/stream", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Access token is required",
			})
			return
		}

		claims, err := utils.VerifyAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "User not found",
			})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Account is deactivated",
			})
			return
		}

		log.Printf("🔌 Opening notification stream for user %d", user.ID)
		ws.ServeWebSocket(hub, c.Writer, c.Request, &user)
	})
}
