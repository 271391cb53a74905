package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
	"crime-report-server/utils"
)

// RegisterUserRoutes registers profile and admin user management endpoints.
// The group is expected to be behind AuthMiddleware already.
func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, notifications *services.NotificationService) {
	// Own profile
	router.GET("/profile", func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
		})
	})

	// Update own profile
	router.PUT("/profile", func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var req struct {
			FullName string `json:"full_name"`
			Phone    string `json:"phone"`
			Address  string `json:"address"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		if req.FullName != "" {
			user.FullName = req.FullName
		}
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Address != "" {
			user.Address = req.Address
		}

		if err := db.Save(&user).Error; err != nil {
			log.Printf("❌ Profile update failed for user %d: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to update profile",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
		})
	})

	// List all users (admin)
	router.GET("", middleware.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			log.Printf("❌ Error fetching users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to fetch users",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"users":   users,
		})
	})

	// Create an account with an explicit role (admin)
	router.POST("/create", middleware.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		admin := middleware.CurrentUser(c)

		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=8,max=128"`
			FullName string `json:"full_name" binding:"required,min=2,max=100"`
			Phone    string `json:"phone"`
			Address  string `json:"address"`
			Role     string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		role, ok := models.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid role",
				"message": "Role must be one of: user, police, admin",
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var existingUser models.User
		if err := db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
			respondError(c, services.ErrDuplicateEmail)
			return
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("❌ Password hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to process password",
			})
			return
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: hashedPassword,
			FullName:     req.FullName,
			Phone:        req.Phone,
			Address:      req.Address,
			Role:         role,
			IsActive:     true,
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ User creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to create account",
			})
			return
		}

		resourceID := strconv.FormatUint(uint64(user.ID), 10)
		meta := requestMeta(c)
		if err := notifications.Audit(db, services.AuditEntry{
			ActorID:    admin.ID,
			ActorName:  admin.FullName,
			Action:     models.ActionCreateUser,
			Resource:   "user",
			ResourceID: &resourceID,
			Details:    map[string]interface{}{"email": user.Email, "role": user.Role},
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
		}); err != nil {
			log.Printf("⚠️ Failed to audit user creation: %v", err)
		}

		log.Printf("✅ %s account created by admin %d: %d", role, admin.ID, user.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Account created successfully",
			"user_id": user.ID,
		})
	})
}
