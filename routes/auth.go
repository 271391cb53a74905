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
)

// RegisterAuthRoutes registers registration, login and token refresh
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, jwtService *services.JWTService, notifications *services.NotificationService) {
	// Citizen registration
	router.POST("/register", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=8,max=128"`
			FullName string `json:"full_name" binding:"required,min=2,max=100"`
			Phone    string `json:"phone" binding:"required"`
			Address  string `json:"address" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		// Check if user already exists
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
			Role:         models.RoleUser,
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

		// Welcome notification for the new account
		if _, err := notifications.Create(db, user.ID,
			"Welcome to CrimeWatch",
			"Your account has been created successfully. You can now file crime reports and track their status.",
			models.NotificationSuccess, models.CategorySystem, nil); err != nil {
			log.Printf("⚠️ Failed to create welcome notification for user %d: %v", user.ID, err)
		}

		log.Printf("✅ User registered: %d", user.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Account created successfully",
			"user":    user,
		})
	})

	// Login
	router.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			respondError(c, services.ErrInvalidCredentials)
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Account deactivated",
				"message": "Your account has been deactivated",
			})
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
			respondError(c, services.ErrInvalidCredentials)
			return
		}

		// Revoke all existing tokens for security
		if err := jwtService.RevokeAllUserTokens(user.ID); err != nil {
			log.Printf("⚠️ Failed to revoke existing tokens for user %d: %v", user.ID, err)
		}

		deviceID := c.GetHeader("X-Device-ID")
		userAgent := c.GetHeader("User-Agent")
		ipAddress := c.ClientIP()

		tokenPair, err := jwtService.GenerateTokenPair(user.ID, deviceID, userAgent, ipAddress)
		if err != nil {
			log.Printf("❌ Token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to generate authentication tokens",
			})
			return
		}

		meta := requestMeta(c)
		if err := notifications.Audit(db, services.AuditEntry{
			ActorID:   user.ID,
			ActorName: user.FullName,
			Action:    models.ActionLogin,
			Resource:  "auth",
			Details:   map[string]interface{}{"email": user.Email},
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		}); err != nil {
			log.Printf("⚠️ Failed to audit login for user %d: %v", user.ID, err)
		}

		log.Printf("✅ User signed in successfully: %d", user.ID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Sign in successful",
			"user":    user,
			"tokens":  tokenPair,
		})
	})

	// Refresh token endpoint
	router.POST("/refresh", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
		if err != nil {
			log.Printf("❌ Token refresh failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid refresh token",
				"message": "Refresh token is invalid or expired",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Token refreshed successfully",
			"tokens":  tokenPair,
		})
	})

	// Current user
	router.GET("/me", middleware.AuthMiddleware(), func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
		})
	})
}
