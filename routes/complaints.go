package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
)

// RegisterComplaintRoutes registers the complaint lifecycle endpoints. The
// group is expected to be behind AuthMiddleware already.
func RegisterComplaintRoutes(router *gin.RouterGroup, complaints *services.ComplaintService) {
	// File a new complaint (multipart, optional evidence images)
	router.POST("", submitComplaint(complaints))

	// List all complaints, optional ?status= filter
	router.GET("", middleware.RequireRoles(models.RolePolice, models.RoleAdmin), func(c *gin.Context) {
		status := c.Query("status")
		results, err := complaints.List(status)
		if err != nil {
			log.Printf("❌ Error fetching complaints: %v", err)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"complaints": results,
		})
	})

	// List the caller's own complaints
	router.GET("/my", func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		results, err := complaints.ListByOwner(user.ID)
		if err != nil {
			log.Printf("❌ Error fetching complaints for user %d: %v", user.ID, err)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"complaints": results,
		})
	})

	// Fetch one complaint (owner or police/admin)
	router.GET("/:id", func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, err := parseIDParam(c)
		if err != nil {
			return
		}

		complaint, err := complaints.Get(id, user)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"complaint": complaint,
		})
	})

	// Take a pending complaint under review
	router.POST("/:id/review", middleware.RequireRoles(models.RolePolice, models.RoleAdmin), func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, err := parseIDParam(c)
		if err != nil {
			return
		}

		var req struct {
			ReviewNotes string `json:"review_notes"`
		}
		// Body is optional for review
		_ = c.ShouldBindJSON(&req)

		complaint, err := complaints.Review(c.Request.Context(), user, id, req.ReviewNotes, requestMeta(c))
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Complaint %d taken under review by user %d", complaint.ID, user.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Complaint is now under review",
			"complaint": complaint,
		})
	})

	// Approve a complaint, finalizing the crime type
	router.POST("/:id/approve", middleware.RequireRoles(models.RolePolice, models.RoleAdmin), func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, err := parseIDParam(c)
		if err != nil {
			return
		}

		var req struct {
			CrimeType string `json:"crime_type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		complaint, err := complaints.Approve(c.Request.Context(), user, id, req.CrimeType, requestMeta(c))
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Complaint %d approved by user %d", complaint.ID, user.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Complaint approved successfully",
			"complaint": complaint,
		})
	})

	// Reject a complaint
	router.POST("/:id/reject", middleware.RequireRoles(models.RolePolice, models.RoleAdmin), func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, err := parseIDParam(c)
		if err != nil {
			return
		}

		complaint, err := complaints.Reject(c.Request.Context(), user, id, requestMeta(c))
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Complaint %d rejected by user %d", complaint.ID, user.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Complaint rejected successfully",
			"complaint": complaint,
		})
	})
}

// submitComplaint handles the multipart submission form
func submitComplaint(complaints *services.ComplaintService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid form data",
				"message": "Request must be multipart/form-data",
			})
			return
		}

		input := services.ComplaintInput{
			Title:            c.PostForm("title"),
			Description:      c.PostForm("description"),
			IncidentDate:     c.PostForm("incident_date"),
			IncidentLocation: c.PostForm("incident_location"),
			ComplaintType:    c.PostForm("complaint_type"),
			Priority:         c.PostForm("priority"),
			Witnesses:        c.PostForm("witnesses"),
		}

		var files []services.UploadFile
		if form := c.Request.MultipartForm; form != nil {
			for _, header := range form.File["images"] {
				file, err := header.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{
						"error":   "Invalid upload",
						"message": "Could not read uploaded image",
					})
					return
				}
				defer file.Close()
				files = append(files, services.UploadFile{
					Filename: header.Filename,
					Reader:   file,
				})
			}
		}

		complaint, err := complaints.Submit(c.Request.Context(), user, input, files, requestMeta(c))
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Complaint %d submitted by user %d", complaint.ID, user.ID)
		c.JSON(http.StatusCreated, gin.H{
			"success":      true,
			"message":      "Complaint registered successfully",
			"complaint_id": complaint.ID,
		})
	}
}

// RegisterCategoryRoutes registers the public category listing
func RegisterCategoryRoutes(router *gin.RouterGroup) {
	router.GET("/complaint-categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"categories": models.ComplaintCategories,
			"crimeTypes": models.CrimeTypesByCategory,
		})
	})
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid id",
			"message": "Resource id must be a positive integer",
		})
		return 0, err
	}
	return uint(id), nil
}
