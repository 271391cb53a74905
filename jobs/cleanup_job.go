package jobs

import (
	"log"
	"time"

	"crime-report-server/database"
	"crime-report-server/middleware"
	"crime-report-server/models"
	"crime-report-server/services"
)

// CleanupJob removes expired notifications and revoked or stale refresh tokens
type CleanupJob struct {
	jwtService *services.JWTService
	stopChan   chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(jwtService *services.JWTService) *CleanupJob {
	return &CleanupJob{
		jwtService: jwtService,
		stopChan:   make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.removeExpiredNotifications()
			j.removeExpiredTokens()
			middleware.CleanupRateLimiters()
		case <-j.stopChan:
			return
		}
	}
}

// removeExpiredNotifications deletes notifications past their expiry timestamp
func (j *CleanupJob) removeExpiredNotifications() {
	result := database.DB.Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("❌ Error cleaning up expired notifications: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Removed %d expired notifications", result.RowsAffected)
	}
}

// removeExpiredTokens delegates refresh token cleanup to the JWT service
func (j *CleanupJob) removeExpiredTokens() {
	if err := j.jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Error cleaning up expired refresh tokens: %v", err)
	}
}
