package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crime-report-server/config"
	"crime-report-server/database"
	"crime-report-server/models"
)

// newTestDB opens an isolated in-memory database for one test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Load()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		FullName:     "Test " + string(role),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func validInput() ComplaintInput {
	return ComplaintInput{
		Title:            "Stolen bicycle",
		Description:      "My bicycle was stolen from the rack outside the library.",
		IncidentDate:     "2025-06-15T14:30:00Z",
		IncidentLocation: "Downtown Library, 123 Main St",
		ComplaintType:    "Theft/Burglary",
		Priority:         "medium",
	}
}

func newTestComplaintService(db *gorm.DB, uploader Uploader) *ComplaintService {
	notifications := NewNotificationService(db)
	analytics := NewAnalyticsService(db)
	return NewComplaintService(db, uploader, notifications, analytics)
}
