package main

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"crime-report-server/models"
	"crime-report-server/utils"
)

// seedInitialData populates an empty database with reference accounts and
// demo complaints. It is a no-op when users already exist.
func seedInitialData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Println("ℹ️ Initial data already exists, skipping seed")
		return nil
	}

	passwordHash, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "admin@crimewatch.com", PasswordHash: passwordHash, FullName: "System Administrator", Phone: "+1-555-0100", Address: "123 Admin Street, City, State", Role: models.RoleAdmin, IsActive: true},
		{Email: "officer@police.gov", PasswordHash: passwordHash, FullName: "Officer John Smith", Phone: "+1-555-0200", Address: "456 Police Station Rd, City, State", Role: models.RolePolice, IsActive: true},
		{Email: "officer2@police.gov", PasswordHash: passwordHash, FullName: "Officer Sarah Johnson", Phone: "+1-555-0201", Address: "456 Police Station Rd, City, State", Role: models.RolePolice, IsActive: true},
		{Email: "citizen@email.com", PasswordHash: passwordHash, FullName: "Jane Doe", Phone: "+1-555-0300", Address: "789 Citizen Ave, City, State", Role: models.RoleUser, IsActive: true},
		{Email: "citizen2@email.com", PasswordHash: passwordHash, FullName: "Mike Wilson", Phone: "+1-555-0301", Address: "321 Oak Street, City, State", Role: models.RoleUser, IsActive: true},
		{Email: "citizen3@email.com", PasswordHash: passwordHash, FullName: "Emily Davis", Phone: "+1-555-0302", Address: "654 Pine Avenue, City, State", Role: models.RoleUser, IsActive: true},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		crimeType := "Petty Theft"
		witnesses1 := "No witnesses observed"
		witnesses2 := "Security cameras may have footage"
		witnesses3 := "Email evidence available"
		officerName := users[1].FullName

		complaints := []models.Complaint{
			{
				Title:            "Bicycle Theft from Downtown Area",
				Description:      "My bicycle was stolen from the bike rack outside the downtown library. It was a red mountain bike with distinctive white stripes. I had it locked with a chain lock, but the lock was cut. There were no witnesses that I'm aware of, but there might be security cameras in the area.",
				ComplaintType:    "Theft/Burglary",
				IncidentLocation: "Downtown Library, 123 Main St",
				IncidentDate:     now.AddDate(0, 0, -12),
				Priority:         models.PriorityMedium,
				Status:           models.StatusApproved,
				CrimeType:        &crimeType,
				Witnesses:        &witnesses1,
				AssignedOfficer:  &officerName,
				ApprovedBy:       &users[1].ID,
				UserID:           users[3].ID,
			},
			{
				Title:            "Graffiti Vandalism on Building Wall",
				Description:      "Large graffiti tags appeared overnight on the side wall of our office building. The graffiti covers approximately 20 square feet and appears to be spray painted. This is the third incident this month in our area. We have security footage that might have captured the perpetrators.",
				ComplaintType:    "Vandalism/Property Damage",
				IncidentLocation: "Office Building, 456 Business Ave",
				IncidentDate:     now.AddDate(0, 0, -5),
				Priority:         models.PriorityLow,
				Status:           models.StatusPending,
				Witnesses:        &witnesses2,
				UserID:           users[4].ID,
			},
			{
				Title:            "Suspicious Online Activity - Potential Fraud",
				Description:      "I received multiple suspicious emails claiming to be from my bank, asking for personal information. The emails look legitimate but contain subtle differences from official bank communications. I did not provide any information, but I'm concerned others might fall victim to this scam.",
				ComplaintType:    "Cybercrime",
				IncidentLocation: "Online/Email",
				IncidentDate:     now.AddDate(0, 0, -2),
				Priority:         models.PriorityHigh,
				Status:           models.StatusUnderReview,
				Witnesses:        &witnesses3,
				AssignedOfficer:  &officerName,
				UserID:           users[5].ID,
			},
		}

		if err := complaints[0].SetImageList([]string{"/bicycle-theft-evidence.jpg"}); err != nil {
			return err
		}
		if err := complaints[1].SetImageList([]string{"/graffiti-vandalism-evidence.jpg"}); err != nil {
			return err
		}

		for i := range complaints {
			if err := tx.Create(&complaints[i]).Error; err != nil {
				return err
			}
		}

		trackURL := "/track-complaints"
		notifications := []models.Notification{
			{
				UserID:    users[3].ID,
				Title:     "Complaint Status Updated",
				Message:   "Your complaint 'Bicycle Theft from Downtown Area' has been approved and assigned to Officer John Smith.",
				Type:      models.NotificationSuccess,
				Category:  models.CategoryComplaint,
				ActionURL: &trackURL,
			},
			{
				UserID:    users[4].ID,
				Title:     "Complaint Under Review",
				Message:   "Your complaint 'Graffiti Vandalism on Building Wall' is currently under review by our team.",
				Type:      models.NotificationInfo,
				Category:  models.CategoryComplaint,
				ActionURL: &trackURL,
			},
			{
				UserID:   users[5].ID,
				Title:    "Welcome to CrimeWatch",
				Message:  "Your account has been created successfully. You can now file crime reports and track their status.",
				Type:     models.NotificationSuccess,
				Category: models.CategorySystem,
			},
		}
		for i := range notifications {
			if err := tx.Create(&notifications[i]).Error; err != nil {
				return err
			}
		}

		complaintID := "1"
		auditLogs := []models.AuditLog{
			{
				UserID:   users[0].ID,
				UserName: users[0].FullName,
				Action:   models.ActionLogin,
				Resource: "auth",
				Details:  mustJSON(map[string]interface{}{"email": users[0].Email}),
			},
			{
				UserID:     users[3].ID,
				UserName:   users[3].FullName,
				Action:     models.ActionCreateComplaint,
				Resource:   "complaint",
				ResourceID: &complaintID,
				Details:    mustJSON(map[string]interface{}{"category": "Theft/Burglary", "priority": "medium"}),
			},
			{
				UserID:     users[1].ID,
				UserName:   users[1].FullName,
				Action:     models.ActionUpdateStatus,
				Resource:   "complaint",
				ResourceID: &complaintID,
				Details:    mustJSON(map[string]interface{}{"status": "approved", "crime_type": "Petty Theft"}),
			},
		}
		for i := range auditLogs {
			if err := tx.Create(&auditLogs[i]).Error; err != nil {
				return err
			}
		}

		month := now.Format("2006-01")
		analytics := models.Analytics{
			TotalComplaints: len(complaints),
			ComplaintsByStatus: mustJSON(map[string]int{
				"pending": 1, "approved": 1, "under_review": 1, "rejected": 0,
			}),
			ComplaintsByCategory: mustJSON(map[string]int{
				"Theft/Burglary": 1, "Vandalism/Property Damage": 1, "Cybercrime": 1,
			}),
			ComplaintsByPriority: mustJSON(map[string]int{
				"low": 1, "medium": 1, "high": 1, "urgent": 0,
			}),
			MonthlyTrends: mustJSON([]models.MonthlyTrend{
				{Month: month, Count: 3, Approved: 1, Rejected: 0},
			}),
			UserStats: mustJSON(models.UserStatistics{
				TotalUsers:        len(users),
				ActiveUsers:       len(users),
				NewUsersThisMonth: len(users),
			}),
			ResponseTimeStats: mustJSON(map[string]float64{
				"average": 24.5, "median": 24.0, "fastest": 12.0, "slowest": 48.0,
			}),
		}
		if err := tx.Create(&analytics).Error; err != nil {
			return err
		}

		log.Printf("✅ Seeded %d users, %d complaints, %d notifications", len(users), len(complaints), len(notifications))
		return nil
	})
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
