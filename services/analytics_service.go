package services

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/gorm"

	"crime-report-server/models"
)

// AnalyticsService maintains the single materialized analytics row. The row
// is never updated incrementally; Recompute derives all aggregates from the
// live complaint and user sets.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Recompute rescans all complaints and users and rewrites the analytics row,
// creating it if absent. Callers pass the transaction of the mutating
// operation so the aggregates commit or roll back together with it.
// ResponseTimeStats is deliberately left untouched here; only seeding
// writes it.
func (s *AnalyticsService) Recompute(tx *gorm.DB) error {
	var complaints []models.Complaint
	if err := tx.Find(&complaints).Error; err != nil {
		return err
	}

	byStatus := map[string]int{}
	byCategory := map[string]int{}
	byPriority := map[string]int{}
	trendBuckets := map[string]*models.MonthlyTrend{}

	for _, complaint := range complaints {
		byStatus[string(complaint.Status)]++
		byCategory[complaint.ComplaintType]++
		byPriority[string(complaint.Priority)]++

		month := complaint.CreatedAt.Format("2006-01")
		bucket, ok := trendBuckets[month]
		if !ok {
			bucket = &models.MonthlyTrend{Month: month}
			trendBuckets[month] = bucket
		}
		bucket.Count++
		switch complaint.Status {
		case models.StatusApproved:
			bucket.Approved++
		case models.StatusRejected:
			bucket.Rejected++
		}
	}

	trends := make([]models.MonthlyTrend, 0, len(trendBuckets))
	for _, bucket := range trendBuckets {
		trends = append(trends, *bucket)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })

	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		return err
	}

	activeUsers := 0
	for _, user := range users {
		if user.IsActive {
			activeUsers++
		}
	}

	userStats := models.UserStatistics{
		TotalUsers:  len(users),
		ActiveUsers: activeUsers,
		// Simplified: every user counts as new this month
		NewUsersThisMonth: len(users),
	}

	var analytics models.Analytics
	err := tx.First(&analytics).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		analytics = models.Analytics{}
	}

	analytics.TotalComplaints = len(complaints)
	analytics.ComplaintsByStatus = encodeJSON(byStatus)
	analytics.ComplaintsByCategory = encodeJSON(byCategory)
	analytics.ComplaintsByPriority = encodeJSON(byPriority)
	analytics.MonthlyTrends = encodeJSON(trends)
	analytics.UserStats = encodeJSON(userStats)
	analytics.UpdatedAt = time.Now()

	if analytics.ID == 0 {
		return tx.Create(&analytics).Error
	}
	return tx.Save(&analytics).Error
}

// Get returns the decoded analytics row, or ErrNotFound when no row exists
func (s *AnalyticsService) Get() (*models.AnalyticsView, error) {
	var analytics models.Analytics
	if err := s.db.First(&analytics).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	view := analytics.View()
	return &view, nil
}

func encodeJSON(v interface{}) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
