package models

import (
	"encoding/json"
	"time"
)

// Analytics is a single materialized aggregate row derived from the live
// complaint and user sets. At most one instance exists; it is recomputed in
// full after every mutating complaint operation.
type Analytics struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	TotalComplaints      int       `json:"total_complaints" gorm:"default:0"`
	ComplaintsByStatus   string    `json:"-" gorm:"type:text"` // JSON
	ComplaintsByCategory string    `json:"-" gorm:"type:text"` // JSON
	ComplaintsByPriority string    `json:"-" gorm:"type:text"` // JSON
	MonthlyTrends        string    `json:"-" gorm:"type:text"` // JSON
	UserStats            string    `json:"-" gorm:"type:text"` // JSON
	ResponseTimeStats    string    `json:"-" gorm:"type:text"` // JSON, seeded only
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Analytics model
func (Analytics) TableName() string {
	return "analytics"
}

// MonthlyTrend is one time bucket of the complaint trend sequence
type MonthlyTrend struct {
	Month    string `json:"month"` // YYYY-MM
	Count    int    `json:"count"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

// UserStatistics summarizes the user set
type UserStatistics struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
}

// AnalyticsView is the decoded API representation of the analytics row
type AnalyticsView struct {
	TotalComplaints      int                    `json:"totalComplaints"`
	ComplaintsByStatus   map[string]int         `json:"complaintsByStatus"`
	ComplaintsByCategory map[string]int         `json:"complaintsByCategory"`
	ComplaintsByPriority map[string]int         `json:"complaintsByPriority"`
	MonthlyTrends        []MonthlyTrend         `json:"monthlyTrends"`
	UserStats            UserStatistics         `json:"userStats"`
	ResponseTimeStats    map[string]interface{} `json:"responseTimeStats"`
}

// View decodes all JSON columns into an AnalyticsView. Empty or malformed
// columns decode to their zero collections rather than failing.
func (a *Analytics) View() AnalyticsView {
	view := AnalyticsView{
		TotalComplaints:      a.TotalComplaints,
		ComplaintsByStatus:   decodeCounts(a.ComplaintsByStatus),
		ComplaintsByCategory: decodeCounts(a.ComplaintsByCategory),
		ComplaintsByPriority: decodeCounts(a.ComplaintsByPriority),
		MonthlyTrends:        []MonthlyTrend{},
		ResponseTimeStats:    map[string]interface{}{},
	}
	if a.MonthlyTrends != "" {
		_ = json.Unmarshal([]byte(a.MonthlyTrends), &view.MonthlyTrends)
	}
	if a.UserStats != "" {
		_ = json.Unmarshal([]byte(a.UserStats), &view.UserStats)
	}
	if a.ResponseTimeStats != "" {
		_ = json.Unmarshal([]byte(a.ResponseTimeStats), &view.ResponseTimeStats)
	}
	return view
}

func decodeCounts(raw string) map[string]int {
	counts := map[string]int{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &counts)
	}
	return counts
}
