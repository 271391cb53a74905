package services

import (
	"errors"
	"testing"
	"time"

	"crime-report-server/models"
)

func TestRecomputeDerivesAllAggregates(t *testing.T) {
	db := newTestDB(t)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	inactive := createTestUser(t, db, "gone@example.com", models.RoleUser)
	db.Model(&inactive).Update("is_active", false)

	january := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	march := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	complaints := []models.Complaint{
		{Title: "a", Description: "d", IncidentDate: january, IncidentLocation: "x", ComplaintType: "Theft/Burglary", Status: models.StatusApproved, Priority: models.PriorityHigh, UserID: citizen.ID},
		{Title: "b", Description: "d", IncidentDate: january, IncidentLocation: "x", ComplaintType: "Cybercrime", Status: models.StatusRejected, Priority: models.PriorityLow, UserID: citizen.ID},
		{Title: "c", Description: "d", IncidentDate: march, IncidentLocation: "x", ComplaintType: "Theft/Burglary", Status: models.StatusPending, Priority: models.PriorityHigh, UserID: citizen.ID},
	}
	for i := range complaints {
		if err := db.Create(&complaints[i]).Error; err != nil {
			t.Fatalf("failed to seed complaint: %v", err)
		}
		// Pin created_at so trend buckets are deterministic
		if err := db.Model(&complaints[i]).Update("created_at", complaints[i].IncidentDate).Error; err != nil {
			t.Fatalf("failed to pin created_at: %v", err)
		}
	}

	svc := NewAnalyticsService(db)
	if err := svc.Recompute(db); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	view, err := svc.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if view.TotalComplaints != 3 {
		t.Errorf("expected 3 total complaints, got %d", view.TotalComplaints)
	}
	if view.ComplaintsByStatus["approved"] != 1 || view.ComplaintsByStatus["rejected"] != 1 || view.ComplaintsByStatus["pending"] != 1 {
		t.Errorf("unexpected status counts: %v", view.ComplaintsByStatus)
	}
	if view.ComplaintsByCategory["Theft/Burglary"] != 2 || view.ComplaintsByCategory["Cybercrime"] != 1 {
		t.Errorf("unexpected category counts: %v", view.ComplaintsByCategory)
	}
	if view.ComplaintsByPriority["high"] != 2 || view.ComplaintsByPriority["low"] != 1 {
		t.Errorf("unexpected priority counts: %v", view.ComplaintsByPriority)
	}

	if len(view.MonthlyTrends) != 2 {
		t.Fatalf("expected 2 trend buckets, got %d", len(view.MonthlyTrends))
	}
	if view.MonthlyTrends[0].Month != "2025-01" || view.MonthlyTrends[1].Month != "2025-03" {
		t.Errorf("expected trends sorted ascending, got %v", view.MonthlyTrends)
	}
	jan := view.MonthlyTrends[0]
	if jan.Count != 2 || jan.Approved != 1 || jan.Rejected != 1 {
		t.Errorf("unexpected january bucket: %+v", jan)
	}

	if view.UserStats.TotalUsers != 2 || view.UserStats.ActiveUsers != 1 {
		t.Errorf("unexpected user stats: %+v", view.UserStats)
	}
}

func TestRecomputeUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	if err := svc.Recompute(db); err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	if err := svc.Recompute(db); err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}

	var count int64
	db.Model(&models.Analytics{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one analytics row, got %d", count)
	}
}

func TestRecomputePreservesResponseTimeStats(t *testing.T) {
	db := newTestDB(t)

	seeded := models.Analytics{ResponseTimeStats: `{"average":24.5}`}
	if err := db.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed analytics: %v", err)
	}

	svc := NewAnalyticsService(db)
	if err := svc.Recompute(db); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	view, err := svc.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.ResponseTimeStats["average"] != 24.5 {
		t.Errorf("response time stats must survive recompute, got %v", view.ResponseTimeStats)
	}
}

func TestGetWithoutRowReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	if _, err := svc.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
