package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"crime-report-server/models"
)

type fakeUploader struct {
	uploaded []string
	fail     bool
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, filename string, userID uint) (string, error) {
	if f.fail {
		return "", errors.New("storage unavailable")
	}
	path := fmt.Sprintf("https://images.test/%d/%s", userID, filename)
	f.uploaded = append(f.uploaded, path)
	return path, nil
}

func TestSubmitRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	cases := []struct {
		name   string
		mutate func(*ComplaintInput)
	}{
		{"missing title", func(in *ComplaintInput) { in.Title = "" }},
		{"missing description", func(in *ComplaintInput) { in.Description = "" }},
		{"missing incident date", func(in *ComplaintInput) { in.IncidentDate = "" }},
		{"missing location", func(in *ComplaintInput) { in.IncidentLocation = "" }},
		{"missing type", func(in *ComplaintInput) { in.ComplaintType = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Submit(context.Background(), user, input, nil, RequestMeta{})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&models.Complaint{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no complaints persisted, got %d", count)
	}
}

func TestSubmitDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	input := validInput()
	input.Priority = "catastrophic" // not a known level
	complaint, err := svc.Submit(context.Background(), user, input, nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if complaint.Status != models.StatusPending {
		t.Errorf("expected status pending, got %s", complaint.Status)
	}
	if complaint.Priority != models.PriorityMedium {
		t.Errorf("expected unknown priority to normalize to medium, got %s", complaint.Priority)
	}
	if got := complaint.ImageList(); len(got) != 0 {
		t.Errorf("expected empty image list, got %v", got)
	}
	if complaint.UserID != user.ID {
		t.Errorf("expected owner %d, got %d", user.ID, complaint.UserID)
	}
}

func TestSubmitMalformedIncidentDateFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	input := validInput()
	input.IncidentDate = "not-a-date"

	before := time.Now()
	complaint, err := svc.Submit(context.Background(), user, input, nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if complaint.IncidentDate.Before(before.Add(-time.Minute)) || complaint.IncidentDate.After(time.Now().Add(time.Minute)) {
		t.Errorf("expected incident date near now, got %v", complaint.IncidentDate)
	}
	if complaint.Status != models.StatusPending {
		t.Errorf("malformed date must not block submission, got status %s", complaint.Status)
	}
}

func TestSubmitUploadsImagesInOrder(t *testing.T) {
	db := newTestDB(t)
	uploader := &fakeUploader{}
	svc := newTestComplaintService(db, uploader)
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	files := []UploadFile{
		{Filename: "front.jpg", Reader: strings.NewReader("a")},
		{Filename: "", Reader: strings.NewReader("skipped")},
		{Filename: "back.jpg", Reader: strings.NewReader("b")},
	}

	complaint, err := svc.Submit(context.Background(), user, validInput(), files, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	images := complaint.ImageList()
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if !strings.HasSuffix(images[0], "front.jpg") || !strings.HasSuffix(images[1], "back.jpg") {
		t.Errorf("expected upload order preserved, got %v", images)
	}
}

func TestSubmitUploadFailureAbortsEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, &fakeUploader{fail: true})
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	files := []UploadFile{{Filename: "evidence.jpg", Reader: strings.NewReader("x")}}
	if _, err := svc.Submit(context.Background(), user, validInput(), files, RequestMeta{}); err == nil {
		t.Fatal("expected error when upload fails")
	}

	var complaints, notifications int64
	db.Model(&models.Complaint{}).Count(&complaints)
	db.Model(&models.Notification{}).Count(&notifications)
	if complaints != 0 || notifications != 0 {
		t.Errorf("expected nothing persisted, got %d complaints, %d notifications", complaints, notifications)
	}
}

func TestSubmitEmitsNotificationAuditAndAnalytics(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	user := createTestUser(t, db, "citizen@example.com", models.RoleUser)

	complaint, err := svc.Submit(context.Background(), user, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var notification models.Notification
	if err := db.Where("user_id = ?", user.ID).First(&notification).Error; err != nil {
		t.Fatalf("expected notification for owner: %v", err)
	}
	if notification.Title != "Complaint Submitted" {
		t.Errorf("unexpected notification title %q", notification.Title)
	}
	if notification.Read {
		t.Error("new notification must be unread")
	}

	var auditLog models.AuditLog
	if err := db.Where("action = ?", models.ActionCreateComplaint).First(&auditLog).Error; err != nil {
		t.Fatalf("expected audit log entry: %v", err)
	}
	if auditLog.ResourceID == nil || *auditLog.ResourceID != fmt.Sprintf("%d", complaint.ID) {
		t.Errorf("audit log should reference complaint %d", complaint.ID)
	}

	analytics := NewAnalyticsService(db)
	view, err := analytics.Get()
	if err != nil {
		t.Fatalf("expected analytics row after submit: %v", err)
	}
	if view.TotalComplaints != 1 {
		t.Errorf("expected 1 total complaint, got %d", view.TotalComplaints)
	}
	if view.ComplaintsByStatus["pending"] != 1 {
		t.Errorf("expected 1 pending complaint, got %v", view.ComplaintsByStatus)
	}
}

func TestReviewMovesPendingToUnderReview(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	officer := createTestUser(t, db, "officer@example.com", models.RolePolice)

	complaint, err := svc.Submit(context.Background(), citizen, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), officer, complaint.ID, "checking camera footage", RequestMeta{})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if reviewed.Status != models.StatusUnderReview {
		t.Errorf("expected under_review, got %s", reviewed.Status)
	}
	if reviewed.AssignedOfficer == nil || *reviewed.AssignedOfficer != officer.FullName {
		t.Errorf("expected assigned officer %q, got %v", officer.FullName, reviewed.AssignedOfficer)
	}
	if reviewed.ReviewNotes == nil || *reviewed.ReviewNotes != "checking camera footage" {
		t.Errorf("expected review notes recorded, got %v", reviewed.ReviewNotes)
	}

	// Re-reviewing a non-pending complaint is rejected
	if _, err := svc.Review(context.Background(), officer, complaint.ID, "", RequestMeta{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveFinalizesComplaint(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	officer := createTestUser(t, db, "officer@example.com", models.RolePolice)

	complaint, err := svc.Submit(context.Background(), citizen, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Missing crime type is rejected before any state change
	if _, err := svc.Approve(context.Background(), officer, complaint.ID, " ", RequestMeta{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty crime type, got %v", err)
	}

	approved, err := svc.Approve(context.Background(), officer, complaint.ID, "Petty Theft", RequestMeta{})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}
	if approved.CrimeType == nil || *approved.CrimeType != "Petty Theft" {
		t.Errorf("expected crime type recorded, got %v", approved.CrimeType)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != officer.ID {
		t.Errorf("expected approver %d, got %v", officer.ID, approved.ApprovedBy)
	}

	// Terminal states admit no further transitions
	if _, err := svc.Reject(context.Background(), officer, complaint.ID, RequestMeta{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition after approval, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), officer, complaint.ID, "Grand Theft", RequestMeta{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on double approval, got %v", err)
	}
}

func TestRejectRecordsNoCrimeType(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	complaint, err := svc.Submit(context.Background(), citizen, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	rejected, err := svc.Reject(context.Background(), admin, complaint.ID, RequestMeta{})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Errorf("expected rejected, got %s", rejected.Status)
	}
	if rejected.CrimeType != nil {
		t.Errorf("rejection must not record a crime type, got %v", rejected.CrimeType)
	}
}

func TestTransitionAccessControl(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	officer := createTestUser(t, db, "officer@example.com", models.RolePolice)

	complaint, err := svc.Submit(context.Background(), citizen, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Approve(context.Background(), citizen, complaint.ID, "Petty Theft", RequestMeta{}); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for citizen, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), officer, 9999, "Petty Theft", RequestMeta{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown complaint, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	owner := createTestUser(t, db, "owner@example.com", models.RoleUser)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleUser)
	officer := createTestUser(t, db, "officer@example.com", models.RolePolice)

	complaint, err := svc.Submit(context.Background(), owner, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Get(complaint.ID, owner); err != nil {
		t.Errorf("owner should read own complaint: %v", err)
	}
	if _, err := svc.Get(complaint.ID, officer); err != nil {
		t.Errorf("officer should read any complaint: %v", err)
	}
	if _, err := svc.Get(complaint.ID, stranger); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for stranger, got %v", err)
	}
	if _, err := svc.Get(9999, owner); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestComplaintService(db, nil)
	citizen := createTestUser(t, db, "citizen@example.com", models.RoleUser)
	other := createTestUser(t, db, "other@example.com", models.RoleUser)
	officer := createTestUser(t, db, "officer@example.com", models.RolePolice)

	first, err := svc.Submit(context.Background(), citizen, validInput(), nil, RequestMeta{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), other, validInput(), nil, RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), officer, first.ID, "Petty Theft", RequestMeta{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	all, err := svc.List("")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 complaints, got %d (err %v)", len(all), err)
	}
	pending, err := svc.List("pending")
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected 1 pending complaint, got %d (err %v)", len(pending), err)
	}

	mine, err := svc.ListByOwner(citizen.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 owned complaint, got %d (err %v)", len(mine), err)
	}
	if mine[0].ID != first.ID {
		t.Errorf("expected complaint %d, got %d", first.ID, mine[0].ID)
	}
}
