package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"crime-report-server/models"
)

// ComplaintService owns the complaint lifecycle. It is the only component
// that mutates complaint state, and every mutation runs in one transaction
// together with its notification, audit log entry and analytics
// recomputation: either all of them commit or none do.
type ComplaintService struct {
	db            *gorm.DB
	uploader      Uploader
	notifications *NotificationService
	analytics     *AnalyticsService
}

// NewComplaintService creates a new complaint service. uploader may be nil
// when image uploads are not configured; submissions without images still
// work.
func NewComplaintService(db *gorm.DB, uploader Uploader, notifications *NotificationService, analytics *AnalyticsService) *ComplaintService {
	return &ComplaintService{
		db:            db,
		uploader:      uploader,
		notifications: notifications,
		analytics:     analytics,
	}
}

// ComplaintInput is the submission payload after transport decoding
type ComplaintInput struct {
	Title            string
	Description      string
	IncidentDate     string
	IncidentLocation string
	ComplaintType    string
	Priority         string
	Witnesses        string
}

// UploadFile is one uploaded evidence image. Entries without a filename are
// skipped rather than rejected.
type UploadFile struct {
	Filename string
	Reader   io.Reader
}

// RequestMeta carries optional network metadata into the audit trail
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

// Accepted layouts for client-supplied incident dates
var incidentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseIncidentDate parses an ISO-8601-like date string. On failure it falls
// back to the current server time so a malformed date never blocks a
// submission; the fallback is logged, not surfaced.
func parseIncidentDate(raw string) time.Time {
	normalized := strings.TrimSpace(raw)
	for _, layout := range incidentDateLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed
		}
	}
	log.Printf("⚠️ Could not parse incident date %q, using current time", raw)
	return time.Now()
}

// Submit files a new complaint with status pending. Images are persisted to
// the blob store first; their paths are recorded as an ordered list on the
// complaint. A submission with zero images is valid.
func (s *ComplaintService) Submit(ctx context.Context, user models.User, input ComplaintInput, files []UploadFile, meta RequestMeta) (*models.Complaint, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	imagePaths := []string{}
	for _, file := range files {
		if file.Filename == "" {
			continue
		}
		if s.uploader == nil {
			return nil, fmt.Errorf("%w: image uploads are not configured", ErrValidation)
		}
		path, err := s.uploader.Upload(ctx, file.Reader, file.Filename, user.ID)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imagePaths = append(imagePaths, path)
	}

	complaint := &models.Complaint{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		IncidentDate:     parseIncidentDate(input.IncidentDate),
		IncidentLocation: input.IncidentLocation,
		ComplaintType:    input.ComplaintType,
		Status:           models.StatusPending,
		Priority:         models.NormalizePriority(input.Priority),
		UserID:           user.ID,
	}
	if witnesses := strings.TrimSpace(input.Witnesses); witnesses != "" {
		complaint.Witnesses = &witnesses
	}
	if err := complaint.SetImageList(imagePaths); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}

		actionURL := "/track-complaints"
		if _, err := s.notifications.Create(tx, user.ID,
			"Complaint Submitted",
			fmt.Sprintf("Your complaint '%s' has been submitted successfully.", complaint.Title),
			models.NotificationSuccess, models.CategoryComplaint, &actionURL); err != nil {
			return err
		}

		resourceID := strconv.FormatUint(uint64(complaint.ID), 10)
		if err := s.notifications.Audit(tx, AuditEntry{
			ActorID:    user.ID,
			ActorName:  user.FullName,
			Action:     models.ActionCreateComplaint,
			Resource:   "complaint",
			ResourceID: &resourceID,
			Details: map[string]interface{}{
				"category": complaint.ComplaintType,
				"priority": complaint.Priority,
			},
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		}); err != nil {
			return err
		}

		return s.analytics.Recompute(tx)
	})
	if err != nil {
		return nil, err
	}

	return complaint, nil
}

func validateSubmission(input ComplaintInput) error {
	required := map[string]string{
		"title":             input.Title,
		"description":       input.Description,
		"incident_date":     input.IncidentDate,
		"incident_location": input.IncidentLocation,
		"complaint_type":    input.ComplaintType,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}
	return nil
}

// Review moves a pending complaint to under_review and records who is
// handling it. Only police and admin accounts reach this.
func (s *ComplaintService) Review(ctx context.Context, officer models.User, complaintID uint, notes string, meta RequestMeta) (*models.Complaint, error) {
	return s.transition(ctx, officer, complaintID, meta, func(complaint *models.Complaint) error {
		if complaint.Status != models.StatusPending {
			return fmt.Errorf("%w: cannot review a %s complaint", ErrInvalidTransition, complaint.Status)
		}
		complaint.Status = models.StatusUnderReview
		complaint.AssignedOfficer = &officer.FullName
		if trimmed := strings.TrimSpace(notes); trimmed != "" {
			complaint.ReviewNotes = &trimmed
		}
		return nil
	}, "Complaint Under Review", "is now under review by our team.", models.NotificationInfo)
}

// Approve moves a pending or under_review complaint to approved and
// finalizes its crime type.
func (s *ComplaintService) Approve(ctx context.Context, officer models.User, complaintID uint, crimeType string, meta RequestMeta) (*models.Complaint, error) {
	crimeType = strings.TrimSpace(crimeType)
	if crimeType == "" {
		return nil, fmt.Errorf("%w: crime_type is required", ErrValidation)
	}

	return s.transition(ctx, officer, complaintID, meta, func(complaint *models.Complaint) error {
		if complaint.Status.IsTerminal() {
			return fmt.Errorf("%w: complaint is already %s", ErrInvalidTransition, complaint.Status)
		}
		complaint.Status = models.StatusApproved
		complaint.CrimeType = &crimeType
		complaint.ApprovedBy = &officer.ID
		return nil
	}, "Complaint Approved", "has been approved.", models.NotificationSuccess)
}

// Reject moves a pending or under_review complaint to rejected. No crime
// type is recorded.
func (s *ComplaintService) Reject(ctx context.Context, officer models.User, complaintID uint, meta RequestMeta) (*models.Complaint, error) {
	return s.transition(ctx, officer, complaintID, meta, func(complaint *models.Complaint) error {
		if complaint.Status.IsTerminal() {
			return fmt.Errorf("%w: complaint is already %s", ErrInvalidTransition, complaint.Status)
		}
		complaint.Status = models.StatusRejected
		complaint.ApprovedBy = &officer.ID
		return nil
	}, "Complaint Rejected", "has been rejected.", models.NotificationWarning)
}

// transition applies one status mutation plus its side effect trio inside a
// single transaction
func (s *ComplaintService) transition(ctx context.Context, officer models.User, complaintID uint, meta RequestMeta, mutate func(*models.Complaint) error, notifyTitle, notifySuffix string, ntype models.NotificationType) (*models.Complaint, error) {
	if !officer.IsOfficial() {
		return nil, ErrAccessDenied
	}

	var complaint models.Complaint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&complaint, complaintID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if err := mutate(&complaint); err != nil {
			return err
		}
		complaint.UpdatedAt = time.Now()

		if err := tx.Save(&complaint).Error; err != nil {
			return err
		}

		actionURL := "/track-complaints"
		if _, err := s.notifications.Create(tx, complaint.UserID,
			notifyTitle,
			fmt.Sprintf("Your complaint '%s' %s", complaint.Title, notifySuffix),
			ntype, models.CategoryComplaint, &actionURL); err != nil {
			return err
		}

		resourceID := strconv.FormatUint(uint64(complaint.ID), 10)
		details := map[string]interface{}{"status": complaint.Status}
		if complaint.CrimeType != nil {
			details["crime_type"] = *complaint.CrimeType
		}
		if err := s.notifications.Audit(tx, AuditEntry{
			ActorID:    officer.ID,
			ActorName:  officer.FullName,
			Action:     models.ActionUpdateStatus,
			Resource:   "complaint",
			ResourceID: &resourceID,
			Details:    details,
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
		}); err != nil {
			return err
		}

		return s.analytics.Recompute(tx)
	})
	if err != nil {
		return nil, err
	}

	return &complaint, nil
}

// List returns all complaints, optionally filtered by status. Role gating
// happens at the route boundary.
func (s *ComplaintService) List(status string) ([]models.Complaint, error) {
	query := s.db.Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var complaints []models.Complaint
	err := query.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

// ListByOwner returns the complaints submitted by one user
func (s *ComplaintService) ListByOwner(userID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

// Get returns one complaint. The owner and police/admin accounts may read
// it; anyone else is denied.
func (s *ComplaintService) Get(complaintID uint, caller models.User) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.db.Preload("User").First(&complaint, complaintID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if complaint.UserID != caller.ID && !caller.IsOfficial() {
		return nil, ErrAccessDenied
	}

	return &complaint, nil
}
