package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"crime-report-server/models"
)

// Publisher pushes a stored notification to a connected client. The
// websocket hub implements it; delivery is best-effort and never affects
// the transaction that created the notification.
type Publisher interface {
	PublishToUser(userID uint, notification *models.Notification)
}

// NotificationService appends notifications and audit log entries on behalf
// of the complaint lifecycle, and owns the read-flag transition.
type NotificationService struct {
	db        *gorm.DB
	publisher Publisher
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// SetPublisher attaches a live delivery channel for stored notifications
func (s *NotificationService) SetPublisher(p Publisher) {
	s.publisher = p
}

// Create inserts one notification row for a user within the given
// transaction, then publishes it to the live stream if one is attached.
func (s *NotificationService) Create(tx *gorm.DB, userID uint, title, message string, ntype models.NotificationType, category models.NotificationCategory, actionURL *string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      ntype,
		Category:  category,
		Read:      false,
		ActionURL: actionURL,
	}

	if err := tx.Create(notification).Error; err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishToUser(userID, notification)
	}

	return notification, nil
}

// AuditEntry carries optional request metadata for an audit log row
type AuditEntry struct {
	ActorID    uint
	ActorName  string
	Action     string
	Resource   string
	ResourceID *string
	Details    map[string]interface{}
	IPAddress  *string
	UserAgent  *string
}

// Audit appends one immutable audit log row within the given transaction
func (s *NotificationService) Audit(tx *gorm.DB, entry AuditEntry) error {
	details := "{}"
	if entry.Details != nil {
		if encoded, err := json.Marshal(entry.Details); err == nil {
			details = string(encoded)
		}
	}

	record := &models.AuditLog{
		UserID:     entry.ActorID,
		UserName:   entry.ActorName,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Details:    details,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Timestamp:  time.Now(),
	}

	return tx.Create(record).Error
}

// ListForUser returns the newest notifications for a user, capped at 50
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips a notification's read flag to true. An ownership mismatch
// yields the same ErrNotFound as an unknown id so callers cannot probe for
// other users' notifications.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	var notification models.Notification
	err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	notification.Read = true
	return s.db.Save(&notification).Error
}

// MarkAllRead marks every unread notification for a user as read
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// ListAuditLogs returns the newest audit log entries, capped at limit
func (s *NotificationService) ListAuditLogs(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.AuditLog
	err := s.db.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		log.Printf("❌ Error fetching audit logs: %v", err)
	}
	return logs, err
}
