package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type NotificationCategory string

const (
	CategoryComplaint NotificationCategory = "complaint"
	CategorySystem    NotificationCategory = "system"
	CategorySecurity  NotificationCategory = "security"
	CategoryGeneral   NotificationCategory = "general"
)

type Notification struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	UserID    uint                 `json:"user_id" gorm:"not null;index"`
	Title     string               `json:"title" gorm:"size:255;not null"`
	Message   string               `json:"message" gorm:"type:text;not null"`
	Type      NotificationType     `json:"type" gorm:"type:varchar(20);not null"`     // info, success, warning, error
	Category  NotificationCategory `json:"category" gorm:"type:varchar(20);not null"` // complaint, system, security, general
	Read      bool                 `json:"read" gorm:"default:false"`
	ActionURL *string              `json:"action_url" gorm:"size:255"`
	Metadata  string               `json:"metadata,omitempty" gorm:"type:text"` // JSON data
	CreatedAt time.Time            `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt *time.Time           `json:"expires_at" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
