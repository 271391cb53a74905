package models

import "time"

// AuditLog is an append-only record of a privileged or mutating action.
// Rows are never updated or deleted.
type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	UserName   string    `json:"user_name" gorm:"size:255;not null"` // name snapshot at action time
	Action     string    `json:"action" gorm:"size:100;not null"`
	Resource   string    `json:"resource" gorm:"size:100;not null"`
	ResourceID *string   `json:"resource_id" gorm:"size:100"`
	Details    string    `json:"details" gorm:"type:text"` // JSON data
	IPAddress  *string   `json:"ip_address" gorm:"size:45"`
	UserAgent  *string   `json:"user_agent" gorm:"size:500"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action verbs
const (
	ActionLogin           = "LOGIN"
	ActionRegister        = "REGISTER"
	ActionCreateComplaint = "CREATE_COMPLAINT"
	ActionUpdateStatus    = "UPDATE_COMPLAINT_STATUS"
	ActionCreateUser      = "CREATE_USER"
)
