package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	StatusPending     ComplaintStatus = "pending"
	StatusUnderReview ComplaintStatus = "under_review"
	StatusApproved    ComplaintStatus = "approved"
	StatusRejected    ComplaintStatus = "rejected"
)

// IsTerminal reports whether no further status transition is allowed
func (s ComplaintStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

// NormalizePriority maps unknown or empty priority values to medium
func NormalizePriority(raw string) ComplaintPriority {
	switch ComplaintPriority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return ComplaintPriority(raw)
	default:
		return PriorityMedium
	}
}

type Complaint struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	Title            string            `json:"title" gorm:"size:255;not null"`
	Description      string            `json:"description" gorm:"type:text;not null"`
	IncidentDate     time.Time         `json:"incident_date" gorm:"not null"`
	IncidentLocation string            `json:"incident_location" gorm:"size:255;not null"`
	ComplaintType    string            `json:"complaint_type" gorm:"size:100;not null"`
	Status           ComplaintStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','under_review','approved','rejected')"`
	Priority         ComplaintPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	CrimeType        *string           `json:"crime_type" gorm:"size:100"`
	Images           string            `json:"-" gorm:"type:text"` // JSON array of image paths
	Witnesses        *string           `json:"witnesses" gorm:"type:text"`
	AssignedOfficer  *string           `json:"assigned_officer" gorm:"size:255"`
	ReviewNotes      *string           `json:"review_notes" gorm:"type:text"`
	UserID           uint              `json:"user_id" gorm:"not null;index"`
	ApprovedBy       *uint             `json:"approved_by"`
	CreatedAt        time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User     User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Approver *User `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}

// BeforeCreate is a GORM hook that runs before creating a complaint
func (cp *Complaint) BeforeCreate(tx *gorm.DB) error {
	if cp.Status == "" {
		cp.Status = StatusPending
	}
	if cp.Priority == "" {
		cp.Priority = PriorityMedium
	}
	if cp.Images == "" {
		cp.Images = "[]"
	}
	return nil
}

// SetImageList encodes an ordered list of image paths into the Images column.
// A nil list is stored as an empty JSON array, never as null.
func (cp *Complaint) SetImageList(paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	encoded, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	cp.Images = string(encoded)
	return nil
}

// ImageList decodes the stored Images column into an ordered list of paths
func (cp *Complaint) ImageList() []string {
	if cp.Images == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(cp.Images), &paths); err != nil {
		return []string{}
	}
	if paths == nil {
		paths = []string{}
	}
	return paths
}

// MarshalJSON renders the complaint with the decoded image list
func (cp Complaint) MarshalJSON() ([]byte, error) {
	type alias Complaint
	return json.Marshal(struct {
		alias
		ImagePaths []string `json:"images"`
	}{
		alias:      alias(cp),
		ImagePaths: cp.ImageList(),
	})
}
