package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RolePolice UserRole = "police"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Phone        string    `json:"phone" gorm:"size:20"`
	Address      string    `json:"address" gorm:"type:text"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'user';check:role IN ('user','police','admin')"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Complaints []Complaint `json:"complaints,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleUser, RolePolice, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPolice checks if the user is a police officer
func (u *User) IsPolice() bool {
	return u.Role == RolePolice
}

// IsOfficial checks if the user may triage complaints
func (u *User) IsOfficial() bool {
	return u.Role == RolePolice || u.Role == RoleAdmin
}

// ParseRole converts a raw string into a UserRole, rejecting unknown values
func ParseRole(raw string) (UserRole, bool) {
	switch UserRole(raw) {
	case RoleUser, RolePolice, RoleAdmin:
		return UserRole(raw), true
	default:
		return "", false
	}
}
