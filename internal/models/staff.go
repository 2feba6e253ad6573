package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole identifies what a session is allowed to do.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

// IsValid checks if the role is a known role
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// StaffAccount holds credentialed portal accounts (admins and faculty
// members who sign in with email + password). Students never get a row
// here; they verify against their profile instead.
type StaffAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email" validate:"required,email"`
	Name         string    `gorm:"size:255;not null" json:"name" validate:"required"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null;default:'admin'" json:"role"`

	// Set when the account belongs to a faculty member, so the session can
	// be scoped to their own analytics.
	FacultyID *string `gorm:"size:50" json:"faculty_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StaffAccount) TableName() string {
	return "staff_accounts"
}
