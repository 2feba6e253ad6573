package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentProfile is the persisted identity of a student. The ID is minted
// when the profile is imported and is the only student identifier that ever
// reaches feedback records.
type StudentProfile struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CollegeEmail    string         `gorm:"size:255;not null;uniqueIndex" json:"college_email" validate:"required,email"`
	RollNumber      string         `gorm:"size:50;not null;uniqueIndex" json:"roll_number" validate:"required"`
	Name            string         `gorm:"size:255;not null" json:"name" validate:"required"`
	DateOfBirth     datatypes.Date `gorm:"not null" json:"date_of_birth"`
	Section         string         `gorm:"size:10" json:"section"`
	Gender          *string        `gorm:"size:20" json:"gender,omitempty"`
	SSCCgpa         *float64       `gorm:"column:ssc_cgpa" json:"ssc_cgpa,omitempty"`
	InterCgpa       *float64       `gorm:"column:inter_cgpa" json:"inter_cgpa,omitempty"`
	MobilePrimary   *string        `gorm:"size:20" json:"mobile_primary,omitempty"`
	MobileSecondary *string        `gorm:"size:20" json:"mobile_secondary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
