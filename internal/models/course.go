package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a subject offered by the college.
type Course struct {
	CourseID   string `gorm:"primaryKey;size:50" json:"course_id" validate:"required"`
	CourseName string `gorm:"size:255;not null" json:"course_name" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseAssignment maps a faculty member to a course for one section in a
// given semester and academic year. Students see only assignments matching
// their own section.
type CourseAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID     string    `gorm:"size:50;not null;uniqueIndex:idx_course_assignment;index" json:"course_id" validate:"required"`
	FacultyID    string    `gorm:"size:50;not null;uniqueIndex:idx_course_assignment;index" json:"faculty_id" validate:"required"`
	Section      string    `gorm:"size:10;not null;uniqueIndex:idx_course_assignment" json:"section" validate:"required"`
	Semester     string    `gorm:"size:20;not null;uniqueIndex:idx_course_assignment" json:"semester" validate:"required"`
	AcademicYear string    `gorm:"size:20;not null;uniqueIndex:idx_course_assignment" json:"academic_year" validate:"required"`

	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourseAssignment) TableName() string {
	return "course_assignments"
}
