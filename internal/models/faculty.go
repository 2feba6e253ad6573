package models

import "time"

// Faculty is a teaching staff member that students rate. FacultyID is the
// college-issued identifier and doubles as the primary key.
type Faculty struct {
	FacultyID     string  `gorm:"primaryKey;size:50" json:"faculty_id" validate:"required"`
	Name          string  `gorm:"size:255;not null" json:"name" validate:"required"`
	Designation   string  `gorm:"size:100;not null" json:"designation" validate:"required"`
	Qualification *string `gorm:"size:255" json:"qualification,omitempty"`
	Experience    *string `gorm:"size:100" json:"experience,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Faculty) TableName() string {
	return "faculty"
}
