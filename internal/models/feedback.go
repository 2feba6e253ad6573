package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Rating bounds for every criterion.
const (
	RatingMin = 1
	RatingMax = 10
)

// Feedback is one immutable submission by a student about a faculty member
// for a subject in a semester. Records are append-only: there is no update
// path, and the unique index enforces one submission per
// (student, faculty, subject, semester, academic year).
type Feedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_submission;index" json:"student_id"`
	FacultyID    string    `gorm:"size:50;not null;uniqueIndex:idx_feedback_submission;index" json:"faculty_id"`
	SubjectName  string    `gorm:"size:255;not null;uniqueIndex:idx_feedback_submission" json:"subject_name"`
	Semester     string    `gorm:"size:20;not null;uniqueIndex:idx_feedback_submission" json:"semester"`
	AcademicYear string    `gorm:"size:20;not null;uniqueIndex:idx_feedback_submission" json:"academic_year"`

	TeachingEffectiveness *int `json:"teaching_effectiveness,omitempty"`
	CourseContent         *int `json:"course_content,omitempty"`
	CommunicationSkills   *int `json:"communication_skills,omitempty"`
	Punctuality           *int `json:"punctuality,omitempty"`
	StudentInteraction    *int `json:"student_interaction,omitempty"`
	OverallRating         *int `json:"overall_rating,omitempty"`

	PositiveFeedback          *string `gorm:"type:text" json:"positive_feedback,omitempty"`
	SuggestionsForImprovement *string `gorm:"type:text" json:"suggestions_for_improvement,omitempty"`
	AdditionalComments        *string `gorm:"type:text" json:"additional_comments,omitempty"`

	IsAnonymous bool      `gorm:"not null;default:true" json:"is_anonymous"`
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// RatingCriteria lists the rating fields in their canonical order. Field
// names match the JSON/API names.
func (f *Feedback) RatingCriteria() []RatingValue {
	return []RatingValue{
		{"teaching_effectiveness", f.TeachingEffectiveness},
		{"course_content", f.CourseContent},
		{"communication_skills", f.CommunicationSkills},
		{"punctuality", f.Punctuality},
		{"student_interaction", f.StudentInteraction},
		{"overall_rating", f.OverallRating},
	}
}

// RatingValue pairs a criterion name with its (possibly absent) value.
type RatingValue struct {
	Name  string
	Value *int
}

// PortalSetting is a single admin-managed configuration entry, stored as
// free-form JSON so new settings don't need schema changes.
type PortalSetting struct {
	Key       string         `gorm:"primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (PortalSetting) TableName() string {
	return "portal_settings"
}

// Well-known setting keys.
const (
	SettingFeedbackPeriod    = "feedback_period"
	SettingAnonymousFeedback = "anonymous_feedback"
)
