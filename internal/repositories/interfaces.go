package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
)

// ===== STUDENT DOMAIN =====

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)

	// GetByEmail matches the college email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error)

	Count(ctx context.Context) (int64, error)
}

// ===== STAFF DOMAIN =====

type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.StaffAccount, error)

	// GetByEmail matches the account email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error)
}

// ===== FACULTY DOMAIN =====

type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, facultyID string) error
	GetByID(ctx context.Context, facultyID string) (*models.Faculty, error)
	List(ctx context.Context) ([]models.Faculty, error)
	Count(ctx context.Context) (int64, error)
}

// ===== COURSE DOMAIN =====

// AssignmentFilters narrows course assignment listings.
type AssignmentFilters struct {
	FacultyID    *string
	Section      *string
	Semester     *string
	AcademicYear *string
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseID string) error
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)

	CreateAssignment(ctx context.Context, assignment *models.CourseAssignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error

	// ListAssignments preloads course and faculty for each row.
	ListAssignments(ctx context.Context, filters AssignmentFilters) ([]models.CourseAssignment, error)
}

// ===== FEEDBACK DOMAIN =====

// SubmissionKey identifies one logical submission for duplicate detection.
type SubmissionKey struct {
	StudentID    uuid.UUID
	FacultyID    string
	SubjectName  string
	Semester     string
	AcademicYear string
}

// FeedbackFilters narrows feedback listings for admin review.
type FeedbackFilters struct {
	FacultyID    *string
	Semester     *string
	AcademicYear *string
	Anonymous    *bool
	Limit        int
	Offset       int
}

type FeedbackRepository interface {
	// Create appends a record. Records are never updated.
	Create(ctx context.Context, feedback *models.Feedback) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)

	// List returns a page ordered by submitted_at descending plus the
	// total matching count.
	List(ctx context.Context, filters FeedbackFilters) ([]models.Feedback, int64, error)

	// ListAll returns every record, for full snapshot recomputation.
	ListAll(ctx context.Context) ([]models.Feedback, error)

	Exists(ctx context.Context, key SubmissionKey) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByFaculty(ctx context.Context, facultyID string) (int64, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Feedback, error)
}

// ===== SETTINGS DOMAIN =====

type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.PortalSetting, error)
	GetAll(ctx context.Context) ([]models.PortalSetting, error)
	Upsert(ctx context.Context, setting *models.PortalSetting) error
}
