package services

import (
	"context"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

// SessionContext is the authenticated identity for one request. Handlers
// build it from the validated token and pass it into services explicitly;
// services never read identity from ambient state.
type SessionContext struct {
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	FacultyID string          `json:"faculty_id,omitempty"`
}

// AuthService verifies credentials and issues session tokens.
type AuthService interface {
	VerifyStudent(ctx context.Context, req *validator.StudentLoginRequest) (*StudentLoginResponse, error)
	VerifyStaff(ctx context.Context, req *validator.StaffLoginRequest) (*StaffLoginResponse, error)
}

// FeedbackService handles submissions and admin review.
type FeedbackService interface {
	Submit(ctx context.Context, session SessionContext, req *validator.SubmitFeedbackRequest) (*FeedbackResponse, error)
	List(ctx context.Context, req *FeedbackListRequest) (*FeedbackListResponse, error)
	GetEligibleCourses(ctx context.Context, session SessionContext, semester, academicYear string) ([]EligibleCourseResponse, error)
}

// AnalyticsService recomputes and serves aggregate feedback views.
type AnalyticsService interface {
	GetSnapshot(ctx context.Context) (*AnalyticsSnapshot, error)
	GetFacultyAnalytics(ctx context.Context, session SessionContext, facultyID string) (*FacultyAnalyticsResponse, error)
	GetOverview(ctx context.Context) (*OverviewResponse, error)
}

// ReportService renders analytics snapshots into downloadable reports.
type ReportService interface {
	Export(ctx context.Context, reportType ReportType, format ReportFormat) (*ReportFile, error)
}

// FacultyService manages faculty records.
type FacultyService interface {
	List(ctx context.Context) ([]models.Faculty, error)
	Get(ctx context.Context, facultyID string) (*models.Faculty, error)
	Create(ctx context.Context, req *validator.FacultyCreateRequest) (*models.Faculty, error)
	Update(ctx context.Context, facultyID string, req *validator.FacultyUpdateRequest) (*models.Faculty, error)
	Delete(ctx context.Context, facultyID string) error
}

// CourseService manages courses and their faculty assignments.
type CourseService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error

	ListAssignments(ctx context.Context, req *AssignmentListRequest) ([]models.CourseAssignment, error)
	CreateAssignment(ctx context.Context, req *validator.CourseAssignmentCreateRequest) (*models.CourseAssignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

// SettingsService manages admin-configurable portal behavior.
type SettingsService interface {
	GetAll(ctx context.Context) (map[string]interface{}, error)
	Update(ctx context.Context, key string, req *validator.SettingUpdateRequest) error
	AnonymousFeedbackEnabled(ctx context.Context) bool
}

// ServiceManager wires all services together and manages their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Feedback() FeedbackService
	Analytics() AnalyticsService
	Report() ReportService
	Faculty() FacultyService
	Course() CourseService
	Settings() SettingsService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
