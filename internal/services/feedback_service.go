package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/events"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

// ===== RESPONSE DTOs =====

// FeedbackResponse is one stored submission. StudentID is only present
// when the submission was not anonymous.
type FeedbackResponse struct {
	ID           string `json:"id"`
	StudentID    string `json:"student_id,omitempty"`
	FacultyID    string `json:"faculty_id"`
	SubjectName  string `json:"subject_name"`
	Semester     string `json:"semester"`
	AcademicYear string `json:"academic_year"`

	TeachingEffectiveness *int `json:"teaching_effectiveness,omitempty"`
	CourseContent         *int `json:"course_content,omitempty"`
	CommunicationSkills   *int `json:"communication_skills,omitempty"`
	Punctuality           *int `json:"punctuality,omitempty"`
	StudentInteraction    *int `json:"student_interaction,omitempty"`
	OverallRating         *int `json:"overall_rating,omitempty"`

	PositiveFeedback          *string `json:"positive_feedback,omitempty"`
	SuggestionsForImprovement *string `json:"suggestions_for_improvement,omitempty"`
	AdditionalComments        *string `json:"additional_comments,omitempty"`

	IsAnonymous bool      `json:"is_anonymous"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackListRequest is the admin review query.
type FeedbackListRequest struct {
	FacultyID    *string
	Semester     *string
	AcademicYear *string
	Anonymous    *bool
	Page         int
	PageSize     int
}

type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// EligibleCourseResponse is one course a student can rate this term.
type EligibleCourseResponse struct {
	AssignmentID      string `json:"assignment_id"`
	CourseID          string `json:"course_id"`
	CourseName        string `json:"course_name"`
	FacultyID         string `json:"faculty_id"`
	FacultyName       string `json:"faculty_name"`
	Section           string `json:"section"`
	Semester          string `json:"semester"`
	AcademicYear      string `json:"academic_year"`
	FeedbackSubmitted bool   `json:"feedback_submitted"`
}

// ===== SERVICE IMPLEMENTATION =====

type feedbackService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
	publisher    events.EventPublisher
	settings     SettingsService
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	settings SettingsService,
) FeedbackService {
	return &feedbackService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		cacheManager: cacheManager,
		publisher:    publisher,
		settings:     settings,
	}
}

// Submit validates, normalizes and stores one feedback record. The record
// is append-only: there is no update or delete path for submissions.
func (s *feedbackService) Submit(ctx context.Context, session SessionContext, req *validator.SubmitFeedbackRequest) (*FeedbackResponse, error) {
	if session.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: only students can submit feedback", ErrForbidden)
	}

	studentID, err := uuid.Parse(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed student identifier", ErrInvalidRequest)
	}

	if verrs := s.validator.ValidateFeedbackSubmission(session.UserID, req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}
	validator.NormalizeFeedbackSubmission(req)

	isAnonymous := true
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}
	// When anonymity is disabled portal-wide, submissions are identified
	// regardless of what the student asked for.
	if !s.settings.AnonymousFeedbackEnabled(ctx) {
		isAnonymous = false
	}

	feedback := &models.Feedback{
		ID:           uuid.New(),
		StudentID:    studentID,
		FacultyID:    req.FacultyID,
		SubjectName:  req.SubjectName,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,

		TeachingEffectiveness: req.TeachingEffectiveness,
		CourseContent:         req.CourseContent,
		CommunicationSkills:   req.CommunicationSkills,
		Punctuality:           req.Punctuality,
		StudentInteraction:    req.StudentInteraction,
		OverallRating:         req.OverallRating,

		PositiveFeedback:          req.PositiveFeedback,
		SuggestionsForImprovement: req.SuggestionsForImprovement,
		AdditionalComments:        req.AdditionalComments,

		IsAnonymous: isAnonymous,
		SubmittedAt: time.Now().UTC(),
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		exists, err := txRepo.Feedback().Exists(ctx, repositories.SubmissionKey{
			StudentID:    studentID,
			FacultyID:    feedback.FacultyID,
			SubjectName:  feedback.SubjectName,
			Semester:     feedback.Semester,
			AcademicYear: feedback.AcademicYear,
		})
		if err != nil {
			return fmt.Errorf("failed to check for existing submission: %w", err)
		}
		if exists {
			return ErrDuplicateSubmission
		}

		if err := txRepo.Feedback().Create(ctx, feedback); err != nil {
			return fmt.Errorf("failed to store feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Event and cache failures never fail a stored submission.
	if err := s.publisher.PublishFeedbackSubmitted(ctx, events.FeedbackSubmittedEvent{
		FeedbackID:   feedback.ID.String(),
		FacultyID:    feedback.FacultyID,
		SubjectName:  feedback.SubjectName,
		Semester:     feedback.Semester,
		AcademicYear: feedback.AcademicYear,
		SubmittedAt:  feedback.SubmittedAt,
	}); err != nil {
		s.logger.Error("Failed to publish feedback event", "error", err, "feedback_id", feedback.ID)
	}
	cache.SafeInvalidateAnalytics(ctx, s.cacheManager)

	s.logger.Info("Feedback submitted",
		"feedback_id", feedback.ID,
		"faculty_id", feedback.FacultyID,
		"anonymous", feedback.IsAnonymous)

	return toFeedbackResponse(feedback), nil
}

// List serves the admin review screen with filters and pagination.
func (s *feedbackService) List(ctx context.Context, req *FeedbackListRequest) (*FeedbackListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := s.repo.Feedback().List(ctx, repositories.FeedbackFilters{
		FacultyID:    req.FacultyID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Anonymous:    req.Anonymous,
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	responses := make([]FeedbackResponse, len(records))
	for i := range records {
		responses[i] = *toFeedbackResponse(&records[i])
	}

	return &FeedbackListResponse{
		Feedback: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetEligibleCourses lists the course assignments for the student's
// section and term, flagging the ones already rated.
func (s *feedbackService) GetEligibleCourses(ctx context.Context, session SessionContext, semester, academicYear string) ([]EligibleCourseResponse, error) {
	if session.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: only students have eligible courses", ErrForbidden)
	}

	studentID, err := uuid.Parse(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed student identifier", ErrInvalidRequest)
	}

	profile, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student profile: %w", err)
	}

	assignments, err := s.repo.Course().ListAssignments(ctx, repositories.AssignmentFilters{
		Section:      &profile.Section,
		Semester:     &semester,
		AcademicYear: &academicYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list course assignments: %w", err)
	}

	responses := make([]EligibleCourseResponse, 0, len(assignments))
	for _, a := range assignments {
		submitted, err := s.repo.Feedback().Exists(ctx, repositories.SubmissionKey{
			StudentID:    studentID,
			FacultyID:    a.FacultyID,
			SubjectName:  a.Course.CourseName,
			Semester:     a.Semester,
			AcademicYear: a.AcademicYear,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to check submission state: %w", err)
		}

		responses = append(responses, EligibleCourseResponse{
			AssignmentID:      a.ID.String(),
			CourseID:          a.CourseID,
			CourseName:        a.Course.CourseName,
			FacultyID:         a.FacultyID,
			FacultyName:       a.Faculty.Name,
			Section:           a.Section,
			Semester:          a.Semester,
			AcademicYear:      a.AcademicYear,
			FeedbackSubmitted: submitted,
		})
	}

	return responses, nil
}

// toFeedbackResponse hides the student identity on anonymous records.
func toFeedbackResponse(f *models.Feedback) *FeedbackResponse {
	resp := &FeedbackResponse{
		ID:           f.ID.String(),
		FacultyID:    f.FacultyID,
		SubjectName:  f.SubjectName,
		Semester:     f.Semester,
		AcademicYear: f.AcademicYear,

		TeachingEffectiveness: f.TeachingEffectiveness,
		CourseContent:         f.CourseContent,
		CommunicationSkills:   f.CommunicationSkills,
		Punctuality:           f.Punctuality,
		StudentInteraction:    f.StudentInteraction,
		OverallRating:         f.OverallRating,

		PositiveFeedback:          f.PositiveFeedback,
		SuggestionsForImprovement: f.SuggestionsForImprovement,
		AdditionalComments:        f.AdditionalComments,

		IsAnonymous: f.IsAnonymous,
		SubmittedAt: f.SubmittedAt,
	}
	if !f.IsAnonymous {
		resp.StudentID = f.StudentID.String()
	}
	return resp
}
