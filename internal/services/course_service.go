package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

// AssignmentListRequest narrows the assignment listing.
type AssignmentListRequest struct {
	FacultyID    *string
	Section      *string
	Semester     *string
	AcademicYear *string
}

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

// NewCourseService creates a new course service.
func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err == nil {
		return nil, fmt.Errorf("%w: course %s", ErrAlreadyExists, req.CourseID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing course: %w", err)
	}

	course := &models.Course{
		CourseID:   req.CourseID,
		CourseName: req.CourseName,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.CourseID)
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: course %s", ErrNotFound, courseID)
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.repo.Course().Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", courseID)
	return nil
}

func (s *courseService) ListAssignments(ctx context.Context, req *AssignmentListRequest) ([]models.CourseAssignment, error) {
	assignments, err := s.repo.Course().ListAssignments(ctx, repositories.AssignmentFilters{
		FacultyID:    req.FacultyID,
		Section:      req.Section,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *courseService) CreateAssignment(ctx context.Context, req *validator.CourseAssignmentCreateRequest) (*models.CourseAssignment, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	// Both ends of the mapping must exist before wiring them together.
	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %s", ErrNotFound, req.CourseID)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if _, err := s.repo.Faculty().GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: faculty %s", ErrNotFound, req.FacultyID)
		}
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}

	assignment := &models.CourseAssignment{
		ID:           uuid.New(),
		CourseID:     req.CourseID,
		FacultyID:    req.FacultyID,
		Section:      req.Section,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	}
	if err := s.repo.Course().CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Course assignment created",
		"course_id", assignment.CourseID,
		"faculty_id", assignment.FacultyID,
		"section", assignment.Section)

	return assignment, nil
}

func (s *courseService) DeleteAssignment(ctx context.Context, id string) error {
	assignmentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: malformed assignment id", ErrInvalidRequest)
	}

	if err := s.repo.Course().DeleteAssignment(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: assignment %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Course assignment deleted", "assignment_id", id)
	return nil
}
