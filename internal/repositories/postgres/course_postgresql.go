package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Course{}, "course_id = ?", courseID).Error
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		First(&course, "course_id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Order("course_id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *CoursePostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Count(&count).Error
	return count, err
}

func (r *CoursePostgreSQL) CreateAssignment(ctx context.Context, assignment *models.CourseAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *CoursePostgreSQL) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.CourseAssignment{}, "id = ?", id).Error
}

func (r *CoursePostgreSQL) ListAssignments(ctx context.Context, filters repositories.AssignmentFilters) ([]models.CourseAssignment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CourseAssignment{}).
		Preload("Course").
		Preload("Faculty")

	if filters.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filters.FacultyID)
	}
	if filters.Section != nil {
		query = query.Where("section = ?", *filters.Section)
	}
	if filters.Semester != nil {
		query = query.Where("semester = ?", *filters.Semester)
	}
	if filters.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filters.AcademicYear)
	}

	var assignments []models.CourseAssignment
	err := query.Order("course_id ASC").Find(&assignments).Error
	return assignments, err
}
