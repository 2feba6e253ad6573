package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

type FeedbackPostgreSQL struct {
	db *gorm.DB
}

func NewFeedbackPostgreSQL(db *gorm.DB) repositories.FeedbackRepository {
	return &FeedbackPostgreSQL{db: db}
}

func (r *FeedbackPostgreSQL) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackPostgreSQL) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.WithContext(ctx).
		First(&feedback, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackPostgreSQL) List(ctx context.Context, filters repositories.FeedbackFilters) ([]models.Feedback, int64, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Feedback{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("submitted_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var records []models.Feedback
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *FeedbackPostgreSQL) ListAll(ctx context.Context) ([]models.Feedback, error) {
	var records []models.Feedback
	err := r.db.WithContext(ctx).
		Order("submitted_at ASC").
		Find(&records).Error
	return records, err
}

func (r *FeedbackPostgreSQL) Exists(ctx context.Context, key repositories.SubmissionKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("student_id = ? AND faculty_id = ? AND subject_name = ? AND semester = ? AND academic_year = ?",
			key.StudentID, key.FacultyID, key.SubjectName, key.Semester, key.AcademicYear).
		Count(&count).Error
	return count > 0, err
}

func (r *FeedbackPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Count(&count).Error
	return count, err
}

func (r *FeedbackPostgreSQL) CountByFaculty(ctx context.Context, facultyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("faculty_id = ?", facultyID).
		Count(&count).Error
	return count, err
}

func (r *FeedbackPostgreSQL) ListByFaculty(ctx context.Context, facultyID string) ([]models.Feedback, error) {
	var records []models.Feedback
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("submitted_at DESC").
		Find(&records).Error
	return records, err
}

func (r *FeedbackPostgreSQL) applyFilters(query *gorm.DB, filters repositories.FeedbackFilters) *gorm.DB {
	if filters.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filters.FacultyID)
	}
	if filters.Semester != nil {
		query = query.Where("semester = ?", *filters.Semester)
	}
	if filters.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filters.AcademicYear)
	}
	if filters.Anonymous != nil {
		query = query.Where("is_anonymous = ?", *filters.Anonymous)
	}
	return query
}
