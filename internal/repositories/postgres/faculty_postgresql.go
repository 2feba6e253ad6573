package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

type FacultyPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewFacultyPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.FacultyRepository {
	return &FacultyPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *FacultyPostgreSQL) Create(ctx context.Context, faculty *models.Faculty) error {
	if err := r.db.WithContext(ctx).Create(faculty).Error; err != nil {
		return err
	}
	cache.SafeInvalidateFaculty(ctx, r.cacheManager, faculty.FacultyID)
	return nil
}

func (r *FacultyPostgreSQL) Update(ctx context.Context, faculty *models.Faculty) error {
	if err := r.db.WithContext(ctx).Save(faculty).Error; err != nil {
		return err
	}
	cache.SafeInvalidateFaculty(ctx, r.cacheManager, faculty.FacultyID)
	return nil
}

func (r *FacultyPostgreSQL) Delete(ctx context.Context, facultyID string) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Faculty{}, "faculty_id = ?", facultyID).Error; err != nil {
		return err
	}
	cache.SafeInvalidateFaculty(ctx, r.cacheManager, facultyID)
	return nil
}

func (r *FacultyPostgreSQL) GetByID(ctx context.Context, facultyID string) (*models.Faculty, error) {
	cacheKey := fmt.Sprintf("id:%s", facultyID)

	var faculty models.Faculty
	if err := r.cacheManager.Faculty.Get(ctx, cacheKey, &faculty); err == nil {
		return &faculty, nil
	}

	err := r.db.WithContext(ctx).
		First(&faculty, "faculty_id = ?", facultyID).Error
	if err != nil {
		return nil, err
	}

	// Cache write failures never fail the read path.
	_ = r.cacheManager.Faculty.Set(ctx, cacheKey, &faculty, cache.FacultyCacheConfig.TTL)

	return &faculty, nil
}

func (r *FacultyPostgreSQL) List(ctx context.Context) ([]models.Faculty, error) {
	var list []models.Faculty
	err := r.cacheManager.Faculty.CacheOrExecute(ctx, "list", &list, cache.FacultyCacheConfig.TTL, func() (interface{}, error) {
		var faculty []models.Faculty
		if err := r.db.WithContext(ctx).
			Order("faculty_id ASC").
			Find(&faculty).Error; err != nil {
			return nil, err
		}
		return faculty, nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *FacultyPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Count(&count).Error
	return count, err
}
