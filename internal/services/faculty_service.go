package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/events"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type facultyService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
	publisher    events.EventPublisher
}

// NewFacultyService creates a new faculty service.
func NewFacultyService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
) FacultyService {
	return &facultyService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    v,
		cacheManager: cacheManager,
		publisher:    publisher,
	}
}

func (s *facultyService) List(ctx context.Context) ([]models.Faculty, error) {
	faculty, err := s.repo.Faculty().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}
	return faculty, nil
}

func (s *facultyService) Get(ctx context.Context, facultyID string) (*models.Faculty, error) {
	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: faculty %s", ErrNotFound, facultyID)
		}
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}
	return faculty, nil
}

func (s *facultyService) Create(ctx context.Context, req *validator.FacultyCreateRequest) (*models.Faculty, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	if _, err := s.repo.Faculty().GetByID(ctx, req.FacultyID); err == nil {
		return nil, fmt.Errorf("%w: faculty %s", ErrAlreadyExists, req.FacultyID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing faculty: %w", err)
	}

	faculty := &models.Faculty{
		FacultyID:     req.FacultyID,
		Name:          req.Name,
		Designation:   req.Designation,
		Qualification: req.Qualification,
		Experience:    req.Experience,
	}
	if err := s.repo.Faculty().Create(ctx, faculty); err != nil {
		return nil, fmt.Errorf("failed to create faculty: %w", err)
	}

	s.publishChange(ctx, faculty.FacultyID, "created")
	s.logger.Info("Faculty created", "faculty_id", faculty.FacultyID)

	return faculty, nil
}

func (s *facultyService) Update(ctx context.Context, facultyID string, req *validator.FacultyUpdateRequest) (*models.Faculty, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	faculty, err := s.Get(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = *req.Name
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}
	if req.Qualification != nil {
		faculty.Qualification = req.Qualification
	}
	if req.Experience != nil {
		faculty.Experience = req.Experience
	}

	if err := s.repo.Faculty().Update(ctx, faculty); err != nil {
		return nil, fmt.Errorf("failed to update faculty: %w", err)
	}

	s.publishChange(ctx, facultyID, "updated")
	s.logger.Info("Faculty updated", "faculty_id", facultyID)

	return faculty, nil
}

// Delete removes a faculty member. Members with stored feedback cannot be
// deleted, since submissions are append-only and must stay attributable.
func (s *facultyService) Delete(ctx context.Context, facultyID string) error {
	if _, err := s.Get(ctx, facultyID); err != nil {
		return err
	}

	count, err := s.repo.Feedback().CountByFaculty(ctx, facultyID)
	if err != nil {
		return fmt.Errorf("failed to count faculty feedback: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: faculty %s has %d feedback records", ErrFacultyInUse, facultyID, count)
	}

	if err := s.repo.Faculty().Delete(ctx, facultyID); err != nil {
		return fmt.Errorf("failed to delete faculty: %w", err)
	}

	s.publishChange(ctx, facultyID, "deleted")
	s.logger.Info("Faculty deleted", "faculty_id", facultyID)

	return nil
}

func (s *facultyService) publishChange(ctx context.Context, facultyID, action string) {
	if err := s.publisher.PublishFacultyChanged(ctx, events.FacultyChangedEvent{
		FacultyID: facultyID,
		Action:    action,
	}); err != nil {
		s.logger.Error("Failed to publish faculty event", "error", err, "faculty_id", facultyID)
	}
}
