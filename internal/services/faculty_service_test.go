package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/events"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

func newTestFacultyService(repo *memRepository) FacultyService {
	return NewFacultyService(repo, nil, testLogger(), validator.New(), cache.NewCacheManager(nil), events.NewMockEventPublisher())
}

func TestFacultyService_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	service := newTestFacultyService(repo)

	t.Run("create and get", func(t *testing.T) {
		created, err := service.Create(ctx, &validator.FacultyCreateRequest{
			FacultyID:   "FAC001",
			Name:        "Prof. Rao",
			Designation: "Professor",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if created.FacultyID != "FAC001" {
			t.Errorf("unexpected faculty id %q", created.FacultyID)
		}

		got, err := service.Get(ctx, "FAC001")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "Prof. Rao" {
			t.Errorf("unexpected name %q", got.Name)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := service.Create(ctx, &validator.FacultyCreateRequest{
			FacultyID:   "FAC001",
			Name:        "Someone Else",
			Designation: "Professor",
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("update mutable fields", func(t *testing.T) {
		updated, err := service.Update(ctx, "FAC001", &validator.FacultyUpdateRequest{
			Designation: strPtr("Head of Department"),
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Designation != "Head of Department" {
			t.Errorf("designation not updated: %q", updated.Designation)
		}
		if updated.Name != "Prof. Rao" {
			t.Errorf("untouched field changed: %q", updated.Name)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := service.Create(ctx, &validator.FacultyCreateRequest{FacultyID: "FAC002"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("delete blocked while feedback exists", func(t *testing.T) {
		repo.feedback = append(repo.feedback, feedbackRecord("FAC001", 8, time.Now().UTC()))

		err := service.Delete(ctx, "FAC001")
		if !errors.Is(err, ErrFacultyInUse) {
			t.Errorf("expected ErrFacultyInUse, got %v", err)
		}
		if _, getErr := service.Get(ctx, "FAC001"); getErr != nil {
			t.Errorf("faculty must survive a blocked delete: %v", getErr)
		}
	})

	t.Run("delete succeeds without feedback", func(t *testing.T) {
		if _, err := service.Create(ctx, &validator.FacultyCreateRequest{
			FacultyID:   "FAC009",
			Name:        "Dr. Iyer",
			Designation: "Assistant Professor",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := service.Delete(ctx, "FAC009"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := service.Get(ctx, "FAC009"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestCourseService_Assignments(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	service := NewCourseService(repo, nil, testLogger(), validator.New())

	if _, err := service.CreateCourse(ctx, &validator.CourseCreateRequest{
		CourseID:   "CS201",
		CourseName: "Data Structures",
	}); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	repo.faculty = append(repo.faculty, models.Faculty{FacultyID: "FAC001", Name: "Prof. Rao", Designation: "Professor"})

	t.Run("assignment needs existing course and faculty", func(t *testing.T) {
		_, err := service.CreateAssignment(ctx, &validator.CourseAssignmentCreateRequest{
			CourseID:     "CS999",
			FacultyID:    "FAC001",
			Section:      "A",
			Semester:     "3rd",
			AcademicYear: "2024-25",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown course, got %v", err)
		}
	})

	t.Run("create list delete roundtrip", func(t *testing.T) {
		assignment, err := service.CreateAssignment(ctx, &validator.CourseAssignmentCreateRequest{
			CourseID:     "CS201",
			FacultyID:    "FAC001",
			Section:      "A",
			Semester:     "3rd",
			AcademicYear: "2024-25",
		})
		if err != nil {
			t.Fatalf("CreateAssignment failed: %v", err)
		}

		section := "A"
		listed, err := service.ListAssignments(ctx, &AssignmentListRequest{Section: &section})
		if err != nil {
			t.Fatalf("ListAssignments failed: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 assignment, got %d", len(listed))
		}

		if err := service.DeleteAssignment(ctx, assignment.ID.String()); err != nil {
			t.Fatalf("DeleteAssignment failed: %v", err)
		}
	})

	t.Run("malformed assignment id rejected", func(t *testing.T) {
		err := service.DeleteAssignment(ctx, "not-a-uuid")
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("invalid semester rejected", func(t *testing.T) {
		_, err := service.CreateAssignment(ctx, &validator.CourseAssignmentCreateRequest{
			CourseID:     "CS201",
			FacultyID:    "FAC001",
			Section:      "A",
			Semester:     "9th",
			AcademicYear: "2024-25",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestSettingsService_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	service := NewSettingsService(repo, testLogger(), validator.New(), cache.NewCacheManager(nil))

	t.Run("anonymous feedback defaults to enabled", func(t *testing.T) {
		if !service.AnonymousFeedbackEnabled(ctx) {
			t.Error("missing setting must default to enabled")
		}
	})

	t.Run("update and read back", func(t *testing.T) {
		err := service.Update(ctx, models.SettingAnonymousFeedback, &validator.SettingUpdateRequest{Value: false})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		settings, err := service.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if v, ok := settings[models.SettingAnonymousFeedback].(bool); !ok || v {
			t.Errorf("expected anonymous_feedback=false, got %v", settings[models.SettingAnonymousFeedback])
		}
		if service.AnonymousFeedbackEnabled(ctx) {
			t.Error("expected anonymous feedback disabled after update")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		err := service.Update(ctx, "", &validator.SettingUpdateRequest{Value: true})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})
}
