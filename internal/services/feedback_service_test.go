package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/events"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

func newTestFeedbackService(repo *memRepository) FeedbackService {
	logger := testLogger()
	v := validator.New()
	cm := cache.NewCacheManager(nil)
	settings := NewSettingsService(repo, logger, v, cm)
	return NewFeedbackService(repo, nil, logger, v, cm, events.NewMockEventPublisher(), settings)
}

func studentSession(id uuid.UUID) SessionContext {
	return SessionContext{
		UserID: id.String(),
		Email:  "s190001@college.edu",
		Role:   models.RoleStudent,
	}
}

func validSubmission() *validator.SubmitFeedbackRequest {
	return &validator.SubmitFeedbackRequest{
		FacultyID:     "FAC001",
		SubjectName:   "Data Structures",
		Semester:      "3rd",
		AcademicYear:  "2024-25",
		OverallRating: intPtr(9),
	}
}

func TestFeedbackService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid submission", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)
		studentID := uuid.New()

		resp, err := service.Submit(ctx, studentSession(studentID), validSubmission())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if resp.FacultyID != "FAC001" {
			t.Errorf("expected faculty FAC001, got %s", resp.FacultyID)
		}
		if !resp.IsAnonymous {
			t.Error("submissions default to anonymous")
		}
		if resp.StudentID != "" {
			t.Error("anonymous response must not expose the student id")
		}
		if len(repo.feedback) != 1 {
			t.Fatalf("expected 1 stored record, got %d", len(repo.feedback))
		}
		if repo.feedback[0].StudentID != studentID {
			t.Error("stored record must retain the student id for duplicate detection")
		}
	})

	t.Run("rejects duplicate for same faculty and subject", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)
		session := studentSession(uuid.New())

		if _, err := service.Submit(ctx, session, validSubmission()); err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		_, err := service.Submit(ctx, session, validSubmission())
		if !errors.Is(err, ErrDuplicateSubmission) {
			t.Errorf("expected ErrDuplicateSubmission, got %v", err)
		}
		if len(repo.feedback) != 1 {
			t.Errorf("duplicate must not be stored, have %d records", len(repo.feedback))
		}
	})

	t.Run("same faculty different subject is allowed", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)
		session := studentSession(uuid.New())

		if _, err := service.Submit(ctx, session, validSubmission()); err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		second := validSubmission()
		second.SubjectName = "Operating Systems"
		if _, err := service.Submit(ctx, session, second); err != nil {
			t.Fatalf("second subject should be accepted: %v", err)
		}
	})

	t.Run("missing fields reported in order", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)
		session := studentSession(uuid.New())

		req := validSubmission()
		req.FacultyID = ""
		req.Semester = ""

		_, err := service.Submit(ctx, session, req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
		// faculty_id is checked before semester, so only it is reported.
		if !strings.Contains(err.Error(), "faculty_id") {
			t.Errorf("expected first missing field faculty_id in %q", err.Error())
		}
		if strings.Contains(err.Error(), "semester") {
			t.Errorf("later fields must not be reported, got %q", err.Error())
		}
	})

	t.Run("missing overall rating rejected", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)

		req := validSubmission()
		req.OverallRating = nil

		_, err := service.Submit(ctx, studentSession(uuid.New()), req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "overall_rating") {
			t.Errorf("expected overall_rating in %q", err.Error())
		}
	})

	t.Run("out of range rating rejected", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)

		req := validSubmission()
		req.Punctuality = intPtr(11)

		_, err := service.Submit(ctx, studentSession(uuid.New()), req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "punctuality") {
			t.Errorf("expected punctuality in %q", err.Error())
		}
	})

	t.Run("normalizes whitespace and empty texts", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)

		req := validSubmission()
		req.SubjectName = "  Data Structures  "
		req.PositiveFeedback = strPtr("   ")
		req.AdditionalComments = strPtr("  solid course  ")

		resp, err := service.Submit(ctx, studentSession(uuid.New()), req)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if resp.SubjectName != "Data Structures" {
			t.Errorf("subject not trimmed: %q", resp.SubjectName)
		}
		if resp.PositiveFeedback != nil {
			t.Error("blank text should normalize to nil")
		}
		if resp.AdditionalComments == nil || *resp.AdditionalComments != "solid course" {
			t.Errorf("comment not trimmed: %v", resp.AdditionalComments)
		}
	})

	t.Run("non-student role rejected", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)

		session := SessionContext{UserID: uuid.New().String(), Role: models.RoleAdmin}
		_, err := service.Submit(ctx, session, validSubmission())
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("disabled anonymity forces identified submissions", func(t *testing.T) {
		repo := newMemRepository()
		repo.settings[models.SettingAnonymousFeedback] = models.PortalSetting{
			Key:   models.SettingAnonymousFeedback,
			Value: datatypes.JSON([]byte("false")),
		}
		service := newTestFeedbackService(repo)
		studentID := uuid.New()

		req := validSubmission()
		anonymous := true
		req.IsAnonymous = &anonymous

		resp, err := service.Submit(ctx, studentSession(studentID), req)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if resp.IsAnonymous {
			t.Error("anonymity must be overridden when the setting is disabled")
		}
		if resp.StudentID != studentID.String() {
			t.Errorf("identified submission should expose student id, got %q", resp.StudentID)
		}
	})

	t.Run("named submission keeps student id visible", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestFeedbackService(repo)
		studentID := uuid.New()

		req := validSubmission()
		anonymous := false
		req.IsAnonymous = &anonymous

		resp, err := service.Submit(ctx, studentSession(studentID), req)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if resp.StudentID != studentID.String() {
			t.Errorf("named submission should expose student id, got %q", resp.StudentID)
		}
	})
}

func TestFeedbackService_List(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	service := newTestFeedbackService(repo)

	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.feedback = append(repo.feedback, models.Feedback{
			ID:            uuid.New(),
			StudentID:     uuid.New(),
			FacultyID:     "FAC001",
			SubjectName:   "Data Structures",
			Semester:      "3rd",
			AcademicYear:  "2024-25",
			OverallRating: intPtr(7 + i),
			IsAnonymous:   true,
			SubmittedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	resp, err := service.List(ctx, &FeedbackListRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if len(resp.Feedback) != 2 {
		t.Fatalf("expected 2 records on page, got %d", len(resp.Feedback))
	}
	if !resp.Feedback[0].SubmittedAt.After(resp.Feedback[1].SubmittedAt) {
		t.Error("expected newest-first ordering")
	}
	for _, f := range resp.Feedback {
		if f.StudentID != "" {
			t.Error("anonymous records must not expose student ids")
		}
	}
}

func TestFeedbackService_GetEligibleCourses(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	student := seedStudent(repo)
	service := newTestFeedbackService(repo)

	repo.faculty = append(repo.faculty, models.Faculty{FacultyID: "FAC001", Name: "Prof. Rao", Designation: "Professor"})
	repo.courses = append(repo.courses, models.Course{CourseID: "CS201", CourseName: "Data Structures"})
	repo.assignments = append(repo.assignments, models.CourseAssignment{
		ID:           uuid.New(),
		CourseID:     "CS201",
		FacultyID:    "FAC001",
		Section:      "A",
		Semester:     "3rd",
		AcademicYear: "2024-25",
		Course:       &models.Course{CourseID: "CS201", CourseName: "Data Structures"},
		Faculty:      &models.Faculty{FacultyID: "FAC001", Name: "Prof. Rao"},
	})

	courses, err := service.GetEligibleCourses(ctx, studentSession(student.ID), "3rd", "2024-25")
	if err != nil {
		t.Fatalf("GetEligibleCourses failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}
	if courses[0].FeedbackSubmitted {
		t.Error("no feedback submitted yet")
	}

	req := validSubmission()
	if _, err := service.Submit(ctx, studentSession(student.ID), req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	courses, err = service.GetEligibleCourses(ctx, studentSession(student.ID), "3rd", "2024-25")
	if err != nil {
		t.Fatalf("GetEligibleCourses failed: %v", err)
	}
	if !courses[0].FeedbackSubmitted {
		t.Error("expected feedback_submitted flag after submitting")
	}
}
