package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/KSRM-F-2025/feedback-service/internal/config"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

func testJWTService() *utils.JWTService {
	return utils.NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		Issuer:          "feedback-service-test",
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestAuthService(repo *memRepository) AuthService {
	return NewAuthService(repo, nil, testLogger(), validator.New(), testJWTService())
}

func seedStudent(repo *memRepository) models.StudentProfile {
	student := models.StudentProfile{
		ID:           uuid.New(),
		CollegeEmail: "s190001@college.edu",
		RollNumber:   "19B01A0501",
		Name:         "Asha Devi",
		DateOfBirth:  datatypes.Date(time.Date(2002, 5, 14, 0, 0, 0, 0, time.UTC)),
		Section:      "A",
	}
	repo.students = append(repo.students, student)
	return student
}

func TestAuthService_VerifyStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("login with roll number", func(t *testing.T) {
		repo := newMemRepository()
		student := seedStudent(repo)
		service := newTestAuthService(repo)

		resp, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "S190001@College.EDU",
			RollNumber:   strPtr("19B01A0501"),
		})
		if err != nil {
			t.Fatalf("VerifyStudent failed: %v", err)
		}
		if resp.Student.ID != student.ID.String() {
			t.Errorf("expected student %s, got %s", student.ID, resp.Student.ID)
		}
		if resp.Tokens == nil || resp.Tokens.AccessToken == "" {
			t.Error("expected access token to be issued")
		}
	})

	t.Run("roll number match is case sensitive", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
			RollNumber:   strPtr("19b01a0501"),
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("login with date of birth", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
			DateOfBirth:  strPtr("2002-05-14"),
		})
		if err != nil {
			t.Fatalf("VerifyStudent failed: %v", err)
		}
	})

	t.Run("zero factors rejected", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
		})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("both factors rejected", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
			DateOfBirth:  strPtr("2002-05-14"),
			RollNumber:   strPtr("19B01A0501"),
		})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("unknown email and wrong factor are indistinguishable", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, unknownErr := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "nobody@college.edu",
			RollNumber:   strPtr("19B01A0501"),
		})
		_, mismatchErr := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
			RollNumber:   strPtr("WRONG"),
		})

		if !errors.Is(unknownErr, ErrInvalidCredentials) {
			t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
		}
		if !errors.Is(mismatchErr, ErrInvalidCredentials) {
			t.Errorf("factor mismatch: expected ErrInvalidCredentials, got %v", mismatchErr)
		}
		if unknownErr.Error() != mismatchErr.Error() {
			t.Errorf("error messages differ: %q vs %q", unknownErr, mismatchErr)
		}
	})

	t.Run("wrong date of birth rejected", func(t *testing.T) {
		repo := newMemRepository()
		seedStudent(repo)
		service := newTestAuthService(repo)

		_, err := service.VerifyStudent(ctx, &validator.StudentLoginRequest{
			CollegeEmail: "s190001@college.edu",
			DateOfBirth:  strPtr("2002-05-15"),
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_VerifyStaff(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	facultyID := "FAC001"
	repo := newMemRepository()
	repo.staff = append(repo.staff, models.StaffAccount{
		ID:           uuid.New(),
		Email:        "prof@college.edu",
		Name:         "Prof. Rao",
		PasswordHash: hash,
		Role:         models.RoleFaculty,
		FacultyID:    &facultyID,
	})
	service := newTestAuthService(repo)

	t.Run("valid password", func(t *testing.T) {
		resp, err := service.VerifyStaff(ctx, &validator.StaffLoginRequest{
			Email:    "Prof@College.edu",
			Password: "correct horse battery staple",
		})
		if err != nil {
			t.Fatalf("VerifyStaff failed: %v", err)
		}
		if resp.Account.Role != models.RoleFaculty {
			t.Errorf("expected role faculty, got %s", resp.Account.Role)
		}
		if resp.Account.FacultyID != facultyID {
			t.Errorf("expected faculty id %s, got %s", facultyID, resp.Account.FacultyID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.VerifyStaff(ctx, &validator.StaffLoginRequest{
			Email:    "prof@college.edu",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.VerifyStaff(ctx, &validator.StaffLoginRequest{
			Email:    "ghost@college.edu",
			Password: "anything",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
