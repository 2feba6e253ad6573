package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

// ===== RESPONSE DTOs =====

type StudentLoginResponse struct {
	Tokens  *utils.TokenPair `json:"tokens"`
	Student StudentData      `json:"student"`
}

type StudentData struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Section    string `json:"section"`
	Email      string `json:"email"`
}

type StaffLoginResponse struct {
	Tokens  *utils.TokenPair `json:"tokens"`
	Account StaffData        `json:"account"`
}

type StaffData struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	FacultyID string          `json:"faculty_id,omitempty"`
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	jwt       *utils.JWTService

	// Burned on unknown emails so response timing doesn't reveal whether
	// an account exists.
	dummyHash string
}

// NewAuthService creates a new auth service.
func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, jwt *utils.JWTService) AuthService {
	dummyHash, err := utils.HashPassword(uuid.New().String())
	if err != nil {
		// bcrypt only fails on invalid cost; the constant cost is valid.
		dummyHash = ""
	}

	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		jwt:       jwt,
		dummyHash: dummyHash,
	}
}

// VerifyStudent checks a student's email plus exactly one secondary factor
// (date of birth or roll number) and issues a session on success.
func (s *authService) VerifyStudent(ctx context.Context, req *validator.StudentLoginRequest) (*StudentLoginResponse, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, verrs.Error())
	}

	hasDOB := req.DateOfBirth != nil && strings.TrimSpace(*req.DateOfBirth) != ""
	hasRoll := req.RollNumber != nil && strings.TrimSpace(*req.RollNumber) != ""
	if hasDOB == hasRoll {
		return nil, fmt.Errorf("%w: exactly one of date_of_birth or roll_number must be provided", ErrInvalidRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.CollegeEmail))
	profile, err := s.repo.Student().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("Student login failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	if hasDOB {
		dob, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DateOfBirth))
		if err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must look like 2006-01-02", ErrInvalidRequest)
		}
		stored := time.Time(profile.DateOfBirth)
		if !sameDate(dob, stored) {
			s.logger.Info("Student login failed", "reason", "factor mismatch")
			return nil, ErrInvalidCredentials
		}
	} else {
		// Roll numbers match exactly; only the email is case-insensitive.
		if strings.TrimSpace(*req.RollNumber) != profile.RollNumber {
			s.logger.Info("Student login failed", "reason", "factor mismatch")
			return nil, ErrInvalidCredentials
		}
	}

	tokens, err := s.jwt.GenerateTokenPair(profile.ID.String(), profile.CollegeEmail, models.RoleStudent, "")
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("Student logged in", "student_id", profile.ID)

	return &StudentLoginResponse{
		Tokens: tokens,
		Student: StudentData{
			ID:         profile.ID.String(),
			Name:       profile.Name,
			RollNumber: profile.RollNumber,
			Section:    profile.Section,
			Email:      profile.CollegeEmail,
		},
	}, nil
}

// VerifyStaff checks an admin or faculty email + password.
func (s *authService) VerifyStaff(ctx context.Context, req *validator.StaffLoginRequest) (*StaffLoginResponse, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, verrs.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := s.repo.Staff().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Equalize timing with a throwaway comparison.
			utils.CheckPassword(s.dummyHash, req.Password)
			s.logger.Info("Staff login failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Info("Staff login failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	facultyID := ""
	if account.FacultyID != nil {
		facultyID = *account.FacultyID
	}

	tokens, err := s.jwt.GenerateTokenPair(account.ID.String(), account.Email, account.Role, facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("Staff logged in", "account_id", account.ID, "role", account.Role)

	return &StaffLoginResponse{
		Tokens: tokens,
		Account: StaffData{
			ID:        account.ID.String(),
			Name:      account.Name,
			Email:     account.Email,
			Role:      account.Role,
			FacultyID: facultyID,
		},
	}, nil
}

// sameDate compares two times by calendar date only.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
