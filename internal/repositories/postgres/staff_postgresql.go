package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

type StaffPostgreSQL struct {
	db *gorm.DB
}

func NewStaffPostgreSQL(db *gorm.DB) repositories.StaffRepository {
	return &StaffPostgreSQL{db: db}
}

func (r *StaffPostgreSQL) GetByID(ctx context.Context, id uuid.UUID) (*models.StaffAccount, error) {
	var account models.StaffAccount
	err := r.db.WithContext(ctx).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *StaffPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	var account models.StaffAccount
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}
