package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

type SettingPostgreSQL struct {
	db *gorm.DB
}

func NewSettingPostgreSQL(db *gorm.DB) repositories.SettingRepository {
	return &SettingPostgreSQL{db: db}
}

func (r *SettingPostgreSQL) Get(ctx context.Context, key string) (*models.PortalSetting, error) {
	var setting models.PortalSetting
	err := r.db.WithContext(ctx).
		First(&setting, "key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingPostgreSQL) GetAll(ctx context.Context) ([]models.PortalSetting, error) {
	var settings []models.PortalSetting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error
	return settings, err
}

func (r *SettingPostgreSQL) Upsert(ctx context.Context, setting *models.PortalSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}
