package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type settingsService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, cacheManager *cache.CacheManager) SettingsService {
	return &settingsService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		cacheManager: cacheManager,
	}
}

func (s *settingsService) GetAll(ctx context.Context) (map[string]interface{}, error) {
	settings, err := s.repo.Setting().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	result := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		var value interface{}
		if err := json.Unmarshal(setting.Value, &value); err != nil {
			s.logger.Warn("Skipping unreadable setting", "key", setting.Key, "error", err)
			continue
		}
		result[setting.Key] = value
	}
	return result, nil
}

func (s *settingsService) Update(ctx context.Context, key string, req *validator.SettingUpdateRequest) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", ErrInvalidRequest)
	}
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	raw, err := json.Marshal(req.Value)
	if err != nil {
		return fmt.Errorf("%w: setting value is not encodable", ErrInvalidRequest)
	}

	setting := &models.PortalSetting{
		Key:       key,
		Value:     datatypes.JSON(raw),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Setting().Upsert(ctx, setting); err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}

	cache.SafeDelete(ctx, s.cacheManager.Fast, "setting:"+key)
	s.logger.Info("Setting updated", "key", key)

	return nil
}

// AnonymousFeedbackEnabled reads the anonymous-feedback toggle. A missing
// or unreadable setting defaults to enabled.
func (s *settingsService) AnonymousFeedbackEnabled(ctx context.Context) bool {
	var enabled bool
	err := s.cacheManager.Fast.CacheOrExecute(ctx, "setting:"+models.SettingAnonymousFeedback, &enabled, cache.FastCacheConfig.TTL, func() (interface{}, error) {
		setting, err := s.repo.Setting().Get(ctx, models.SettingAnonymousFeedback)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return true, nil
			}
			return nil, err
		}
		var value bool
		if err := json.Unmarshal(setting.Value, &value); err != nil {
			return true, nil
		}
		return value, nil
	})
	if err != nil {
		s.logger.Warn("Failed to read anonymous feedback setting, defaulting to enabled", "error", err)
		return true
	}
	return enabled
}
