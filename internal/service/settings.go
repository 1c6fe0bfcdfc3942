package service

import (
	"context"

	"github.com/tastyhub/ordering-service/internal/models"
)

// SettingsService handles store settings business logic
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings retrieves the store settings
func (s *SettingsService) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings saves the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Upsert(ctx, settings)
}
