package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tastyhub/ordering-service/internal/models"
)

// SettingsRepository handles store settings data access. Settings are a
// single row; Get falls back to defaults until an admin has saved any.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the store settings
func (r *SettingsRepository) Get(ctx context.Context) (*models.StoreSettings, error) {
	query := `
		SELECT name, is_open
		FROM store_settings
		WHERE id = 1
	`

	var settings models.StoreSettings
	err := r.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store settings: %w", err)
	}

	return &settings, nil
}

// Upsert saves the store settings
func (r *SettingsRepository) Upsert(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error) {
	query := `
		INSERT INTO store_settings (id, name, is_open)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, is_open = EXCLUDED.is_open
		RETURNING name, is_open
	`

	var saved models.StoreSettings
	err := r.db.GetContext(ctx, &saved, query, settings.Name, settings.IsOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to save store settings: %w", err)
	}

	return &saved, nil
}
