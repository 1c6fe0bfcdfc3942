package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tastyhub/ordering-service/internal/models"
)

// MenuRepository handles catalog data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// List retrieves all menu items
func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, image_url, is_available
		FROM menu_items
		ORDER BY category ASC, name ASC
	`

	var items []models.MenuItem
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a menu item by ID
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, image_url, is_available
		FROM menu_items
		WHERE id = $1
	`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

// Create inserts a menu item and returns it with its server-assigned ID
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (name, description, price, category, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, price, category, image_url, is_available
	`

	var created models.MenuItem
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.ImageURL,
		item.IsAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &created, nil
}

// Update replaces all mutable fields of an existing menu item
func (r *MenuRepository) Update(ctx context.Context, id string, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5,
		    is_available = $6, updated_at = $7
		WHERE id = $8
		RETURNING id, name, description, price, category, image_url, is_available
	`

	var updated models.MenuItem
	err := r.db.GetContext(
		ctx,
		&updated,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.ImageURL,
		item.IsAvailable,
		time.Now(),
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &updated, nil
}

// Delete removes a menu item
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM menu_items
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ToggleAvailability flips the is_available flag of a menu item
func (r *MenuRepository) ToggleAvailability(ctx context.Context, id string) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET is_available = NOT is_available, updated_at = $1
		WHERE id = $2
		RETURNING id, name, description, price, category, image_url, is_available
	`

	var updated models.MenuItem
	err := r.db.GetContext(ctx, &updated, query, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle menu item: %w", err)
	}

	return &updated, nil
}
