package service

import (
	"context"
	"fmt"

	"github.com/tastyhub/ordering-service/internal/models"
)

// MenuService handles catalog business logic
type MenuService struct {
	repo  MenuRepository
	cache MenuListCache // nil when caching is disabled
}

// NewMenuService creates a new menu service
func NewMenuService(repo MenuRepository, cache MenuListCache) *MenuService {
	return &MenuService{
		repo:  repo,
		cache: cache,
	}
}

// GetItems retrieves all menu items
func (s *MenuService) GetItems(ctx context.Context) ([]models.MenuItem, error) {
	if s.cache != nil {
		if items, ok := s.cache.GetList(ctx); ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, items)
	}

	return items, nil
}

// GetItem retrieves a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateItem creates a new menu item. The ID is assigned by the database.
func (s *MenuService) CreateItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.Item())
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.invalidate(ctx)
	return created, nil
}

// UpdateItem replaces all mutable fields of an existing menu item
func (s *MenuService) UpdateItem(ctx context.Context, id string, req models.MenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req.Item())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// DeleteItem deletes a menu item
func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// ToggleItem flips the availability flag of a menu item
func (s *MenuService) ToggleItem(ctx context.Context, id string) (*models.MenuItem, error) {
	updated, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
