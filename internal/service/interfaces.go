package service

import (
	"context"

	"github.com/tastyhub/ordering-service/internal/models"
)

// MenuRepository is the catalog storage the menu service depends on.
type MenuRepository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, id string, item models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (*models.MenuItem, error)
}

// OrderRepository is the order storage the order service depends on.
type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order models.Order) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

// SettingsRepository is the settings storage the settings service depends on.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Upsert(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error)
}

// UserRepository is the account storage the auth service depends on.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
}

// MenuListCache is an optional read-through cache for the menu list.
type MenuListCache interface {
	GetList(ctx context.Context) ([]models.MenuItem, bool)
	SetList(ctx context.Context, items []models.MenuItem)
	Invalidate(ctx context.Context)
}
