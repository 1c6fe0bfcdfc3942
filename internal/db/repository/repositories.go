package repository

import (
	"errors"

	"github.com/tastyhub/ordering-service/internal/db"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repositories provides access to all repository instances
type Repositories struct {
	Menu     *MenuRepository
	Order    *OrderRepository
	Settings *SettingsRepository
	User     *UserRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		Menu:     NewMenuRepository(database.DB),
		Order:    NewOrderRepository(database.DB),
		Settings: NewSettingsRepository(database.DB),
		User:     NewUserRepository(database.DB),
	}
}
