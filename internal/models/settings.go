package models

import "errors"

// StoreSettings is the singleton store configuration. IsOpen gates all
// cart-mutating and checkout actions on the customer side.
type StoreSettings struct {
	Name   string `db:"name" json:"name"`
	IsOpen bool   `db:"is_open" json:"isOpen"`
}

var ErrStoreNameRequired = errors.New("store name is required")

// Validate checks the settings invariants.
func (s StoreSettings) Validate() error {
	if s.Name == "" {
		return ErrStoreNameRequired
	}
	return nil
}

// DefaultSettings returns the settings used before an admin has saved any.
func DefaultSettings() StoreSettings {
	return StoreSettings{Name: "Tasty Ordering", IsOpen: true}
}
