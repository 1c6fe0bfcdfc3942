package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin account able to mutate the catalog, order
// statuses and store settings.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LoginRequest is used for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
