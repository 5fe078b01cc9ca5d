package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// PasswordHash holds the bcrypt hash; the plaintext is never stored.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
