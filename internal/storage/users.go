package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"TRIPPLANNER_BACK-END/internal/models"
)

// UserStore defines the persistence operations for accounts.
// Handlers depend on this interface so tests can swap in a fake.
type UserStore interface {
	// Create inserts a new user. Returns ErrDuplicateUsername when the
	// username is already taken.
	Create(ctx context.Context, user models.User) error

	// GetByUsername looks up a user by exact, case-sensitive username.
	// Returns ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (models.User, error)

	// GetByID retrieves a user by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)

	// UsernameExists reports whether a username is already registered
	// (case-sensitive exact match).
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// PGUserStore is the Postgres implementation of UserStore.
type PGUserStore struct {
	db db
}

// NewUserStore constructs a UserStore backed by the provided handle.
func NewUserStore(db db) *PGUserStore {
	return &PGUserStore{db: db}
}

// Create inserts a new user row.
func (s *PGUserStore) Create(ctx context.Context, user models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
         VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("storage.UserStore.Create: %w", err)
	}
	return nil
}

// GetByUsername looks up a user by exact username.
func (s *PGUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("storage.UserStore.GetByUsername: %w", err)
	}
	return u, nil
}

// GetByID retrieves a user by primary key.
func (s *PGUserStore) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("storage.UserStore.GetByID: %w", err)
	}
	return u, nil
}

// UsernameExists reports whether a username is already registered.
func (s *PGUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("storage.UserStore.UsernameExists: %w", err)
	}
	return exists, nil
}
