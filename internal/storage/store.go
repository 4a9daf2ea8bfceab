// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/moneymate/internal/models"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for session and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateSession persists a new session.
	// The ID, CreatedAt, UpdatedAt and an empty Title are filled in by the store.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its items and participants.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// UpdateSession replaces the stored session, including all items,
	// participants and assignments. UpdatedAt is refreshed.
	UpdateSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and everything it owns.
	DeleteSession(ctx context.Context, sessionID string) error

	// ListSessionsByOwner returns the user's sessions, most recently updated first.
	ListSessionsByOwner(ctx context.Context, ownerID string) ([]*models.Session, error)

	// CreateUser persists a new user. Email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return an error wrapping ErrNotFound
	// for unknown users.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
