package repository

import (
	"context"

	"tourtrack/internal/domain"
)

// UserRepository reads accounts owned by the identity service.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
