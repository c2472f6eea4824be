package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, COALESCE(name, ''), COALESCE(user_type, '') FROM users WHERE id = $1`
	row := r.q.QueryRowContext(ctx, query, id)

	var user domain.User
	var userType string
	err := row.Scan(&user.ID, &user.Name, &userType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = domain.ParseRole(userType)
	return &user, nil
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
