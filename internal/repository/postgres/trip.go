package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
// Trips live in the orders table shared with the booking flow.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO orders (tourist_id, guide_id, tourists_num, date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRowContext(ctx, query,
		trip.TouristID,
		trip.GuideID,
		trip.TouristsNum,
		trip.Date,
		int(trip.Status),
	).Scan(&trip.ID, &trip.CreatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `
		SELECT id, tourist_id, guide_id, tourists_num, date, status, created_at
		FROM orders WHERE id = $1
	`

	var trip domain.Trip
	var status int

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.TouristID,
		&trip.GuideID,
		&trip.TouristsNum,
		&trip.Date,
		&status,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	trip.Status = domain.TripStatus(status)
	return &trip, nil
}

// UpdateStatus sets the trip status in one conditional statement.
func (r *TripRepository) UpdateStatus(ctx context.Context, id int64, status domain.TripStatus, from []domain.TripStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND status = ANY($3)`

	allowed := make([]int64, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, int64(s))
	}

	result, err := r.q.ExecContext(ctx, query, int(status), id, pq.Array(allowed))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing matched: tell a missing trip apart from one in the wrong status.
	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrPreconditionFailed
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
