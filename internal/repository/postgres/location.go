package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// LocationRepository is a PostgreSQL implementation of repository.LocationRepository.
type LocationRepository struct {
	q Querier
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{q: db}
}

// The unique index on user_id makes this a single conflict-resolving write:
// concurrent first writes for one user end in one row, and updated_at never
// moves backwards.
const upsertLocationQuery = `
	INSERT INTO user_locations (user_id, latitude, longitude, is_tour_guide, trip_id, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (user_id) DO UPDATE SET
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		is_tour_guide = EXCLUDED.is_tour_guide,
		trip_id = EXCLUDED.trip_id,
		updated_at = GREATEST(user_locations.updated_at, EXCLUDED.updated_at)
	RETURNING id, user_id, latitude, longitude, is_tour_guide, trip_id, updated_at
`

// Upsert creates or replaces the current position of rec.UserID.
func (r *LocationRepository) Upsert(ctx context.Context, rec *domain.LocationRecord) (*domain.LocationRecord, error) {
	var tripID sql.NullInt64
	if rec.TripID != nil {
		tripID = sql.NullInt64{Int64: *rec.TripID, Valid: true}
	}

	row := r.q.QueryRowContext(ctx, upsertLocationQuery,
		rec.UserID,
		rec.Latitude,
		rec.Longitude,
		rec.IsGuideRole,
		tripID,
	)

	stored, err := scanLocation(row)
	if err != nil {
		return nil, translateError(err)
	}
	return stored, nil
}

// GetByUserID retrieves the current position of a user.
// Returns nil if the user has no record.
func (r *LocationRepository) GetByUserID(ctx context.Context, userID int64) (*domain.LocationRecord, error) {
	query := `
		SELECT id, user_id, latitude, longitude, is_tour_guide, trip_id, updated_at
		FROM user_locations WHERE user_id = $1
	`

	rec, err := scanLocation(r.q.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanLocation(row *sql.Row) (*domain.LocationRecord, error) {
	var rec domain.LocationRecord
	var tripID sql.NullInt64

	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Latitude,
		&rec.Longitude,
		&rec.IsGuideRole,
		&tripID,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if tripID.Valid {
		id := tripID.Int64
		rec.TripID = &id
	}
	return &rec, nil
}

// Ensure LocationRepository implements repository.LocationRepository.
var _ repository.LocationRepository = (*LocationRepository)(nil)
