package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// ActiveTripRepository reads active trips joined with tourist positions.
type ActiveTripRepository struct {
	db *sqlx.DB
}

// NewActiveTripRepository creates a new PostgreSQL active trip repository.
func NewActiveTripRepository(db *sql.DB) *ActiveTripRepository {
	return &ActiveTripRepository{db: sqlx.NewDb(db, "postgres")}
}

type activeTripRow struct {
	TripID            int64           `db:"trip_id"`
	TouristID         int64           `db:"tourist_id"`
	TouristName       string          `db:"tourist_name"`
	TouristsNum       int             `db:"tourists_num"`
	Date              time.Time       `db:"date"`
	Latitude          sql.NullFloat64 `db:"latitude"`
	Longitude         sql.NullFloat64 `db:"longitude"`
	LocationUpdatedAt sql.NullTime    `db:"location_updated_at"`
}

// ListActiveByGuide returns the guide's active trips, newest date first.
func (r *ActiveTripRepository) ListActiveByGuide(ctx context.Context, guideID int64) ([]*domain.ActiveTripRow, error) {
	query := `
		SELECT
			o.id AS trip_id,
			o.tourist_id,
			COALESCE(u.name, '') AS tourist_name,
			o.tourists_num,
			o.date,
			ul.latitude,
			ul.longitude,
			ul.updated_at AS location_updated_at
		FROM orders o
		JOIN users u ON u.id = o.tourist_id
		LEFT JOIN user_locations ul ON ul.user_id = o.tourist_id
		WHERE o.guide_id = $1 AND o.status = $2
		ORDER BY o.date DESC, o.id DESC
	`

	var rows []activeTripRow
	if err := r.db.SelectContext(ctx, &rows, query, guideID, int(domain.TripStatusActive)); err != nil {
		return nil, err
	}

	result := make([]*domain.ActiveTripRow, 0, len(rows))
	for _, row := range rows {
		out := &domain.ActiveTripRow{
			TripID:      row.TripID,
			TouristID:   row.TouristID,
			TouristName: row.TouristName,
			TouristsNum: row.TouristsNum,
			Date:        row.Date,
		}
		if row.Latitude.Valid && row.Longitude.Valid {
			lat, lng := row.Latitude.Float64, row.Longitude.Float64
			out.Latitude = &lat
			out.Longitude = &lng
		}
		if row.LocationUpdatedAt.Valid {
			ts := row.LocationUpdatedAt.Time
			out.LocationUpdatedAt = &ts
		}
		result = append(result, out)
	}

	return result, nil
}

// Ensure ActiveTripRepository implements repository.ActiveTripRepository.
var _ repository.ActiveTripRepository = (*ActiveTripRepository)(nil)
