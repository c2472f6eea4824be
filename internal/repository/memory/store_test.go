package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

func TestLocationRepository_ConcurrentFirstWritesLeaveOneRecord(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddUser(&domain.User{ID: 5, Name: "Alice", Role: domain.RoleTourist})
	repo := store.Locations()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Upsert(context.Background(), &domain.LocationRecord{
				UserID:    5,
				Latitude:  float64(i % 90),
				Longitude: float64(i),
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := store.CountLocations(); got != 1 {
		t.Errorf("expected exactly 1 record, got %d", got)
	}
}

func TestLocationRepository_UpdatedAtNeverMovesBackwards(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddUser(&domain.User{ID: 1})
	repo := store.Locations()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return base })
	if _, err := repo.Upsert(ctx, &domain.LocationRecord{UserID: 1, Latitude: 1, Longitude: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.SetClock(func() time.Time { return base.Add(-time.Minute) })
	rec, err := repo.Upsert(ctx, &domain.LocationRecord{UserID: 1, Latitude: 2, Longitude: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rec.UpdatedAt.Equal(base) {
		t.Errorf("expected updated_at to stay at %v, got %v", base, rec.UpdatedAt)
	}
	if rec.Latitude != 2 || rec.Longitude != 2 {
		t.Errorf("expected coordinates to be replaced, got %+v", rec)
	}
}

func TestLocationRepository_UnknownTripRejected(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddUser(&domain.User{ID: 1})

	tripID := int64(12)
	_, err := store.Locations().Upsert(context.Background(), &domain.LocationRecord{UserID: 1, TripID: &tripID})
	if !errors.Is(err, repository.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
	if store.CountLocations() != 0 {
		t.Error("rejected write must not create a record")
	}
}

func TestTripRepository_ConditionalStatusUpdate(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddUser(&domain.User{ID: 5})
	store.AddUser(&domain.User{ID: 9, Role: domain.RoleGuide})
	repo := store.Trips()
	ctx := context.Background()

	trip := &domain.Trip{TouristID: 5, GuideID: 9, TouristsNum: 1, Status: domain.TripStatusActive}
	if err := repo.Create(ctx, trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateStatus(ctx, trip.ID, domain.TripStatusCompleted, domain.TripStatusCompleted.AllowedPredecessors()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.UpdateStatus(ctx, trip.ID, domain.TripStatusActive, domain.TripStatusActive.AllowedPredecessors())
	if !errors.Is(err, repository.ErrPreconditionFailed) {
		t.Errorf("expected ErrPreconditionFailed, got %v", err)
	}

	err = repo.UpdateStatus(ctx, 404, domain.TripStatusActive, domain.TripStatusActive.AllowedPredecessors())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
