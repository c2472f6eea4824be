package service_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
	"tourtrack/internal/repository/memory"
)

var errDatabaseDown = errors.New("pq: connection refused")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ptr[T any](v T) *T {
	return &v
}

// newSeededStore returns a store with tourist 5 (Alice), tourist 6 (Bob),
// guide 9 and guide 10.
func newSeededStore() *memory.Store {
	store := memory.NewStore()
	store.AddUser(&domain.User{ID: 5, Name: "Alice", Role: domain.RoleTourist})
	store.AddUser(&domain.User{ID: 6, Name: "Bob", Role: domain.RoleTourist})
	store.AddUser(&domain.User{ID: 9, Name: "Guide Nine", Role: domain.RoleGuide})
	store.AddUser(&domain.User{ID: 10, Name: "Guide Ten", Role: domain.RoleGuide})
	return store
}

// ──────────────────────────────────────────────
// FAILING LOCATION REPOSITORY
// ──────────────────────────────────────────────

// failingLocationRepository returns Err from every call.
type failingLocationRepository struct {
	Err            error
	UpsertCalls    int32
	GetByUserCalls int32
}

func (m *failingLocationRepository) Upsert(ctx context.Context, rec *domain.LocationRecord) (*domain.LocationRecord, error) {
	atomic.AddInt32(&m.UpsertCalls, 1)
	return nil, m.Err
}

func (m *failingLocationRepository) GetByUserID(ctx context.Context, userID int64) (*domain.LocationRecord, error) {
	atomic.AddInt32(&m.GetByUserCalls, 1)
	return nil, m.Err
}

// ──────────────────────────────────────────────
// TRIP REPOSITORY WITH ERROR INJECTION
// ──────────────────────────────────────────────

// tripRepositoryStub wraps a real repository and can fail the status write.
type tripRepositoryStub struct {
	repository.TripRepository

	UpdateStatusError error
	UpdateStatusCalls int32
	LastFrom          []domain.TripStatus
}

func (m *tripRepositoryStub) UpdateStatus(ctx context.Context, id int64, status domain.TripStatus, from []domain.TripStatus) error {
	atomic.AddInt32(&m.UpdateStatusCalls, 1)
	m.LastFrom = from
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	return m.TripRepository.UpdateStatus(ctx, id, status, from)
}

// failingActiveTripRepository returns Err from every call.
type failingActiveTripRepository struct {
	Err error
}

func (m *failingActiveTripRepository) ListActiveByGuide(ctx context.Context, guideID int64) ([]*domain.ActiveTripRow, error) {
	return nil, m.Err
}
