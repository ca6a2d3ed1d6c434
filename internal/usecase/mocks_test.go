package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/place-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockPlaceRepository is a mock of PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *domain.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, categories []string, limit int) ([]*domain.Place, error) {
	args := m.Called(ctx, center, radiusMeters, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetWithDistance(ctx context.Context, id string, from domain.GeoPoint) (*domain.Place, error) {
	args := m.Called(ctx, id, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) UpsertExternal(ctx context.Context, place *domain.Place, syncedAt time.Time) error {
	args := m.Called(ctx, place, syncedAt)
	return args.Error(0)
}

func (m *MockPlaceRepository) SweepExternal(ctx context.Context, syncedBefore time.Time) (int64, error) {
	args := m.Called(ctx, syncedBefore)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlacesProvider is a mock of PlacesProvider
type MockPlacesProvider struct {
	mock.Mock
}

func (m *MockPlacesProvider) SearchPage(ctx context.Context, center domain.GeoPoint, radiusMeters int, placeType, pageToken string) ([]*domain.Place, string, error) {
	args := m.Called(ctx, center, radiusMeters, placeType, pageToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Place), args.String(1), args.Error(2)
}

func (m *MockPlacesProvider) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockSyncRepository is a mock of SyncRepository
type MockSyncRepository struct {
	mock.Mock
}

func (m *MockSyncRepository) AcquireLock(ctx context.Context, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSyncRepository) ReleaseLock(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSyncRepository) SetLastRun(ctx context.Context, result *domain.SyncResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockSyncRepository) GetLastRun(ctx context.Context) (*domain.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

// fakePlaceRepo is an in-memory store keyed by external ID, used where
// the test cares about reconciliation semantics rather than call
// expectations.
type fakePlaceRepo struct {
	mu         sync.Mutex
	byExternal map[string]*domain.Place
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{byExternal: make(map[string]*domain.Place)}
}

func (f *fakePlaceRepo) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	return place, nil
}

func (f *fakePlaceRepo) GetAll(ctx context.Context) ([]*domain.Place, error) { return nil, nil }

func (f *fakePlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	return nil, nil
}

func (f *fakePlaceRepo) Update(ctx context.Context, place *domain.Place) error { return nil }

func (f *fakePlaceRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePlaceRepo) GetNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, categories []string, limit int) ([]*domain.Place, error) {
	return nil, nil
}

func (f *fakePlaceRepo) GetWithDistance(ctx context.Context, id string, from domain.GeoPoint) (*domain.Place, error) {
	return nil, nil
}

func (f *fakePlaceRepo) UpsertExternal(ctx context.Context, place *domain.Place, syncedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *place
	f.byExternal[*place.ExternalID] = &copied
	return nil
}

func (f *fakePlaceRepo) SweepExternal(ctx context.Context, syncedBefore time.Time) (int64, error) {
	return 0, nil
}
