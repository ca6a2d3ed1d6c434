package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/pkg/errors"
	"github.com/place-service/internal/usecase"
	"github.com/place-service/internal/usecase/dto"
)

func ptrFloat64(v float64) *float64 { return &v }

func newPlaceUseCase(repo *MockPlaceRepository, provider *MockPlacesProvider) *usecase.PlaceUseCase {
	return usecase.NewPlaceUseCase(repo, provider, testRegion(), zap.NewNop())
}

func TestPlaceUseCase_Create(t *testing.T) {
	t.Run("stores coordinates in longitude latitude order", func(t *testing.T) {
		repo := &MockPlaceRepository{}

		var captured *domain.Place
		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*domain.Place)
			}).
			Return(&domain.Place{ID: "id-1"}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Create(context.Background(), dto.CreatePlaceRequest{
			Name:      "Nile Cafe",
			Category:  "cafe",
			Longitude: ptrFloat64(32.2723),
			Latitude:  ptrFloat64(30.6043),
		})
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, [2]float64{32.2723, 30.6043}, captured.Location.Coordinates)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Create(context.Background(), dto.CreatePlaceRequest{
			Name:      "Somewhere",
			Category:  "bar",
			Longitude: ptrFloat64(32.0),
			Latitude:  ptrFloat64(30.0),
		})
		assert.Equal(t, errors.ErrInvalidCategory, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Create(context.Background(), dto.CreatePlaceRequest{
			Name:      "Nowhere",
			Category:  "cafe",
			Longitude: ptrFloat64(200),
			Latitude:  ptrFloat64(30.0),
		})
		assert.Equal(t, errors.ErrInvalidCoordinates, err)
	})
}

func TestPlaceUseCase_Update(t *testing.T) {
	existing := func() *domain.Place {
		return &domain.Place{
			ID:       "id-1",
			Name:     "Old Name",
			Category: domain.CategoryCafe,
			Location: domain.NewGeoPoint(32.27, 30.60),
		}
	}

	t.Run("omitted fields are preserved", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetByID", mock.Anything, "id-1").Return(existing(), nil)

		var updated *domain.Place
		repo.On("Update", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*domain.Place)
			}).Return(nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Update(context.Background(), "id-1", dto.UpdatePlaceRequest{
			Name: "New Name",
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, domain.CategoryCafe, updated.Category)
		assert.Equal(t, [2]float64{32.27, 30.60}, updated.Location.Coordinates)
	})

	t.Run("location changes only with both coordinates", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetByID", mock.Anything, "id-1").Return(existing(), nil)

		var updated *domain.Place
		repo.On("Update", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*domain.Place)
			}).Return(nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Update(context.Background(), "id-1", dto.UpdatePlaceRequest{
			Longitude: ptrFloat64(33.0),
		})
		require.NoError(t, err)
		assert.Equal(t, [2]float64{32.27, 30.60}, updated.Location.Coordinates)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetByID", mock.Anything, "missing").Return(nil, errors.ErrPlaceNotFound)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Update(context.Background(), "missing", dto.UpdatePlaceRequest{Name: "X"})
		assert.Equal(t, errors.ErrPlaceNotFound, err)
	})
}

func TestPlaceUseCase_Nearby(t *testing.T) {
	t.Run("converts radius from kilometers to meters", func(t *testing.T) {
		repo := &MockPlaceRepository{}

		center := domain.NewGeoPoint(32.2723, 30.6043)
		// radius=5 km must reach the store as a 5000 m bound, so a
		// record at 6000 m is excluded and one at 4000 m included.
		repo.On("GetNearby", mock.Anything, center, 5000.0, []string{"cafe"}, 5).
			Return([]*domain.Place{{ID: "near"}}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		result, err := uc.Nearby(context.Background(), dto.NearbyRequest{
			Longitude: 32.2723,
			Latitude:  30.6043,
			Category:  "cafe",
			RadiusKm:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		repo.AssertExpectations(t)
	})

	t.Run("splits comma-separated category filter", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetNearby", mock.Anything, mock.Anything, mock.Anything, []string{"cafe", "pharmacy"}, 5).
			Return([]*domain.Place{}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Nearby(context.Background(), dto.NearbyRequest{
			Longitude: 32.2723,
			Latitude:  30.6043,
			Category:  "cafe, pharmacy",
			RadiusKm:  5,
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown category in filter", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Nearby(context.Background(), dto.NearbyRequest{
			Longitude: 32.2723, Latitude: 30.6043, Category: "bar", RadiusKm: 5,
		})
		assert.Equal(t, errors.ErrInvalidCategory, err)
		repo.AssertNotCalled(t, "GetNearby",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid radius", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Nearby(context.Background(), dto.NearbyRequest{
			Longitude: 32.0, Latitude: 30.0, RadiusKm: 500,
		})
		assert.Equal(t, errors.ErrInvalidRadius, err)
		repo.AssertNotCalled(t, "GetNearby",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Nearby(context.Background(), dto.NearbyRequest{
			Longitude: 200, Latitude: 30.0, RadiusKm: 5,
		})
		assert.Equal(t, errors.ErrInvalidCoordinates, err)
	})
}

func TestPlaceUseCase_Region(t *testing.T) {
	t.Run("uses configured center and radius without cap", func(t *testing.T) {
		repo := &MockPlaceRepository{}

		center := domain.NewGeoPoint(32.2723, 30.6043)
		repo.On("GetNearby", mock.Anything, center, 20000.0, []string(nil), 0).
			Return([]*domain.Place{{ID: "a"}, {ID: "b"}}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		result, err := uc.Region(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "ismailia", result.Region)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("empty result is a distinct not-found signal", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*domain.Place{}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Region(context.Background(), "pharmacy")
		assert.Equal(t, errors.ErrNoPlacesFound, err)
	})

	t.Run("store failure stays a server error", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.ErrDatabaseError)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		_, err := uc.Region(context.Background(), "")
		assert.Equal(t, errors.ErrDatabaseError, err)
	})
}

func TestPlaceUseCase_Distance(t *testing.T) {
	t.Run("returns place with distance", func(t *testing.T) {
		repo := &MockPlaceRepository{}

		distance := 1234.5
		repo.On("GetWithDistance", mock.Anything, "id-1", domain.NewGeoPoint(32.0, 30.0)).
			Return(&domain.Place{ID: "id-1", Distance: &distance}, nil)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		result, err := uc.Distance(context.Background(), "id-1", dto.DistanceRequest{
			Longitude: 32.0, Latitude: 30.0,
		})
		require.NoError(t, err)
		assert.Equal(t, 1234.5, result.Distance)
	})

	t.Run("unknown id is not found, not a zero distance", func(t *testing.T) {
		repo := &MockPlaceRepository{}
		repo.On("GetWithDistance", mock.Anything, "missing", mock.Anything).
			Return(nil, errors.ErrPlaceNotFound)

		uc := newPlaceUseCase(repo, &MockPlacesProvider{})

		result, err := uc.Distance(context.Background(), "missing", dto.DistanceRequest{
			Longitude: 32.0, Latitude: 30.0,
		})
		assert.Equal(t, errors.ErrPlaceNotFound, err)
		assert.Nil(t, result)
	})
}

func TestPlaceUseCase_Geocode(t *testing.T) {
	t.Run("missing address never reaches the provider", func(t *testing.T) {
		provider := &MockPlacesProvider{}
		uc := newPlaceUseCase(&MockPlaceRepository{}, provider)

		_, err := uc.Geocode(context.Background(), "   ")
		assert.Equal(t, errors.ErrAddressRequired, err)
		provider.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("returns resolved coordinates", func(t *testing.T) {
		provider := &MockPlacesProvider{}
		provider.On("Geocode", mock.Anything, "Ismailia, Egypt").
			Return(&domain.GeocodeResult{
				Address:  "Ismailia, Ismailia Governorate, Egypt",
				Location: domain.NewGeoPoint(32.2723, 30.6043),
			}, nil)

		uc := newPlaceUseCase(&MockPlaceRepository{}, provider)

		result, err := uc.Geocode(context.Background(), "Ismailia, Egypt")
		require.NoError(t, err)
		assert.Equal(t, 32.2723, result.Longitude)
		assert.Equal(t, 30.6043, result.Latitude)
	})

	t.Run("resolution failure passes through", func(t *testing.T) {
		provider := &MockPlacesProvider{}
		provider.On("Geocode", mock.Anything, "nowhere").
			Return(nil, errors.ErrGeocodingFailed)

		uc := newPlaceUseCase(&MockPlaceRepository{}, provider)

		_, err := uc.Geocode(context.Background(), "nowhere")
		assert.Equal(t, errors.ErrGeocodingFailed, err)
	})
}
