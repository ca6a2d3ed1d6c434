package usecase

import (
	"context"
	"strings"

	"github.com/place-service/internal/config"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/domain/repository"
	"github.com/place-service/internal/pkg/errors"
	"github.com/place-service/internal/pkg/utils"
	"github.com/place-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// nearbyLimit caps nearby-search results.
const nearbyLimit = 5

// parseCategories splits a comma-separated category filter and
// validates each entry. An empty filter means no filtering.
func parseCategories(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		category, err := domain.ParseCategory(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.ErrInvalidCategory
		}
		categories = append(categories, category)
	}
	return categories, nil
}

type PlaceUseCase struct {
	placeRepo repository.PlaceRepository
	provider  repository.PlacesProvider
	region    config.RegionConfig
	logger    *zap.Logger
}

func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	provider repository.PlacesProvider,
	region config.RegionConfig,
	logger *zap.Logger,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo: placeRepo,
		provider:  provider,
		region:    region,
		logger:    logger,
	}
}

func (uc *PlaceUseCase) Create(ctx context.Context, req dto.CreatePlaceRequest) (*domain.Place, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, errors.ErrInvalidCategory
	}

	location := domain.NewGeoPoint(*req.Longitude, *req.Latitude)
	if err := location.Validate(); err != nil {
		return nil, errors.ErrInvalidCoordinates
	}

	place := &domain.Place{
		Name:     strings.TrimSpace(req.Name),
		Category: category,
		Location: location,
	}

	created, err := uc.placeRepo.Create(ctx, place)
	if err != nil {
		uc.logger.Error("Failed to create place", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (uc *PlaceUseCase) GetAll(ctx context.Context) (*dto.PlacesResponse, error) {
	places, err := uc.placeRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list places", zap.Error(err))
		return nil, err
	}
	return &dto.PlacesResponse{Places: places, Total: len(places)}, nil
}

func (uc *PlaceUseCase) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	return uc.placeRepo.GetByID(ctx, id)
}

// Update applies a partial update: omitted fields keep their stored
// values, and the location changes only when both coordinates were
// supplied.
func (uc *PlaceUseCase) Update(ctx context.Context, id string, req dto.UpdatePlaceRequest) (*domain.Place, error) {
	place, err := uc.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		place.Name = strings.TrimSpace(req.Name)
	}
	if req.Category != "" {
		category, err := domain.ParseCategory(req.Category)
		if err != nil {
			return nil, errors.ErrInvalidCategory
		}
		place.Category = category
	}
	if req.Longitude != nil && req.Latitude != nil {
		location := domain.NewGeoPoint(*req.Longitude, *req.Latitude)
		if err := location.Validate(); err != nil {
			return nil, errors.ErrInvalidCoordinates
		}
		place.Location = location
	}

	if err := uc.placeRepo.Update(ctx, place); err != nil {
		uc.logger.Error("Failed to update place", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return place, nil
}

func (uc *PlaceUseCase) Delete(ctx context.Context, id string) error {
	return uc.placeRepo.Delete(ctx, id)
}

// Nearby returns up to 5 places within the radius, closest first.
// Radius arrives in kilometers and is converted to the store's
// meter-based distance bound.
func (uc *PlaceUseCase) Nearby(ctx context.Context, req dto.NearbyRequest) (*dto.PlacesResponse, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	categories, err := parseCategories(req.Category)
	if err != nil {
		return nil, err
	}

	center := domain.NewGeoPoint(req.Longitude, req.Latitude)
	radiusMeters := req.RadiusKm * 1000

	places, err := uc.placeRepo.GetNearby(ctx, center, radiusMeters, categories, nearbyLimit)
	if err != nil {
		uc.logger.Error("Failed to search nearby places", zap.Error(err))
		return nil, err
	}

	return &dto.PlacesResponse{Places: places, Total: len(places)}, nil
}

// Region lists every place in the configured service region, closest
// to the region center first. An empty result is reported as
// NO_PLACES_FOUND, distinct from a store failure.
func (uc *PlaceUseCase) Region(ctx context.Context, category string) (*dto.RegionResponse, error) {
	categories, err := parseCategories(category)
	if err != nil {
		return nil, err
	}

	center := domain.NewGeoPoint(uc.region.Lon, uc.region.Lat)
	radiusMeters := uc.region.RadiusKm * 1000

	places, err := uc.placeRepo.GetNearby(ctx, center, radiusMeters, categories, 0)
	if err != nil {
		uc.logger.Error("Failed to list region places",
			zap.String("region", uc.region.Name),
			zap.Error(err))
		return nil, err
	}

	if len(places) == 0 {
		return nil, errors.ErrNoPlacesFound
	}

	return &dto.RegionResponse{
		Region: uc.region.Name,
		Places: places,
		Total:  len(places),
	}, nil
}

// Distance returns the place with its spherical distance in meters
// from the reference point.
func (uc *PlaceUseCase) Distance(ctx context.Context, id string, req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	from := domain.NewGeoPoint(req.Longitude, req.Latitude)
	place, err := uc.placeRepo.GetWithDistance(ctx, id, from)
	if err != nil {
		return nil, err
	}

	var distance float64
	if place.Distance != nil {
		distance = *place.Distance
	}
	return &dto.DistanceResponse{Place: place, Distance: distance}, nil
}

// Geocode resolves a free-form address through the provider. A
// missing address is a client error and never reaches the provider.
func (uc *PlaceUseCase) Geocode(ctx context.Context, address string) (*dto.GeocodeResponse, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.ErrAddressRequired
	}

	result, err := uc.provider.Geocode(ctx, address)
	if err != nil {
		uc.logger.Warn("Geocoding failed", zap.Error(err))
		return nil, err
	}

	return &dto.GeocodeResponse{
		Address:   result.Address,
		Longitude: result.Location.Lon(),
		Latitude:  result.Location.Lat(),
	}, nil
}
