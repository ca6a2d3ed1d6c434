package repository

import (
	"context"

	"github.com/place-service/internal/domain"
)

// PlacesProvider defines methods for the external mapping provider.
type PlacesProvider interface {
	// SearchPage fetches one page of a nearby search for a single
	// place type and returns the normalized places plus the
	// continuation token for the next page ("" when exhausted).
	// pageToken is empty for the first page of a type.
	SearchPage(ctx context.Context, center domain.GeoPoint, radiusMeters int, placeType, pageToken string) ([]*domain.Place, string, error)

	// Geocode resolves a free-form address to its best-match
	// coordinates and canonical address string.
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)
}
