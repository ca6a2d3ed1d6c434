package repository

import (
	"context"
	"time"

	"github.com/place-service/internal/domain"
)

// PlaceRepository defines store operations for places. The store must
// support 2D-sphere nearest-neighbor search and spherical distance
// computation; everything else is plain record access.
type PlaceRepository interface {
	// Create inserts a new place and returns it with its assigned ID.
	Create(ctx context.Context, place *domain.Place) (*domain.Place, error)

	// GetAll returns all places.
	GetAll(ctx context.Context) ([]*domain.Place, error)

	// GetByID returns a place by ID.
	GetByID(ctx context.Context, id string) (*domain.Place, error)

	// Update replaces the stored fields of an existing place.
	Update(ctx context.Context, place *domain.Place) error

	// Delete removes a place by ID.
	Delete(ctx context.Context, id string) error

	// GetNearby returns places within radiusMeters of center, ordered
	// by increasing spherical distance, optionally filtered to the
	// given categories. limit <= 0 means no result cap. Distance is
	// populated on every returned place.
	GetNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, categories []string, limit int) ([]*domain.Place, error)

	// GetWithDistance returns the place by ID with its spherical
	// distance in meters from the reference point.
	GetWithDistance(ctx context.Context, id string, from domain.GeoPoint) (*domain.Place, error)

	// UpsertExternal inserts or fully replaces a place keyed by its
	// external ID, stamping it as seen at syncedAt.
	UpsertExternal(ctx context.Context, place *domain.Place, syncedAt time.Time) error

	// SweepExternal deletes externally-sourced places not touched
	// since the given run start and returns the number removed.
	SweepExternal(ctx context.Context, syncedBefore time.Time) (int64, error)
}
