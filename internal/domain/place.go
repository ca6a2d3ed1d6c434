package domain

import (
	"fmt"
	"math"
	"time"
)

// Place categories. External provider types outside this set are
// normalized to CategoryOther during synchronization.
const (
	CategoryCafe       = "cafe"
	CategoryRestaurant = "restaurant"
	CategoryPharmacy   = "pharmacy"
	CategoryOther      = "other"
)

// providerTypeMap maps provider place types to local categories.
var providerTypeMap = map[string]string{
	"cafe":               CategoryCafe,
	"restaurant":         CategoryRestaurant,
	"pharmacy":           CategoryPharmacy,
	"tourist_attraction": CategoryOther,
}

// Categories returns the fixed set of valid place categories.
func Categories() []string {
	return []string{CategoryCafe, CategoryRestaurant, CategoryPharmacy, CategoryOther}
}

// ParseCategory validates a user-supplied category. Unlike provider
// normalization, invalid values are rejected, not coerced.
func ParseCategory(s string) (string, error) {
	switch s {
	case CategoryCafe, CategoryRestaurant, CategoryPharmacy, CategoryOther:
		return s, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

// NormalizeProviderType maps a provider place type to a local category.
// Unknown types map to CategoryOther.
func NormalizeProviderType(providerType string) string {
	if c, ok := providerTypeMap[providerType]; ok {
		return c
	}
	return CategoryOther
}

// GeoPoint is a GeoJSON-style point. Coordinates are always
// [longitude, latitude], in that order, on every interface.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from longitude and latitude.
func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: [2]float64{lon, lat},
	}
}

func (p GeoPoint) Lon() float64 { return p.Coordinates[0] }
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Validate checks that both coordinates are finite and in range.
func (p GeoPoint) Validate() error {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return fmt.Errorf("coordinates must be finite numbers")
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", lon)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", lat)
	}
	return nil
}

// Place is a point of interest. ExternalID is the provider's own key
// for externally-sourced records and is unique when present; locally
// created records have no ExternalID.
type Place struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Category   string   `json:"category" db:"category"`
	Location   GeoPoint `json:"location"`
	ExternalID *string  `json:"external_id,omitempty" db:"external_id"`

	// Distance in meters from the query reference point. Populated
	// only by distance and nearby queries.
	Distance *float64 `json:"distance,omitempty" db:"distance"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GeocodeResult is a resolved address with its best-match coordinates.
type GeocodeResult struct {
	Address  string   `json:"address"`
	Location GeoPoint `json:"location"`
}
