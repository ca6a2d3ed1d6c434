package dto

import "github.com/place-service/internal/domain"

// PlacesResponse lists places with their count.
type PlacesResponse struct {
	Places []*domain.Place `json:"places"`
	Total  int             `json:"total"`
}

// DistanceResponse is a place with its spherical distance in meters
// from the requested reference point.
type DistanceResponse struct {
	Place    *domain.Place `json:"place"`
	Distance float64       `json:"distance"`
}

// GeocodeResponse is a resolved address.
type GeocodeResponse struct {
	Address   string  `json:"address"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// RegionResponse lists places in the fixed service region.
type RegionResponse struct {
	Region string          `json:"region"`
	Places []*domain.Place `json:"places"`
	Total  int             `json:"total"`
}
