package dto

// CreatePlaceRequest creates a place from user-supplied fields.
// Coordinates arrive as separate longitude/latitude fields and are
// stored in canonical (longitude, latitude) order.
type CreatePlaceRequest struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Category  string   `json:"category" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
}

// UpdatePlaceRequest partially updates a place; omitted fields are
// preserved. Location changes only when both coordinates are present.
type UpdatePlaceRequest struct {
	Name      string   `json:"name" validate:"omitempty,min=1"`
	Category  string   `json:"category" validate:"omitempty"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
}

// NearbyRequest searches for places around a center point.
// Radius is in kilometers.
type NearbyRequest struct {
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Category  string  `json:"category" validate:"omitempty"`
	RadiusKm  float64 `json:"radius" validate:"required,min=0.1,max=100"`
}

// DistanceRequest computes the distance from a reference point to a
// stored place.
type DistanceRequest struct {
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
}
