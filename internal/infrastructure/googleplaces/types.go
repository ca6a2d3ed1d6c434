package googleplaces

// nearbySearchResponse mirrors the provider's nearby-search payload.
type nearbySearchResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	Results       []placeResult `json:"results"`
}

type placeResult struct {
	Name     string   `json:"name"`
	PlaceID  string   `json:"place_id"`
	Geometry geometry `json:"geometry"`
	Types    []string `json:"types,omitempty"`
	Vicinity string   `json:"vicinity,omitempty"`
}

type geometry struct {
	Location latLng `json:"location"`
}

// latLng is the provider-native coordinate pair: latitude first,
// unlike the canonical (longitude, latitude) order used everywhere
// else in this service.
type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// geocodeResponse mirrors the provider's geocoding payload.
type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
}
