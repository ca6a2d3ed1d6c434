package errors

import "net/http"

var (
	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	// ErrNoPlacesFound signals an empty query result, which is a valid
	// outcome distinct from a server failure.
	ErrNoPlacesFound = New(
		"NO_PLACES_FOUND",
		"No places found in the requested region",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Invalid place category",
		http.StatusBadRequest,
	)

	ErrAddressRequired = New(
		"ADDRESS_REQUIRED",
		"Address is required",
		http.StatusBadRequest,
	)

	ErrProviderError = New(
		"PROVIDER_ERROR",
		"Error fetching places from provider",
		http.StatusBadRequest,
	)

	ErrGeocodingFailed = New(
		"GEOCODING_FAILED",
		"Could not geocode address",
		http.StatusBadRequest,
	)

	ErrSyncInProgress = New(
		"SYNC_IN_PROGRESS",
		"A synchronization run is already in progress",
		http.StatusConflict,
	)

	ErrSyncFailed = New(
		"SYNC_FAILED",
		"Synchronization failed for all requested types",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
