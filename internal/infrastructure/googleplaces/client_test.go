package googleplaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/place-service/internal/config"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *client {
	logger, _ := zap.NewDevelopment()
	cfg := &config.GoogleConfig{
		APIKey:         "test_key",
		BaseURL:        baseURL,
		RequestTimeout: 5,
	}
	return NewClient(cfg, logger).(*client)
}

func TestClient_SearchPage(t *testing.T) {
	center := domain.NewGeoPoint(32.2723, 30.6043)

	t.Run("normalizes provider records", func(t *testing.T) {
		mockResp := nearbySearchResponse{
			Status:        "OK",
			NextPageToken: "token-2",
			Results: []placeResult{
				{
					Name:    "Koshary El Tahrir",
					PlaceID: "ChIJabc123",
					// Provider-native order: latitude first.
					Geometry: geometry{Location: latLng{Lat: 30.61, Lng: 32.28}},
				},
				{
					Name:     "City Pharmacy",
					PlaceID:  "ChIJdef456",
					Geometry: geometry{Location: latLng{Lat: 30.59, Lng: 32.26}},
				},
			},
		}

		var gotQuery map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResp)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		places, nextToken, err := c.SearchPage(context.Background(), center, 20000, "restaurant", "")
		require.NoError(t, err)
		assert.Equal(t, "token-2", nextToken)
		require.Len(t, places, 2)

		// Canonical order is (longitude, latitude).
		assert.Equal(t, [2]float64{32.28, 30.61}, places[0].Location.Coordinates)
		assert.Equal(t, "Koshary El Tahrir", places[0].Name)
		assert.Equal(t, domain.CategoryRestaurant, places[0].Category)
		require.NotNil(t, places[0].ExternalID)
		assert.Equal(t, "ChIJabc123", *places[0].ExternalID)

		// No page token on the first page; location is lat,lng.
		assert.Empty(t, gotQuery["pagetoken"])
		assert.Equal(t, "20000", gotQuery["radius"][0])
		assert.Contains(t, gotQuery["location"][0], "30.6043")
	})

	t.Run("sends continuation token", func(t *testing.T) {
		var gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("pagetoken")
			json.NewEncoder(w).Encode(nearbySearchResponse{Status: "OK"})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, nextToken, err := c.SearchPage(context.Background(), center, 20000, "cafe", "token-2")
		require.NoError(t, err)
		assert.Equal(t, "token-2", gotToken)
		assert.Empty(t, nextToken)
	})

	t.Run("unknown type maps to other", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(nearbySearchResponse{
				Status: "OK",
				Results: []placeResult{
					{Name: "Suez Canal Museum", PlaceID: "ChIJxyz789"},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		places, _, err := c.SearchPage(context.Background(), center, 20000, "tourist_attraction", "")
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, domain.CategoryOther, places[0].Category)
	})

	t.Run("zero results is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(nearbySearchResponse{Status: "ZERO_RESULTS"})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		places, nextToken, err := c.SearchPage(context.Background(), center, 20000, "pharmacy", "")
		require.NoError(t, err)
		assert.Empty(t, places)
		assert.Empty(t, nextToken)
	})

	t.Run("non-OK status surfaces provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(nearbySearchResponse{
				Status:       "REQUEST_DENIED",
				ErrorMessage: "The provided API key is invalid.",
			})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, _, err := c.SearchPage(context.Background(), center, 20000, "cafe", "")
		require.Error(t, err)

		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "PROVIDER_ERROR", appErr.Code)
		assert.Equal(t, "REQUEST_DENIED", appErr.Details["status"])
	})

	t.Run("http error is a transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, _, err := c.SearchPage(context.Background(), center, 20000, "cafe", "")
		require.Error(t, err)
		_, ok := err.(*errors.AppError)
		assert.False(t, ok, "transport failures are not provider-status errors")
	})
}

func TestClient_Geocode(t *testing.T) {
	t.Run("resolves best match", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Ismailia, Egypt", r.URL.Query().Get("address"))
			json.NewEncoder(w).Encode(geocodeResponse{
				Status: "OK",
				Results: []geocodeResult{
					{
						FormattedAddress: "Ismailia, Ismailia Governorate, Egypt",
						Geometry:         geometry{Location: latLng{Lat: 30.6043, Lng: 32.2723}},
					},
					{
						FormattedAddress: "Somewhere else",
						Geometry:         geometry{Location: latLng{Lat: 1, Lng: 1}},
					},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		result, err := c.Geocode(context.Background(), "Ismailia, Egypt")
		require.NoError(t, err)
		assert.Equal(t, "Ismailia, Ismailia Governorate, Egypt", result.Address)
		assert.Equal(t, 32.2723, result.Location.Lon())
		assert.Equal(t, 30.6043, result.Location.Lat())
	})

	t.Run("zero results is a resolution failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(geocodeResponse{Status: "ZERO_RESULTS"})
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, err := c.Geocode(context.Background(), "xxxxxxxx")
		require.Error(t, err)

		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "GEOCODING_FAILED", appErr.Code)
	})
}
