package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/place-service/internal/config"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/domain/repository"
	"github.com/place-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	nearbySearchPath = "/place/nearbysearch/json"
	geocodePath      = "/geocode/json"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a Google Maps API client covering the nearby
// search and geocoding endpoints.
func NewClient(cfg *config.GoogleConfig, logger *zap.Logger) repository.PlacesProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// SearchPage fetches one nearby-search page for a single place type
// and normalizes the results into canonical place records. Provider
// coordinates arrive as (lat, lng) and are reordered to (lng, lat).
func (c *client) SearchPage(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters int,
	placeType string,
	pageToken string,
) ([]*domain.Place, string, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat(), center.Lon()))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	c.logger.Debug("Calling Places nearby search",
		zap.String("type", placeType),
		zap.Bool("has_page_token", pageToken != ""))

	var resp nearbySearchResponse
	if err := c.get(ctx, nearbySearchPath, params, &resp); err != nil {
		return nil, "", err
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		c.logger.Error("Places API returned non-OK status",
			zap.String("type", placeType),
			zap.String("status", resp.Status),
			zap.String("error_message", resp.ErrorMessage))
		return nil, "", errors.ErrProviderError.WithDetails(map[string]interface{}{
			"status":  resp.Status,
			"message": resp.ErrorMessage,
			"type":    placeType,
		})
	}

	category := domain.NormalizeProviderType(placeType)
	places := make([]*domain.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		externalID := r.PlaceID
		places = append(places, &domain.Place{
			Name:       r.Name,
			Category:   category,
			Location:   domain.NewGeoPoint(r.Geometry.Location.Lng, r.Geometry.Location.Lat),
			ExternalID: &externalID,
		})
	}

	return places, resp.NextPageToken, nil
}

// Geocode resolves an address to its best-match coordinates.
func (c *client) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.get(ctx, geocodePath, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK || len(resp.Results) == 0 {
		c.logger.Warn("Geocoding failed",
			zap.String("status", resp.Status),
			zap.String("error_message", resp.ErrorMessage))
		return nil, errors.ErrGeocodingFailed.WithDetails(map[string]interface{}{
			"status": resp.Status,
		})
	}

	best := resp.Results[0]
	return &domain.GeocodeResult{
		Address:  best.FormattedAddress,
		Location: domain.NewGeoPoint(best.Geometry.Location.Lng, best.Geometry.Location.Lat),
	}, nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Google Maps API returned HTTP error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("google maps API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
