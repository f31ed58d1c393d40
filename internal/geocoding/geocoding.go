// Package geocoding resolves free-text locations to coordinates through the MapTiler geocoding API
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// Geocoder resolves a location to a point. A nil point means no match.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*models.Point, error)
}

// featureCollection is the subset of the MapTiler response that is read
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// mapTilerGeocoder implements Geocoder over the MapTiler forward geocoding endpoint
type mapTilerGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewMapTilerGeocoder creates a geocoder. When apiKey is empty every lookup returns no match.
func NewMapTilerGeocoder(baseURL, apiKey string, client *http.Client, logger *zap.Logger) Geocoder {
	if apiKey == "" {
		logger.Warn("geocoder API key is not set, campgrounds will be stored without geometry")
		return noopGeocoder{}
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &mapTilerGeocoder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

// Geocode returns the best match for location, nil when nothing matched.
// Transport failures and non-2xx answers are reported as models.ErrUpstream.
func (g *mapTilerGeocoder) Geocode(ctx context.Context, location string) (*models.Point, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s.json?%s", g.baseURL, url.PathEscape(location), url.Values{
		"key":   {g.apiKey},
		"limit": {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("geocoding request failed", zap.Error(err), zap.String("location", location))
		return nil, fmt.Errorf("geocoding request failed: %w", models.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.Error("geocoding service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
			zap.String("location", location),
		)
		return nil, fmt.Errorf("geocoding service returned status %d: %w", resp.StatusCode, models.ErrUpstream)
	}

	var result featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		g.logger.Error("failed to decode geocoding response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode geocoding response: %w", models.ErrUpstream)
	}

	for _, feature := range result.Features {
		coords := feature.Geometry.Coordinates
		if feature.Geometry.Type == "Point" && len(coords) >= 2 {
			return &models.Point{Longitude: coords[0], Latitude: coords[1]}, nil
		}
	}

	return nil, nil
}

// noopGeocoder never matches
type noopGeocoder struct{}

func (noopGeocoder) Geocode(ctx context.Context, location string) (*models.Point, error) {
	return nil, nil
}
