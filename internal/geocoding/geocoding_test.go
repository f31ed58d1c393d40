package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

func TestMapTilerGeocoder_Geocode(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		location      string
		expected      *models.Point
		expectedError error
	}{
		{
			name: "first feature",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/Yosemite, CA.json", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"type":"FeatureCollection","features":[
					{"center":[-119.5,37.8],"geometry":{"type":"Point","coordinates":[-119.5,37.8]}}
				]}`))
			},
			location: "Yosemite, CA",
			expected: &models.Point{Longitude: -119.5, Latitude: 37.8},
		},
		{
			name: "no match",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
			},
			location: "Atlantis",
		},
		{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message":"Invalid key"}`))
			},
			location:      "Yosemite",
			expectedError: models.ErrUpstream,
		},
		{
			name: "garbage response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			location:      "Yosemite",
			expectedError: models.ErrUpstream,
		},
		{
			name: "blank location",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no request expected for a blank location")
			},
			location: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			geocoder := NewMapTilerGeocoder(server.URL+"/", "test-key", server.Client(), zap.NewNop())

			point, err := geocoder.Geocode(context.Background(), tt.location)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, point)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, point)
		})
	}
}

func TestMapTilerGeocoder_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	geocoder := NewMapTilerGeocoder(url, "test-key", nil, zap.NewNop())

	_, err := geocoder.Geocode(context.Background(), "Yosemite")
	assert.ErrorIs(t, err, models.ErrUpstream)
}

func TestNewMapTilerGeocoder_NoKey(t *testing.T) {
	geocoder := NewMapTilerGeocoder("https://api.maptiler.com/geocoding", "", nil, zap.NewNop())

	point, err := geocoder.Geocode(context.Background(), "Yosemite")
	assert.NoError(t, err)
	assert.Nil(t, point)
}
