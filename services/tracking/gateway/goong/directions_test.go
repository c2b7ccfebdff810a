package goong

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

func newTestClient(serverURL string) *Client {
	return NewClient(models.GoongConfig{
		BaseURL:        serverURL,
		APIKey:         "test-key",
		TimeoutSeconds: 2,
	})
}

func TestDirections_Success(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/direction", r.URL.Path)
		assert.Equal(t, "10.841400,106.810100", r.URL.Query().Get("origin"))
		assert.Equal(t, "10.850800,106.771700", r.URL.Query().Get("destination"))
		assert.Equal(t, "bike", r.URL.Query().Get("vehicle"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"routes": [{
				"legs": [{
					"distance": {"text": "5.2 km", "value": 5200},
					"duration": {"text": "10 mins", "value": 600}
				}],
				"overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	origin := models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}
	destination := models.Coordinate{Latitude: 10.8508, Longitude: 106.7717}

	// Act
	estimate, err := client.Directions(context.Background(), origin, destination, models.VehicleBike)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5200, estimate.DistanceMeters)
	assert.Equal(t, 600, estimate.DurationSeconds)
	assert.Equal(t, "10 phút", estimate.DisplayText)
	assert.Equal(t, "5.2 km", estimate.DistanceText)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", estimate.EncodedGeometry)
}

func TestDirections_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Directions(context.Background(), models.Coordinate{Latitude: 10.84, Longitude: 106.81},
		models.Coordinate{Latitude: 10.85, Longitude: 106.77}, models.VehicleBike)

	assert.ErrorIs(t, err, tracking.ErrRoutingUnavailable)
}

func TestDirections_NoRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Directions(context.Background(), models.Coordinate{Latitude: 10.84, Longitude: 106.81},
		models.Coordinate{Latitude: 10.85, Longitude: 106.77}, models.VehicleBike)

	assert.ErrorIs(t, err, tracking.ErrRoutingUnavailable)
}

func TestDirections_MalformedGeometryDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"routes": [{
				"legs": [{
					"distance": {"text": "5.2 km", "value": 5200},
					"duration": {"text": "10 mins", "value": 600}
				}],
				"overview_polyline": {"points": "_p~iF"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	estimate, err := client.Directions(context.Background(), models.Coordinate{Latitude: 10.84, Longitude: 106.81},
		models.Coordinate{Latitude: 10.85, Longitude: 106.77}, models.VehicleBike)

	// The numeric estimate survives, the corrupt geometry does not.
	require.NoError(t, err)
	assert.Equal(t, 600, estimate.DurationSeconds)
	assert.Empty(t, estimate.EncodedGeometry)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 30, want: "1 phút"},
		{seconds: 600, want: "10 phút"},
		{seconds: 601, want: "11 phút"},
		{seconds: 629, want: "11 phút"},
		{seconds: 631, want: "11 phút"},
		{seconds: 3600, want: "1 giờ 0 phút"},
		{seconds: 5100, want: "1 giờ 25 phút"},
		{seconds: 7260, want: "2 giờ 1 phút"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters int
		want   string
	}{
		{meters: 0, want: "0 m"},
		{meters: 850, want: "850 m"},
		{meters: 999, want: "999 m"},
		{meters: 1000, want: "1.0 km"},
		{meters: 5200, want: "5.2 km"},
		{meters: 12345, want: "12.3 km"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters), "meters=%d", tt.meters)
	}
}

func TestGeocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/geocode", r.URL.Path)
		assert.Equal(t, "1 Võ Văn Ngân, Thủ Đức", r.URL.Query().Get("address"))

		w.Write([]byte(`{"results": [{"geometry": {"location": {"lat": 10.8508, "lng": 106.7717}}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	coord, err := client.Geocode(context.Background(), "1 Võ Văn Ngân, Thủ Đức")

	require.NoError(t, err)
	assert.InDelta(t, 10.8508, coord.Latitude, 1e-9)
	assert.InDelta(t, 106.7717, coord.Longitude, 1e-9)
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Geocode(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, tracking.ErrRoutingUnavailable)
}
