package goong

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/internal/pkg/polyline"
	"github.com/vietship/shiptrack/services/tracking"
)

// directionsResponse mirrors the subset of the Goong Directions v2
// payload this service reads.
type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// Directions asks the routing provider for the best route from the
// shipper's position to the destination and returns the distance,
// duration, display text and route geometry. Any provider failure maps
// to ErrRoutingUnavailable; callers degrade to ETA unknown.
func (c *Client) Directions(ctx context.Context, origin, destination models.Coordinate, vehicle models.VehicleType) (*models.RouteEstimate, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude))
	params.Set("vehicle", string(vehicle))
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/v2/direction?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directions request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", tracking.ErrRoutingUnavailable, resp.StatusCode)
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrRoutingUnavailable, err)
	}

	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: no route found", tracking.ErrRoutingUnavailable)
	}

	route := payload.Routes[0]
	leg := route.Legs[0]

	estimate := &models.RouteEstimate{
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
		DisplayText:     FormatDuration(leg.Duration.Value),
		DistanceText:    FormatDistance(leg.Distance.Value),
		EncodedGeometry: route.OverviewPolyline.Points,
	}

	// A geometry the provider corrupted must not reach clients; the
	// numeric estimate is still good.
	if estimate.EncodedGeometry != "" {
		if _, err := polyline.Decode(estimate.EncodedGeometry); err != nil {
			logger.Warn("Dropping malformed route geometry",
				logger.Err(err))
			estimate.EncodedGeometry = ""
		}
	}

	return estimate, nil
}

// FormatDuration renders a duration in seconds the way the mobile apps
// display it, e.g. "10 phút" or "1 giờ 25 phút". Partial minutes round
// up: an arrival 601 seconds away is 11 minutes, not 10.
func FormatDuration(seconds int) string {
	minutes := (seconds + 59) / 60
	if minutes < 1 {
		minutes = 1
	}
	if minutes < 60 {
		return fmt.Sprintf("%d phút", minutes)
	}
	return fmt.Sprintf("%d giờ %d phút", minutes/60, minutes%60)
}

// FormatDistance renders a distance in meters as "850 m" below one
// kilometer and "5.2 km" at or above it.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
