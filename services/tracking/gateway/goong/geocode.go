package goong

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a shipping address to a coordinate. Used once per
// order when its room is first created; the usecase caches the result.
func (c *Client) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/v2/geocode?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocode status %d", tracking.ErrRoutingUnavailable, resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrRoutingUnavailable, err)
	}

	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: address not found", tracking.ErrRoutingUnavailable)
	}

	loc := payload.Results[0].Geometry.Location
	coord := &models.Coordinate{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}
	if !coord.Valid() {
		return nil, fmt.Errorf("%w: geocode returned invalid coordinate", tracking.ErrRoutingUnavailable)
	}
	return coord, nil
}
