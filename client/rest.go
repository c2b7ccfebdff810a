package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// RESTClient is the HTTP fallback transport, mirroring the channel's
// updateLocation and snapshot operations.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRESTClient creates a REST transport against the tracking service.
func NewRESTClient(baseURL, token string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type restEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type locationReply struct {
	OrderID string                `json:"order_id"`
	ETA     *models.RouteEstimate `json:"eta"`
}

// UpdateLocation posts one sample over HTTP. The reply carries the
// estimate computed for it, nil when routing was unavailable.
func (c *RESTClient) UpdateLocation(ctx context.Context, sample *models.LocationSample) (*models.RouteEstimate, error) {
	body := map[string]interface{}{
		"order_id":  sample.OrderID,
		"location":  sample.Coordinate,
		"accuracy":  sample.AccuracyMeters,
		"vehicle":   sample.Vehicle,
		"timestamp": sample.CapturedAt,
	}

	var reply locationReply
	if err := c.do(ctx, http.MethodPost, "/tracking/location", body, &reply); err != nil {
		return nil, err
	}
	return reply.ETA, nil
}

// GetTrackingInfo fetches the snapshot for an order.
func (c *RESTClient) GetTrackingInfo(ctx context.Context, orderID string) (*models.TrackingInfo, error) {
	var info models.TrackingInfo
	if err := c.do(ctx, http.MethodGet, "/tracking/order/"+orderID, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}

	var envelope restEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrSessionExpired
	case code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrTrackingNotReady
	case code == http.StatusConflict:
		return ErrStaleSample
	case code == http.StatusGone:
		return ErrTrackingClosed
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
