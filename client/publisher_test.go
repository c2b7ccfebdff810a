package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// scriptedSource replays a fixed list of readings, then goes unavailable.
type scriptedSource struct {
	mu        sync.Mutex
	positions []*Position
	errs      []error
	calls     int
}

func (s *scriptedSource) Current(context.Context) (*Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.positions) {
		return s.positions[i], nil
	}
	return nil, ErrPositionUnavailable
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// postedSample mirrors the REST location payload.
type postedSample struct {
	OrderID   string             `json:"order_id"`
	Location  models.Coordinate  `json:"location"`
	Accuracy  float64            `json:"accuracy"`
	Vehicle   models.VehicleType `json:"vehicle"`
	Timestamp time.Time          `json:"timestamp"`
}

// trackingServer is a minimal REST endpoint recording posted samples.
type trackingServer struct {
	mu      sync.Mutex
	samples []postedSample
	eta     *models.RouteEstimate
	status  int
}

func (ts *trackingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracking/location" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		ts.mu.Lock()
		defer ts.mu.Unlock()

		if ts.status != 0 {
			w.WriteHeader(ts.status)
			return
		}

		var sample postedSample
		if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ts.samples = append(ts.samples, sample)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"order_id": sample.OrderID,
				"eta":      ts.eta,
			},
		})
	})
}

func (ts *trackingServer) posted() []postedSample {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]postedSample(nil), ts.samples...)
}

func newTestPublisher(serverURL string, source LocationSource, onEstimate func(*models.RouteEstimate), onError func(error)) *Publisher {
	p := NewPublisher(PublisherConfig{
		ServerURL:  serverURL,
		Token:      "test-token",
		OrderID:    "order-1",
		Vehicle:    models.VehicleBike,
		Interval:   10 * time.Millisecond,
		Source:     source,
		OnEstimate: onEstimate,
		OnError:    onError,
	})
	// No realtime endpoint in these tests; force the HTTP fallback.
	p.dial = func(context.Context, string, string, func(Event)) (*Session, error) {
		return nil, errors.New("no websocket in test")
	}
	return p
}

func TestPublisher_PublishesOverRESTFallback(t *testing.T) {
	// Arrange
	ts := &trackingServer{eta: &models.RouteEstimate{DurationSeconds: 600, DisplayText: "10 phút"}}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	source := &scriptedSource{positions: []*Position{
		{Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}, AccuracyMeters: 5},
		{Coordinate: models.Coordinate{Latitude: 10.8423, Longitude: 106.8095}, AccuracyMeters: 5},
	}}

	estimates := make(chan *models.RouteEstimate, 8)
	p := newTestPublisher(server.URL, source, func(eta *models.RouteEstimate) { estimates <- eta }, nil)

	// Act
	require.NoError(t, p.Start())

	var first *models.RouteEstimate
	select {
	case first = <-estimates:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an estimate")
	}
	p.Stop()

	// Assert
	require.NotNil(t, first)
	assert.Equal(t, "10 phút", first.DisplayText)
	samples := ts.posted()
	require.NotEmpty(t, samples)
	assert.Equal(t, "order-1", samples[0].OrderID)
	assert.Equal(t, models.VehicleBike, samples[0].Vehicle)
	assert.False(t, samples[0].Timestamp.IsZero())
}

func TestPublisher_StartAndStopAreIdempotent(t *testing.T) {
	ts := &trackingServer{}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	p := newTestPublisher(server.URL, &scriptedSource{}, nil, nil)

	require.NoError(t, p.Start())
	require.NoError(t, p.Start())
	p.Stop()
	p.Stop()
}

func TestPublisher_PermissionDeniedStopsPublishing(t *testing.T) {
	// Arrange
	ts := &trackingServer{}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	source := &scriptedSource{errs: []error{ErrPermissionDenied}}
	errs := make(chan error, 8)
	p := newTestPublisher(server.URL, source, nil, func(err error) { errs <- err })

	// Act
	require.NoError(t, p.Start())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrPermissionDenied)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for permission error")
	}

	// The loop must have stopped sampling on its own.
	time.Sleep(50 * time.Millisecond)
	calls := source.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, source.callCount())

	p.Stop()
	assert.Empty(t, ts.posted())
}

func TestPublisher_PositionUnavailableSkipsTick(t *testing.T) {
	// Arrange
	ts := &trackingServer{}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	source := &scriptedSource{
		errs:      []error{ErrPositionUnavailable, nil},
		positions: []*Position{nil, {Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}}},
	}
	errs := make(chan error, 8)
	p := newTestPublisher(server.URL, source, nil, func(err error) { errs <- err })

	// Act
	require.NoError(t, p.Start())
	assert.Eventually(t, func() bool {
		return len(ts.posted()) >= 1
	}, 2*time.Second, 10*time.Millisecond)
	p.Stop()

	// Assert: the gap tick published nothing but was reported, the
	// next one published.
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrPositionUnavailable)
	default:
		t.Fatal("position gap was not reported")
	}
	samples := ts.posted()
	require.NotEmpty(t, samples)
	assert.InDelta(t, 10.8414, samples[0].Location.Latitude, 1e-9)
}

func TestPublisher_TrackingClosedStops(t *testing.T) {
	// Arrange: the order was delivered; the server answers 410.
	ts := &trackingServer{status: http.StatusGone}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	source := &scriptedSource{positions: []*Position{
		{Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}},
	}}
	errs := make(chan error, 8)
	p := newTestPublisher(server.URL, source, nil, func(err error) { errs <- err })

	// Act
	require.NoError(t, p.Start())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrTrackingClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tracking closed error")
	}

	// Assert: the loop stopped sampling on its own.
	time.Sleep(50 * time.Millisecond)
	calls := source.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, source.callCount())
	p.Stop()
}

func TestPublisher_SessionExpiredStops(t *testing.T) {
	ts := &trackingServer{status: http.StatusUnauthorized}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	source := &scriptedSource{positions: []*Position{
		{Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}},
	}}
	errs := make(chan error, 8)
	p := newTestPublisher(server.URL, source, nil, func(err error) { errs <- err })

	require.NoError(t, p.Start())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrSessionExpired)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session error")
	}
	p.Stop()
}
