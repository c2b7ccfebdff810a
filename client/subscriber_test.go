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

// snapshotServer serves GET /tracking/order/:id from a mutable snapshot.
type snapshotServer struct {
	mu   sync.Mutex
	info *models.TrackingInfo
}

func (ss *snapshotServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ss.mu.Lock()
		info := ss.info
		ss.mu.Unlock()

		if info == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    info,
		})
	})
}

func (ss *snapshotServer) set(info *models.TrackingInfo) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.info = info
}

func newTestSubscriber(serverURL string) *Subscriber {
	s := NewSubscriber(SubscriberConfig{
		ServerURL:      serverURL,
		Token:          "test-token",
		OrderID:        "order-1",
		PollInterval:   10 * time.Millisecond,
		StaleThreshold: 5 * time.Minute,
	})
	// No realtime endpoint in these tests; the subscriber must live on
	// REST polling.
	s.dial = func(context.Context, string, string, func(Event)) (*Session, error) {
		return nil, errors.New("no websocket in test")
	}
	return s
}

func collectUntil(t *testing.T, events <-chan Event, match func(Event) bool) Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event stream closed before expected event")
			}
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestSubscriber_PollingDeliversSnapshotEvents(t *testing.T) {
	// Arrange
	ss := &snapshotServer{}
	ss.set(&models.TrackingInfo{
		OrderID:        "order-1",
		ShippingStatus: models.StatusInTransit,
		CurrentLocation: &models.LocationSample{
			OrderID:    "order-1",
			Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
			CapturedAt: time.Now().UTC(),
		},
		ETA: &models.RouteEstimate{DistanceMeters: 5200, DurationSeconds: 600, DisplayText: "10 phút"},
	})
	server := httptest.NewServer(ss.handler())
	defer server.Close()

	sub := newTestSubscriber(server.URL)

	// Act
	require.NoError(t, sub.Start())
	defer sub.Stop()

	// Assert: polling synthesizes the same events the channel pushes.
	loc := collectUntil(t, sub.Events(), func(ev Event) bool {
		_, ok := ev.(LocationChanged)
		return ok
	}).(LocationChanged)
	assert.InDelta(t, 10.8414, loc.Location.Latitude, 1e-9)

	eta := collectUntil(t, sub.Events(), func(ev Event) bool {
		_, ok := ev.(EtaChanged)
		return ok
	}).(EtaChanged)
	require.NotNil(t, eta.ETA)
	assert.Equal(t, "10 phút", eta.ETA.DisplayText)

	status := collectUntil(t, sub.Events(), func(ev Event) bool {
		_, ok := ev.(StatusChanged)
		return ok
	}).(StatusChanged)
	assert.Equal(t, models.StatusInTransit, status.Status)
}

func TestSubscriber_PollingPicksUpNewerLocation(t *testing.T) {
	// Arrange
	base := time.Now().UTC()
	ss := &snapshotServer{}
	ss.set(&models.TrackingInfo{
		OrderID:        "order-1",
		ShippingStatus: models.StatusInTransit,
		CurrentLocation: &models.LocationSample{
			Coordinate: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
			CapturedAt: base,
		},
	})
	server := httptest.NewServer(ss.handler())
	defer server.Close()

	sub := newTestSubscriber(server.URL)
	require.NoError(t, sub.Start())
	defer sub.Stop()

	collectUntil(t, sub.Events(), func(ev Event) bool {
		_, ok := ev.(LocationChanged)
		return ok
	})

	// Act: the shipper moves.
	ss.set(&models.TrackingInfo{
		OrderID:        "order-1",
		ShippingStatus: models.StatusInTransit,
		CurrentLocation: &models.LocationSample{
			Coordinate: models.Coordinate{Latitude: 10.8423, Longitude: 106.8095},
			CapturedAt: base.Add(10 * time.Second),
		},
	})

	// Assert
	moved := collectUntil(t, sub.Events(), func(ev Event) bool {
		loc, ok := ev.(LocationChanged)
		return ok && loc.At.After(base)
	}).(LocationChanged)
	assert.InDelta(t, 10.8423, moved.Location.Latitude, 1e-9)
}

func TestSubscriber_StartAndStopAreIdempotent(t *testing.T) {
	ss := &snapshotServer{}
	server := httptest.NewServer(ss.handler())
	defer server.Close()

	sub := newTestSubscriber(server.URL)

	require.NoError(t, sub.Start())
	require.NoError(t, sub.Start())
	sub.Stop()
	sub.Stop()

	// The stream closes exactly once, on the first Stop.
	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestSubscriber_IsLocationStale(t *testing.T) {
	// Arrange: clock injected, no transports involved.
	sub := NewSubscriber(SubscriberConfig{
		ServerURL:      "http://unused",
		Token:          "t",
		OrderID:        "order-1",
		StaleThreshold: 5 * time.Minute,
	})

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sub.now = func() time.Time { return now }

	// No location yet.
	assert.True(t, sub.IsLocationStale())

	sub.emit(LocationChanged{OrderID: "order-1", At: now.Add(-time.Minute)})
	assert.False(t, sub.IsLocationStale())

	// Act: time passes with no further events.
	now = now.Add(10 * time.Minute)

	// Assert: staleness is recomputed per call, not event driven.
	assert.True(t, sub.IsLocationStale())
}

func TestSubscriber_OutOfOrderLocationEventsDropped(t *testing.T) {
	sub := NewSubscriber(SubscriberConfig{
		ServerURL: "http://unused",
		Token:     "t",
		OrderID:   "order-1",
	})

	base := time.Now()
	sub.emit(LocationChanged{OrderID: "order-1", At: base})
	sub.emit(LocationChanged{OrderID: "order-1", At: base.Add(-time.Second)})

	assert.Len(t, sub.Events(), 1)
}
