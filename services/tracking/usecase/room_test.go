package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// fakeParticipant records every event it was notified with.
type fakeParticipant struct {
	id   string
	role models.ParticipantRole

	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	event   string
	payload interface{}
}

func newFakeParticipant(id string, role models.ParticipantRole) *fakeParticipant {
	return &fakeParticipant{id: id, role: role}
}

func (p *fakeParticipant) ID() string                   { return p.id }
func (p *fakeParticipant) Role() models.ParticipantRole { return p.role }

func (p *fakeParticipant) Notify(event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{event: event, payload: payload})
}

func (p *fakeParticipant) recorded(event string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []recordedEvent
	for _, e := range p.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func sampleAt(orderID string, lat, lng float64, at time.Time) *models.LocationSample {
	return &models.LocationSample{
		OrderID:    orderID,
		Coordinate: models.Coordinate{Latitude: lat, Longitude: lng},
		CapturedAt: at,
		Vehicle:    models.VehicleBike,
	}
}

func TestRoom_AcceptOrdersByCaptureTime(t *testing.T) {
	// Arrange
	room := NewRoom("order-1", models.Coordinate{Latitude: 10.77, Longitude: 106.69}, models.StatusInTransit)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	older := sampleAt("order-1", 10.8414, 106.8101, base)
	newer := sampleAt("order-1", 10.8423, 106.8095, base.Add(10*time.Second))

	// Act: the newer sample arrives first, the older one late.
	_, err := room.Accept(newer)
	require.NoError(t, err)
	_, err = room.Accept(older)

	// Assert: the late arrival is rejected and state keeps the newer fix.
	assert.ErrorIs(t, err, tracking.ErrStaleSample)
	location, _, _ := room.Snapshot()
	assert.Equal(t, newer.Coordinate, location.Coordinate)
}

func TestRoom_AcceptRejectsEqualCaptureTime(t *testing.T) {
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := room.Accept(sampleAt("order-1", 10.84, 106.81, at))
	require.NoError(t, err)

	_, err = room.Accept(sampleAt("order-1", 10.85, 106.82, at))

	assert.ErrorIs(t, err, tracking.ErrStaleSample)
}

func TestRoom_FanOutReachesViewersOnly(t *testing.T) {
	// Arrange
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	shipper := newFakeParticipant("conn-shipper", models.RoleShipper)
	viewer := newFakeParticipant("conn-viewer", models.RoleViewer)
	room.Join(shipper)
	room.Join(viewer)

	// Act
	_, err := room.Accept(sampleAt("order-1", 10.8414, 106.8101, time.Now()))

	// Assert
	require.NoError(t, err)
	assert.Len(t, viewer.recorded(constants.EventShipperMoved), 1)
	assert.Empty(t, shipper.recorded(constants.EventShipperMoved))
}

func TestRoom_ApplyEstimateDiscardsSuperseded(t *testing.T) {
	// Arrange
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	viewer := newFakeParticipant("conn-viewer", models.RoleViewer)
	room.Join(viewer)
	base := time.Now()

	gen1, err := room.Accept(sampleAt("order-1", 10.84, 106.81, base))
	require.NoError(t, err)
	gen2, err := room.Accept(sampleAt("order-1", 10.85, 106.82, base.Add(time.Second)))
	require.NoError(t, err)

	staleEstimate := &models.RouteEstimate{DurationSeconds: 900, DisplayText: "15 phút"}
	freshEstimate := &models.RouteEstimate{DurationSeconds: 600, DisplayText: "10 phút"}

	// Act: the second sample's estimate lands first.
	applied2 := room.ApplyEstimate(gen2, freshEstimate)
	applied1 := room.ApplyEstimate(gen1, staleEstimate)

	// Assert: the superseded result is discarded and never fanned out.
	assert.True(t, applied2)
	assert.False(t, applied1)
	_, estimate, _ := room.Snapshot()
	assert.Equal(t, freshEstimate, estimate)
	etaEvents := viewer.recorded(constants.EventUpdateETA)
	require.Len(t, etaEvents, 1)
	assert.Equal(t, freshEstimate, etaEvents[0].payload.(models.UpdateETAEvent).ETA)
}

func TestRoom_ApplyEstimateFansOutNilOnRoutingFailure(t *testing.T) {
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	viewer := newFakeParticipant("conn-viewer", models.RoleViewer)
	room.Join(viewer)

	gen, err := room.Accept(sampleAt("order-1", 10.84, 106.81, time.Now()))
	require.NoError(t, err)

	room.ApplyEstimate(gen, nil)

	etaEvents := viewer.recorded(constants.EventUpdateETA)
	require.Len(t, etaEvents, 1)
	assert.Nil(t, etaEvents[0].payload.(models.UpdateETAEvent).ETA)
}

func TestRoom_JoinReturnsCurrentState(t *testing.T) {
	// Arrange
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	sample := sampleAt("order-1", 10.8414, 106.8101, time.Now())
	gen, err := room.Accept(sample)
	require.NoError(t, err)
	estimate := &models.RouteEstimate{DurationSeconds: 600, DisplayText: "10 phút"}
	room.ApplyEstimate(gen, estimate)

	// Act: a viewer joins after state exists.
	location, lastEstimate, status := room.Join(newFakeParticipant("conn-late", models.RoleViewer))

	// Assert
	assert.Equal(t, sample.Coordinate, location.Coordinate)
	assert.Equal(t, estimate, lastEstimate)
	assert.Equal(t, models.StatusInTransit, status)
}

func TestRoom_TerminalStatusClosesUpdates(t *testing.T) {
	// Arrange
	room := NewRoom("order-1", models.Coordinate{}, models.StatusOutForDelivery)
	shipper := newFakeParticipant("conn-shipper", models.RoleShipper)
	viewer := newFakeParticipant("conn-viewer", models.RoleViewer)
	room.Join(shipper)
	room.Join(viewer)

	// Act
	room.StatusChanged(models.StatusDelivered, "Package delivered")
	_, err := room.Accept(sampleAt("order-1", 10.84, 106.81, time.Now()))

	// Assert: both participants heard the transition, further samples
	// are refused, but the room stays joinable.
	assert.ErrorIs(t, err, tracking.ErrTrackingClosed)
	assert.Len(t, shipper.recorded(constants.EventStatusChanged), 1)
	assert.Len(t, viewer.recorded(constants.EventStatusChanged), 1)
	_, _, status := room.Join(newFakeParticipant("conn-late", models.RoleViewer))
	assert.Equal(t, models.StatusDelivered, status)
}

func TestRoom_LeaveReportsEmpty(t *testing.T) {
	room := NewRoom("order-1", models.Coordinate{}, models.StatusInTransit)
	a := newFakeParticipant("conn-a", models.RoleViewer)
	b := newFakeParticipant("conn-b", models.RoleViewer)
	room.Join(a)
	room.Join(b)

	assert.False(t, room.Leave("conn-a"))
	assert.True(t, room.Leave("conn-b"))
	assert.True(t, room.Empty())
}

func TestRegistry_GetOrCreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.GetOrCreate("order-1", func() (*Room, error) {
		return NewRoom("order-1", models.Coordinate{}, models.StatusInTransit), nil
	})
	require.NoError(t, err)

	second, err := reg.GetOrCreate("order-1", func() (*Room, error) {
		t.Fatal("create must not run for an existing room")
		return nil, nil
	})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_RemoveIfEmpty(t *testing.T) {
	reg := NewRegistry()
	room, err := reg.GetOrCreate("order-1", func() (*Room, error) {
		return NewRoom("order-1", models.Coordinate{}, models.StatusInTransit), nil
	})
	require.NoError(t, err)

	// An occupied room survives eviction attempts.
	room.Join(newFakeParticipant("conn-a", models.RoleViewer))
	reg.RemoveIfEmpty("order-1")
	assert.Equal(t, 1, reg.Len())

	room.Leave("conn-a")
	reg.RemoveIfEmpty("order-1")
	assert.Equal(t, 0, reg.Len())
}
