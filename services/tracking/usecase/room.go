package usecase

import (
	"sync"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// Room is the per-order isolation unit. All state mutations are
// serialized by the room mutex (single-writer discipline); one room's
// update never blocks another room.
//
// The routing call is deliberately kept outside the mutex: Accept stores
// the sample and returns a generation token, the caller resolves the ETA
// unlocked, and ApplyEstimate commits the result only if no newer sample
// has superseded it in the meantime.
type Room struct {
	mu sync.Mutex

	orderID     string
	destination models.Coordinate

	participants  map[string]tracking.Participant
	shipperConnID string

	lastLocation *models.LocationSample
	lastEstimate *models.RouteEstimate
	status       models.ShippingStatus
	closed       bool

	// generation counts accepted samples; a pending ETA carries the
	// generation of the sample it was computed for.
	generation uint64
}

// NewRoom creates a room for one order.
func NewRoom(orderID string, destination models.Coordinate, status models.ShippingStatus) *Room {
	return &Room{
		orderID:      orderID,
		destination:  destination,
		participants: make(map[string]tracking.Participant),
		status:       status,
		closed:       status.IsTerminal(),
	}
}

// OrderID returns the order this room tracks.
func (r *Room) OrderID() string {
	return r.orderID
}

// Destination returns the delivery endpoint coordinate.
func (r *Room) Destination() models.Coordinate {
	return r.destination
}

// Join adds a participant and returns the current state so the caller
// can reply with a snapshot. A joining shipper replaces the publisher
// binding; the invariant is one active publisher, and a reconnecting
// shipper app must be able to resume its own room.
func (r *Room) Join(p tracking.Participant) (*models.LocationSample, *models.RouteEstimate, models.ShippingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants[p.ID()] = p
	if p.Role() == models.RoleShipper {
		r.shipperConnID = p.ID()
	}

	return r.lastLocation, r.lastEstimate, r.status
}

// Leave removes a participant and reports whether the room is now empty.
func (r *Room) Leave(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.participants, connID)
	if r.shipperConnID == connID {
		r.shipperConnID = ""
	}

	return len(r.participants) == 0
}

// Empty reports whether the room has no participants. Taking the room
// mutex here guarantees disposal never races an in-flight update.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants) == 0
}

// Accept applies one location sample. Ordering is defined by capture
// time: a sample older than the current location is rejected with
// ErrStaleSample so a late-arriving report never regresses the displayed
// position. On acceptance the shipperMoved event is fanned out to
// viewers and the new generation is returned for the pending ETA.
func (r *Room) Accept(sample *models.LocationSample) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, tracking.ErrTrackingClosed
	}

	if r.lastLocation != nil && !sample.CapturedAt.After(r.lastLocation.CapturedAt) {
		logger.Debug("Discarding stale location sample",
			logger.String("order_id", r.orderID),
			logger.Time("sample_at", sample.CapturedAt),
			logger.Time("current_at", r.lastLocation.CapturedAt))
		return 0, tracking.ErrStaleSample
	}

	r.lastLocation = sample
	r.generation++

	r.notifyViewers(constants.EventShipperMoved, models.ShipperMovedEvent{
		OrderID:   r.orderID,
		Location:  sample.Coordinate,
		Timestamp: sample.CapturedAt,
	})

	return r.generation, nil
}

// ApplyEstimate commits the routing result for the sample identified by
// generation. A result that arrives after a newer sample was accepted is
// discarded; the newer sample's own resolution is already in flight.
// A nil estimate (routing unavailable) is fanned out as ETA unknown.
func (r *Room) ApplyEstimate(generation uint64, estimate *models.RouteEstimate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation {
		logger.Debug("Discarding superseded route estimate",
			logger.String("order_id", r.orderID))
		return false
	}

	r.lastEstimate = estimate

	r.notifyViewers(constants.EventUpdateETA, models.UpdateETAEvent{
		OrderID:   r.orderID,
		ETA:       estimate,
		Timestamp: models.Now(),
	})

	return true
}

// StatusChanged forwards an order-lifecycle transition to every
// participant. A terminal status closes the room for further location
// updates, but the room stays joinable until disposal so late viewers
// still see the final state.
func (r *Room) StatusChanged(status models.ShippingStatus, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status = status
	if status.IsTerminal() {
		r.closed = true
	}

	event := models.StatusChangedEvent{
		OrderID:   r.orderID,
		Status:    status,
		Message:   message,
		Timestamp: models.Now(),
	}
	for _, p := range r.participants {
		p.Notify(constants.EventStatusChanged, event)
	}
}

// Snapshot returns the room's current state.
func (r *Room) Snapshot() (*models.LocationSample, *models.RouteEstimate, models.ShippingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastLocation, r.lastEstimate, r.status
}

// notifyViewers fans an event out to viewer participants only. Callers
// hold the room mutex; Participant.Notify must not block.
func (r *Room) notifyViewers(event string, payload interface{}) {
	for _, p := range r.participants {
		if p.Role() != models.RoleViewer {
			continue
		}
		p.Notify(event, payload)
	}
}
