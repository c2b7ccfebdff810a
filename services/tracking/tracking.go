package tracking

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/vietship/shiptrack/services/tracking TrackingUC

// Participant is one connection's presence inside a tracking room. The
// WebSocket gateway adapts its connections to this interface; tests use
// in-memory fakes.
type Participant interface {
	// ID is the connection identifier, unique per participant.
	ID() string
	// Role distinguishes the publishing shipper from subscribed viewers.
	Role() models.ParticipantRole
	// Notify delivers a room event. Must not block the room; slow or
	// dead receivers drop, they do not stall siblings.
	Notify(event string, payload interface{})
}

// Subject is the authenticated identity behind a request or connection.
type Subject struct {
	UserID string
	Role   string
}

// TrackingUC is the tracking usecase interface shared by the HTTP,
// WebSocket and NATS handlers.
type TrackingUC interface {
	// JoinRoom authorizes the subject for the order, joins its room
	// (creating it lazily) and returns the current snapshot, which is
	// non-empty whenever the room already holds state.
	JoinRoom(ctx context.Context, sub Subject, orderID string, role models.ParticipantRole, p Participant) (*models.TrackingInfo, error)

	// LeaveRoom removes the participant; an empty room is disposed.
	LeaveRoom(ctx context.Context, orderID, connID string) error

	// UpdateLocation runs the full pipeline for one sample: authorize,
	// order by capture time, store, fan out shipperMoved, resolve the
	// ETA outside the room lock and fan out updateETA if still current.
	// The returned estimate is nil when routing was unavailable.
	UpdateLocation(ctx context.Context, sub Subject, sample *models.LocationSample) (*models.RouteEstimate, error)

	// GetTrackingInfo builds the REST snapshot for an order.
	GetTrackingInfo(ctx context.Context, sub Subject, orderID string) (*models.TrackingInfo, error)

	// StatusChanged forwards an order-lifecycle transition into the
	// room; terminal statuses close the room for further updates.
	StatusChanged(ctx context.Context, event *models.ShippingStatusEvent) error
}
