package tracking

import "errors"

// Domain errors surfaced by the tracking pipeline. Handlers translate
// them to wire error codes / HTTP statuses; see the constants package
// for the stable codes.
var (
	// ErrUnauthorized means the caller's identity is not bound to the
	// order (neither its customer nor its assigned shipper).
	ErrUnauthorized = errors.New("identity not authorized for order")

	// ErrNotInRoom means a connection referenced a room it has not
	// joined. This is the cross-order isolation boundary.
	ErrNotInRoom = errors.New("connection has not joined the room")

	// ErrInvalidLocation means a coordinate is not on the globe at all
	// (latitude or longitude out of range).
	ErrInvalidLocation = errors.New("coordinate out of range")

	// ErrStaleSample means a sample is older than the room's current
	// location. Ordering is by capture time, not arrival time; stale
	// samples are dropped, not stored.
	ErrStaleSample = errors.New("location sample older than current")

	// ErrRoutingUnavailable means the external routing provider failed;
	// location updates still propagate with an unknown ETA.
	ErrRoutingUnavailable = errors.New("routing provider unavailable")

	// ErrTrackingNotReady means no tracking session exists for the
	// order yet (user facing: "preparing to track", not a failure).
	ErrTrackingNotReady = errors.New("no active tracking session for order")

	// ErrTrackingClosed means the shipping reached a terminal status
	// and the room no longer accepts location updates.
	ErrTrackingClosed = errors.New("tracking closed for order")
)
