package constants

// WebSocket event types. Names are part of the wire protocol shared with
// the mobile apps, so they keep their original casing.
const (
	// Common events
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Client -> gateway
	EventJoinRoom       = "joinRoom"
	EventLeaveRoom      = "leaveRoom"
	EventUpdateLocation = "updateLocation"

	// Gateway -> client acknowledgments
	EventJoinedRoom  = "joinedRoom"
	EventLeftRoom    = "leftRoom"
	EventLocationAck = "locationAck"

	// Gateway -> viewer push events
	EventShipperMoved  = "shipperMoved"
	EventUpdateETA     = "updateETA"
	EventStatusChanged = "statusChanged"
)

// WebSocket error codes. Stable, machine readable.
const (
	ErrorInvalidFormat      = "invalid_format"
	ErrorUnauthorized       = "unauthorized"
	ErrorNotInRoom          = "not_in_room"
	ErrorInvalidLocation    = "invalid_location"
	ErrorStaleSample        = "stale_sample"
	ErrorRoutingUnavailable = "routing_unavailable"
	ErrorMalformedGeometry  = "malformed_geometry"
	ErrorTrackingNotReady   = "tracking_not_ready"
	ErrorTrackingClosed     = "tracking_closed"
	ErrorInternalError      = "internal_error"
)
