package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketClient is one authenticated gateway connection.
type WebSocketClient struct {
	ConnID string
	UserID string
	Role   string
	Conn   *websocket.Conn
}

// WebSocketClaims are the JWT claims carried by gateway connections.
type WebSocketClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JoinRoomRequest asks the gateway to join the tracking room of an order.
type JoinRoomRequest struct {
	OrderID string          `json:"orderId"`
	Role    ParticipantRole `json:"role"`
}

// JoinRoomAck acknowledges a join and carries the current room snapshot,
// so a viewer is never blank when state already exists.
type JoinRoomAck struct {
	OrderID  string        `json:"orderId"`
	Room     string        `json:"room"`
	Snapshot *TrackingInfo `json:"snapshot,omitempty"`
}

// LeaveRoomRequest asks the gateway to leave a room.
type LeaveRoomRequest struct {
	OrderID string `json:"orderId"`
}

// UpdateLocationRequest is a shipper position report over the channel.
type UpdateLocationRequest struct {
	OrderID        string      `json:"orderId"`
	Location       Coordinate  `json:"location"`
	AccuracyMeters float64     `json:"accuracy,omitempty"`
	Vehicle        VehicleType `json:"vehicle,omitempty"`
	Timestamp      time.Time   `json:"timestamp,omitempty"`
}

// LocationAck is the direct reply to an updateLocation message.
// ETA is null when routing was unavailable for this sample.
type LocationAck struct {
	OrderID string         `json:"orderId"`
	ETA     *RouteEstimate `json:"eta"`
}

// ShipperMovedEvent is pushed to viewers when a sample is accepted.
type ShipperMovedEvent struct {
	OrderID   string     `json:"orderId"`
	Location  Coordinate `json:"location"`
	Timestamp time.Time  `json:"timestamp"`
}

// UpdateETAEvent is pushed to viewers when a fresh estimate is applied.
type UpdateETAEvent struct {
	OrderID   string         `json:"orderId"`
	ETA       *RouteEstimate `json:"eta"`
	Timestamp time.Time      `json:"timestamp"`
}

// StatusChangedEvent is pushed to all participants on a shipping status
// transition forwarded from the order service.
type StatusChangedEvent struct {
	OrderID   string         `json:"orderId"`
	Status    ShippingStatus `json:"status"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}
