package models

import "time"

// ParticipantRole identifies who is connected to a tracking room.
type ParticipantRole string

const (
	RoleShipper ParticipantRole = "shipper"
	RoleViewer  ParticipantRole = "viewer"
)

// VehicleType is the vehicle class used for route computation.
type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleCar  VehicleType = "car"
)

// ShippingStatus mirrors the shipping log status from the order service.
type ShippingStatus string

const (
	StatusPickedUp       ShippingStatus = "PICKED_UP"
	StatusInTransit      ShippingStatus = "IN_TRANSIT"
	StatusOutForDelivery ShippingStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShippingStatus = "DELIVERED"
	StatusCancelled      ShippingStatus = "CANCELLED"
	StatusReturned       ShippingStatus = "RETURNED"
)

// IsTerminal reports whether no further location updates are expected.
func (s ShippingStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Valid reports whether the coordinate is on the globe at all.
// Being outside the configured service region does not make a
// coordinate invalid; that is flagged separately.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// LocationSample is one position report from a shipper device.
// Immutable once created.
type LocationSample struct {
	OrderID        string      `json:"order_id"`
	Coordinate     Coordinate  `json:"location"`
	CapturedAt     time.Time   `json:"captured_at"`
	AccuracyMeters float64     `json:"accuracy_meters,omitempty"`
	Vehicle        VehicleType `json:"vehicle"`
}

// RouteEstimate is the output of one routing computation.
type RouteEstimate struct {
	DistanceMeters  int    `json:"distance"`
	DurationSeconds int    `json:"duration"`
	DisplayText     string `json:"text"`
	DistanceText    string `json:"distance_text"`
	EncodedGeometry string `json:"polyline,omitempty"`
}

// ShipperInfo identifies the delivery agent assigned to an order.
type ShipperInfo struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Destination is the delivery endpoint of an order.
type Destination struct {
	Address  string     `json:"address"`
	Location Coordinate `json:"location"`
}

// TrackingInfo is the full snapshot returned by the REST endpoint and
// carried in the joinRoom acknowledgment.
type TrackingInfo struct {
	OrderID         string          `json:"order_id"`
	ShippingStatus  ShippingStatus  `json:"shipping_status"`
	Shipper         *ShipperInfo    `json:"shipper,omitempty"`
	Destination     Destination     `json:"customer_destination"`
	CurrentLocation *LocationSample `json:"current_location,omitempty"`
	ETA             *RouteEstimate  `json:"eta,omitempty"`
}

// OrderTracking is the read-only collaborator view of an order used for
// authorization and destination resolution. Populated from the order and
// shipping log tables; this service never writes them.
type OrderTracking struct {
	OrderID         string         `db:"order_id"`
	CustomerID      string         `db:"customer_id"`
	ShippingAddress string         `db:"shipping_address"`
	Status          ShippingStatus `db:"status"`
	ShipperID       string         `db:"shipper_id"`
	ShipperName     string         `db:"shipper_name"`
	ShipperPhone    string         `db:"shipper_phone"`
}

// ShippingStatusEvent is the order-lifecycle event consumed from NATS.
type ShippingStatusEvent struct {
	OrderID   string         `json:"order_id"`
	Status    ShippingStatus `json:"status"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

// LocationUpdate is the event published to NATS after a sample is
// accepted by a room.
type LocationUpdate struct {
	OrderID   string     `json:"order_id"`
	ShipperID string     `json:"shipper_id"`
	Location  Coordinate `json:"location"`
	Geohash   string     `json:"geohash,omitempty"`
	InRegion  bool       `json:"in_region"`
	CreatedAt time.Time  `json:"created_at"`
}
