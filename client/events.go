package client

import (
	"time"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// Event is one item on a subscriber's event stream. Exactly the types
// below implement it; consumers switch on the concrete type.
type Event interface {
	isEvent()
}

// LocationChanged reports a new shipper position.
type LocationChanged struct {
	OrderID  string
	Location models.Coordinate
	At       time.Time
}

// EtaChanged reports a new route estimate. ETA is nil when routing was
// unavailable for the latest sample; render "ETA unknown", do not keep
// the previous figure.
type EtaChanged struct {
	OrderID string
	ETA     *models.RouteEstimate
}

// StatusChanged reports an order-lifecycle transition.
type StatusChanged struct {
	OrderID string
	Status  models.ShippingStatus
	Message string
}

// TransportError reports a channel failure. Polling reports whether the
// subscriber degraded to REST polling (true) or stopped (false).
type TransportError struct {
	Err     error
	Polling bool
}

func (LocationChanged) isEvent() {}
func (EtaChanged) isEvent()      {}
func (StatusChanged) isEvent()   {}
func (TransportError) isEvent()  {}
