package tracking

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/vietship/shiptrack/services/tracking TrackingGW

// TrackingGW defines the tracking gateways interface
type TrackingGW interface {
	// Routing provider
	Directions(ctx context.Context, origin, destination models.Coordinate, vehicle models.VehicleType) (*models.RouteEstimate, error)
	Geocode(ctx context.Context, address string) (*models.Coordinate, error)

	// NATS Gateway
	PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error
}
