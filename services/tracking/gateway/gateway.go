package gateway

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/models"
	natspkg "github.com/vietship/shiptrack/internal/pkg/nats"
	"github.com/vietship/shiptrack/services/tracking/gateway/goong"
	natsgw "github.com/vietship/shiptrack/services/tracking/gateway/nats"
)

// TrackingGW bundles the routing provider and the NATS publisher behind
// the tracking.TrackingGW interface.
type TrackingGW struct {
	goong *goong.Client
	nats  *natsgw.Gateway
}

// NewTrackingGW creates the combined gateway.
func NewTrackingGW(cfg *models.Config, natsClient *natspkg.Client) *TrackingGW {
	return &TrackingGW{
		goong: goong.NewClient(cfg.Goong),
		nats:  natsgw.NewGateway(natsClient),
	}
}

func (g *TrackingGW) Directions(ctx context.Context, origin, destination models.Coordinate, vehicle models.VehicleType) (*models.RouteEstimate, error) {
	return g.goong.Directions(ctx, origin, destination, vehicle)
}

func (g *TrackingGW) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	return g.goong.Geocode(ctx, address)
}

func (g *TrackingGW) PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error {
	return g.nats.PublishLocationUpdate(ctx, update)
}
