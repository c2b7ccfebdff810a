package nats

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/models"
	natspkg "github.com/vietship/shiptrack/internal/pkg/nats"
)

// Gateway publishes tracking events to NATS.
type Gateway struct {
	producer *natspkg.Producer
}

// NewGateway creates a NATS gateway from a shared client.
func NewGateway(client *natspkg.Client) *Gateway {
	return &Gateway{
		producer: natspkg.NewProducer(client),
	}
}

// PublishLocationUpdate announces an accepted location sample so other
// services (analytics, dispatch heatmaps) can consume it.
func (g *Gateway) PublishLocationUpdate(_ context.Context, update *models.LocationUpdate) error {
	return g.producer.Publish(constants.SubjectLocationUpdated, update)
}
