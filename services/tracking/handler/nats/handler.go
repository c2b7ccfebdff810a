package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	natspkg "github.com/vietship/shiptrack/internal/pkg/nats"
	"github.com/vietship/shiptrack/services/tracking"
)

// NatsHandler consumes order-lifecycle events and forwards them into
// tracking rooms.
type NatsHandler struct {
	client     *natspkg.Client
	trackingUC tracking.TrackingUC
	consumers  []*natspkg.Consumer
}

// NewNatsHandler creates the NATS consumer handler.
func NewNatsHandler(client *natspkg.Client, trackingUC tracking.TrackingUC) *NatsHandler {
	return &NatsHandler{
		client:     client,
		trackingUC: trackingUC,
	}
}

// Start subscribes to the shipping status subject on the service queue
// group, so one instance of the service handles each event.
func (h *NatsHandler) Start() error {
	consumer, err := natspkg.NewConsumer(
		h.client,
		constants.SubjectShippingStatus,
		constants.QueueTracking,
		h.handleShippingStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to shipping status events: %w", err)
	}
	h.consumers = append(h.consumers, consumer)

	logger.Info("Tracking NATS consumers started",
		logger.String("subject", constants.SubjectShippingStatus))
	return nil
}

// Stop unsubscribes all consumers. The shared connection is closed by
// whoever owns it.
func (h *NatsHandler) Stop() {
	for _, consumer := range h.consumers {
		if err := consumer.Stop(); err != nil {
			logger.Warn("Failed to stop NATS consumer", logger.Err(err))
		}
	}
}

func (h *NatsHandler) handleShippingStatus(data []byte) error {
	var event models.ShippingStatusEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to unmarshal shipping status event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("shipping status event without order id")
	}

	return h.trackingUC.StatusChanged(context.Background(), &event)
}
