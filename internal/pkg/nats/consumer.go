package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/vietship/shiptrack/internal/pkg/logger"
)

// MessageHandler is a function that processes NATS messages
type MessageHandler func(message []byte) error

// Consumer handles consuming messages from NATS subjects
type Consumer struct {
	conn         *nats.Conn
	subscription *nats.Subscription
}

// NewConsumer subscribes to a subject on an existing client connection,
// optionally within a queue group so replicas share the stream.
func NewConsumer(client *Client, subject, queueGroup string, handler MessageHandler) (*Consumer, error) {
	conn := client.GetConn()

	process := func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			logger.Warn("Error processing message",
				logger.String("subject", subject),
				logger.Err(err))
		}
	}

	var subscription *nats.Subscription
	var err error
	if queueGroup != "" {
		subscription, err = conn.QueueSubscribe(subject, queueGroup, process)
	} else {
		subscription, err = conn.Subscribe(subject, process)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject: %w", err)
	}

	return &Consumer{
		conn:         conn,
		subscription: subscription,
	}, nil
}

// Stop unsubscribes without closing the shared connection
func (c *Consumer) Stop() error {
	if c.subscription != nil {
		return c.subscription.Unsubscribe()
	}
	return nil
}
