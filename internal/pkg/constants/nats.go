package constants

// NATS Subjects
const (
	// Consumed from the order service
	SubjectShippingStatus = "orders.shipping.status"

	// Published for downstream consumers (ops dashboards etc.)
	SubjectLocationUpdated = "tracking.location.updated"
)

// Queue groups
const (
	QueueTracking = "tracking-service"
)
