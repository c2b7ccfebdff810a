package tracking

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/vietship/shiptrack/services/tracking TrackingRepo

// TrackingRepo combines the read-only order collaborator queries with the
// Redis location/destination caches.
type TrackingRepo interface {
	// GetOrderTracking returns the collaborator view of an order: its
	// shipping address, customer binding and active shipping log. It
	// returns ErrTrackingNotReady when the order has no active log.
	GetOrderTracking(ctx context.Context, orderID string) (*models.OrderTracking, error)

	// CacheShipperLocation stores the latest sample with the freshness
	// TTL; GetShipperLocation returns nil when absent or expired.
	CacheShipperLocation(ctx context.Context, orderID string, sample *models.LocationSample) error
	GetShipperLocation(ctx context.Context, orderID string) (*models.LocationSample, error)

	// Destination geocode cache, one entry per order.
	CacheDestination(ctx context.Context, orderID string, dest *models.Destination) error
	GetDestination(ctx context.Context, orderID string) (*models.Destination, error)
}
