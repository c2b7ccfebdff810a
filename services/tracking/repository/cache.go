package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/models"
)

// CacheShipperLocation stores the latest sample under the freshness TTL
// so snapshots survive the room being disposed.
func (r *TrackingRepo) CacheShipperLocation(ctx context.Context, orderID string, sample *models.LocationSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal location sample: %w", err)
	}

	key := fmt.Sprintf(constants.KeyShipperLocation, orderID)
	if err := r.cache.GetClient().Set(ctx, key, data, r.locationTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache shipper location: %w", err)
	}
	return nil
}

// GetShipperLocation returns the cached sample, or nil once the TTL has
// let it expire. Expiry is how a vanished shipper ages out of snapshots.
func (r *TrackingRepo) GetShipperLocation(ctx context.Context, orderID string) (*models.LocationSample, error) {
	key := fmt.Sprintf(constants.KeyShipperLocation, orderID)
	data, err := r.cache.GetClient().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shipper location: %w", err)
	}

	var sample models.LocationSample
	if err := json.Unmarshal(data, &sample); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location sample: %w", err)
	}
	return &sample, nil
}

// CacheDestination stores the geocoded delivery endpoint. No TTL; an
// order's address does not move.
func (r *TrackingRepo) CacheDestination(ctx context.Context, orderID string, dest *models.Destination) error {
	data, err := json.Marshal(dest)
	if err != nil {
		return fmt.Errorf("failed to marshal destination: %w", err)
	}

	key := fmt.Sprintf(constants.KeyDestination, orderID)
	if err := r.cache.GetClient().Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache destination: %w", err)
	}
	return nil
}

// GetDestination returns the cached destination, or nil when the order
// has not been geocoded yet.
func (r *TrackingRepo) GetDestination(ctx context.Context, orderID string) (*models.Destination, error) {
	key := fmt.Sprintf(constants.KeyDestination, orderID)
	data, err := r.cache.GetClient().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}

	var dest models.Destination
	if err := json.Unmarshal(data, &dest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal destination: %w", err)
	}
	return &dest, nil
}
