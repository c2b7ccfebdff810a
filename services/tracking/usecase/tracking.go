package usecase

import (
	"context"

	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/internal/utils"
	"github.com/vietship/shiptrack/services/tracking"
)

// JoinRoom authorizes the subject against the order, joins its room and
// returns the current snapshot. The room is created lazily on first
// join, which also resolves and caches the destination geocode.
func (uc *TrackingUC) JoinRoom(ctx context.Context, sub tracking.Subject, orderID string, role models.ParticipantRole, p tracking.Participant) (*models.TrackingInfo, error) {
	order, err := uc.authorize(ctx, sub, orderID)
	if err != nil {
		return nil, err
	}
	if role == models.RoleShipper && sub.UserID != order.ShipperID {
		return nil, tracking.ErrUnauthorized
	}

	dest, err := uc.destination(ctx, order)
	if err != nil {
		return nil, err
	}

	room, err := uc.rooms.GetOrCreate(orderID, func() (*Room, error) {
		return NewRoom(orderID, dest.Location, order.Status), nil
	})
	if err != nil {
		return nil, err
	}

	location, estimate, status := room.Join(p)

	logger.Info("Participant joined tracking room",
		logger.String("order_id", orderID),
		logger.String("user_id", sub.UserID),
		logger.String("role", string(role)))

	return buildTrackingInfo(order, dest, location, estimate, status), nil
}

// LeaveRoom removes the participant and disposes the room once empty.
func (uc *TrackingUC) LeaveRoom(ctx context.Context, orderID, connID string) error {
	room, ok := uc.rooms.Get(orderID)
	if !ok {
		return nil
	}

	if room.Leave(connID) {
		uc.rooms.RemoveIfEmpty(orderID)
		logger.Debug("Tracking room disposed",
			logger.String("order_id", orderID))
	}
	return nil
}

// UpdateLocation runs the full pipeline for one sample. Only the
// assigned shipper may publish. With a live room the sample is ordered
// by capture time inside it; the routing provider is called outside the
// room lock and the result is committed only when no newer sample
// superseded it. Without a live room the cached sample defines the
// ordering and no room is created. The accepted sample is cached in
// Redis and announced on NATS; failures of either are logged, never
// surfaced to the publisher.
func (uc *TrackingUC) UpdateLocation(ctx context.Context, sub tracking.Subject, sample *models.LocationSample) (*models.RouteEstimate, error) {
	if !sample.Coordinate.Valid() {
		return nil, tracking.ErrInvalidLocation
	}
	if sample.CapturedAt.IsZero() {
		sample.CapturedAt = models.Now()
	}
	if sample.Vehicle == "" {
		sample.Vehicle = models.VehicleType(uc.cfg.Tracking.DefaultVehicle)
	}

	order, err := uc.authorize(ctx, sub, sample.OrderID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != order.ShipperID {
		return nil, tracking.ErrUnauthorized
	}

	uc.flagSuspectSample(sample)

	dest, err := uc.destination(ctx, order)
	if err != nil {
		return nil, err
	}

	if room, ok := uc.rooms.Get(sample.OrderID); ok {
		generation, err := room.Accept(sample)
		if err != nil {
			return nil, err
		}

		uc.persistSample(ctx, order, sample)

		// Routing happens unlocked so a slow provider never stalls
		// the room.
		estimate := uc.resolveRoute(ctx, sample, dest)
		room.ApplyEstimate(generation, estimate)
		return estimate, nil
	}

	// Nobody is watching, so no room is created: rooms exist for their
	// participants and are disposed with them. The cached sample still
	// defines capture-time ordering; cache and NATS carry the update.
	if order.Status.IsTerminal() {
		return nil, tracking.ErrTrackingClosed
	}
	cached, err := uc.repo.GetShipperLocation(ctx, sample.OrderID)
	if err != nil {
		logger.Warn("Failed to read cached shipper location",
			logger.String("order_id", sample.OrderID),
			logger.Err(err))
		cached = nil
	}
	if cached != nil && !sample.CapturedAt.After(cached.CapturedAt) {
		return nil, tracking.ErrStaleSample
	}

	uc.persistSample(ctx, order, sample)
	return uc.resolveRoute(ctx, sample, dest), nil
}

// resolveRoute asks the provider for an estimate. Failure degrades to
// ETA unknown instead of failing the update.
func (uc *TrackingUC) resolveRoute(ctx context.Context, sample *models.LocationSample, dest *models.Destination) *models.RouteEstimate {
	estimate, err := uc.gw.Directions(ctx, sample.Coordinate, dest.Location, sample.Vehicle)
	if err != nil {
		logger.Warn("Route estimation failed, propagating ETA unknown",
			logger.String("order_id", sample.OrderID),
			logger.Err(err))
		return nil
	}
	return estimate
}

// GetTrackingInfo builds the snapshot for the REST endpoint. Live room
// state wins; with no room the last cached location is used, and the ETA
// is recomputed on demand when a fresh location exists.
func (uc *TrackingUC) GetTrackingInfo(ctx context.Context, sub tracking.Subject, orderID string) (*models.TrackingInfo, error) {
	order, err := uc.authorize(ctx, sub, orderID)
	if err != nil {
		return nil, err
	}

	dest, err := uc.destination(ctx, order)
	if err != nil {
		return nil, err
	}

	if room, ok := uc.rooms.Get(orderID); ok {
		location, estimate, status := room.Snapshot()
		return buildTrackingInfo(order, dest, location, estimate, status), nil
	}

	location, err := uc.repo.GetShipperLocation(ctx, orderID)
	if err != nil {
		logger.Warn("Failed to read cached shipper location",
			logger.String("order_id", orderID),
			logger.Err(err))
		location = nil
	}

	var estimate *models.RouteEstimate
	if location != nil {
		estimate, err = uc.gw.Directions(ctx, location.Coordinate, dest.Location, location.Vehicle)
		if err != nil {
			logger.Warn("Route estimation failed for snapshot",
				logger.String("order_id", orderID),
				logger.Err(err))
			estimate = nil
		}
	}

	return buildTrackingInfo(order, dest, location, estimate, order.Status), nil
}

// StatusChanged applies an order-lifecycle transition to the live room.
// Orders without a live room need nothing; the next snapshot reads the
// status from the order service.
func (uc *TrackingUC) StatusChanged(ctx context.Context, event *models.ShippingStatusEvent) error {
	room, ok := uc.rooms.Get(event.OrderID)
	if !ok {
		logger.Debug("Status change for order without live room",
			logger.String("order_id", event.OrderID),
			logger.String("status", string(event.Status)))
		return nil
	}

	room.StatusChanged(event.Status, event.Message)

	logger.Info("Shipping status forwarded to tracking room",
		logger.String("order_id", event.OrderID),
		logger.String("status", string(event.Status)))
	return nil
}

// authorize loads the collaborator view and checks the subject is the
// order's customer or its assigned shipper.
func (uc *TrackingUC) authorize(ctx context.Context, sub tracking.Subject, orderID string) (*models.OrderTracking, error) {
	order, err := uc.repo.GetOrderTracking(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != order.CustomerID && sub.UserID != order.ShipperID {
		return nil, tracking.ErrUnauthorized
	}
	return order, nil
}

// destination resolves the delivery endpoint, geocoding the shipping
// address on first use and caching the result per order.
func (uc *TrackingUC) destination(ctx context.Context, order *models.OrderTracking) (*models.Destination, error) {
	dest, err := uc.repo.GetDestination(ctx, order.OrderID)
	if err != nil {
		logger.Warn("Failed to read cached destination",
			logger.String("order_id", order.OrderID),
			logger.Err(err))
	}
	if dest != nil {
		return dest, nil
	}

	coord, err := uc.gw.Geocode(ctx, order.ShippingAddress)
	if err != nil {
		return nil, err
	}

	dest = &models.Destination{
		Address:  order.ShippingAddress,
		Location: *coord,
	}
	if err := uc.repo.CacheDestination(ctx, order.OrderID, dest); err != nil {
		logger.Warn("Failed to cache destination",
			logger.String("order_id", order.OrderID),
			logger.Err(err))
	}
	return dest, nil
}

// persistSample caches the accepted sample and announces it on NATS.
// Both are best effort; room state already carries the update.
func (uc *TrackingUC) persistSample(ctx context.Context, order *models.OrderTracking, sample *models.LocationSample) {
	if err := uc.repo.CacheShipperLocation(ctx, sample.OrderID, sample); err != nil {
		logger.Warn("Failed to cache shipper location",
			logger.String("order_id", sample.OrderID),
			logger.Err(err))
	}

	update := &models.LocationUpdate{
		OrderID:   sample.OrderID,
		ShipperID: order.ShipperID,
		Location:  sample.Coordinate,
		Geohash:   utils.EncodeLocation(sample.Coordinate, uc.cfg.Tracking.RegionGeohashLen),
		InRegion:  utils.InRegion(sample.Coordinate, uc.cfg.Region),
		CreatedAt: sample.CapturedAt,
	}
	if err := uc.gw.PublishLocationUpdate(ctx, update); err != nil {
		logger.Warn("Failed to publish location update event",
			logger.String("order_id", sample.OrderID),
			logger.Err(err))
	}
}

// flagSuspectSample logs samples that are out of region or worse than
// the accuracy floor. They are accepted regardless; a courier crossing
// the region boundary must not drop off the map.
func (uc *TrackingUC) flagSuspectSample(sample *models.LocationSample) {
	if !utils.InRegion(sample.Coordinate, uc.cfg.Region) {
		logger.Warn("Location sample outside service region",
			logger.String("order_id", sample.OrderID),
			logger.String("geohash", utils.EncodeLocation(sample.Coordinate, uc.cfg.Tracking.RegionGeohashLen)))
	}
	if uc.cfg.Tracking.MinAccuracyMeters > 0 && sample.AccuracyMeters > uc.cfg.Tracking.MinAccuracyMeters {
		logger.Debug("Low accuracy location sample",
			logger.String("order_id", sample.OrderID),
			logger.Float64("accuracy_meters", sample.AccuracyMeters))
	}
}

// buildTrackingInfo assembles the snapshot shared by REST and joinRoom.
func buildTrackingInfo(order *models.OrderTracking, dest *models.Destination, location *models.LocationSample, estimate *models.RouteEstimate, status models.ShippingStatus) *models.TrackingInfo {
	info := &models.TrackingInfo{
		OrderID:         order.OrderID,
		ShippingStatus:  status,
		Destination:     *dest,
		CurrentLocation: location,
		ETA:             estimate,
	}
	if order.ShipperID != "" {
		info.Shipper = &models.ShipperInfo{
			UserID:   order.ShipperID,
			FullName: order.ShipperName,
			Phone:    order.ShipperPhone,
		}
	}
	return info
}
