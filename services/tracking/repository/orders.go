package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// GetOrderTracking loads the collaborator view of an order: customer
// binding, shipping address and the latest shipping log row. Orders
// without a shipping log have no tracking session yet.
func (r *TrackingRepo) GetOrderTracking(ctx context.Context, orderID string) (*models.OrderTracking, error) {
	query := `
		SELECT o.order_id, o.customer_id, o.shipping_address,
		       sl.status, sl.shipper_id,
		       COALESCE(u.full_name, '') AS shipper_name,
		       COALESCE(u.phone, '') AS shipper_phone
		FROM orders o
		JOIN shipping_logs sl ON sl.order_id = o.order_id
		LEFT JOIN users u ON u.user_id = sl.shipper_id
		WHERE o.order_id = $1
		ORDER BY sl.created_at DESC
		LIMIT 1`

	var order models.OrderTracking
	err := r.db.GetDB().GetContext(ctx, &order, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tracking.ErrTrackingNotReady
		}
		return nil, fmt.Errorf("failed to get order tracking: %w", err)
	}

	return &order, nil
}
