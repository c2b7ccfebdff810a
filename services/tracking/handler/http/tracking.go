package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/internal/utils"
	"github.com/vietship/shiptrack/services/tracking"
)

// TrackingHandler serves the REST fallback surface: location reports
// from shippers on flaky links and snapshot polling for viewers.
type TrackingHandler struct {
	trackingUC tracking.TrackingUC
	validator  *validator.Validate
}

// NewTrackingHandler creates the REST handler.
func NewTrackingHandler(trackingUC tracking.TrackingUC) *TrackingHandler {
	return &TrackingHandler{
		trackingUC: trackingUC,
		validator:  validator.New(),
	}
}

type updateLocationRequest struct {
	OrderID        string            `json:"order_id" validate:"required"`
	Location       models.Coordinate `json:"location" validate:"required"`
	AccuracyMeters float64           `json:"accuracy,omitempty"`
	Vehicle        string            `json:"vehicle,omitempty" validate:"omitempty,oneof=bike car"`
	Timestamp      time.Time         `json:"timestamp,omitempty"`
}

// UpdateLocation handles POST /tracking/location. Same pipeline as the
// WebSocket updateLocation message; the reply carries the estimate so a
// shipper on REST fallback still sees its own ETA.
func (h *TrackingHandler) UpdateLocation(c echo.Context) error {
	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if err := h.validator.Struct(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	sample := &models.LocationSample{
		OrderID:        req.OrderID,
		Coordinate:     req.Location,
		CapturedAt:     req.Timestamp,
		AccuracyMeters: req.AccuracyMeters,
		Vehicle:        models.VehicleType(req.Vehicle),
	}

	estimate, err := h.trackingUC.UpdateLocation(c.Request().Context(), subjectFromContext(c), sample)
	if err != nil {
		return h.mapError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", map[string]interface{}{
		"order_id": req.OrderID,
		"eta":      estimate,
	})
}

// GetTrackingInfo handles GET /tracking/order/:orderId. A 404 means the
// order has no tracking session yet; clients show "preparing to track".
func (h *TrackingHandler) GetTrackingInfo(c echo.Context) error {
	orderID := c.Param("orderId")
	if orderID == "" {
		return utils.BadRequestResponse(c, "Order ID is required")
	}

	info, err := h.trackingUC.GetTrackingInfo(c.Request().Context(), subjectFromContext(c), orderID)
	if err != nil {
		return h.mapError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking info retrieved", info)
}

func (h *TrackingHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, tracking.ErrTrackingNotReady):
		return utils.NotFoundResponse(c, "Tracking not available for this order yet")
	case errors.Is(err, tracking.ErrUnauthorized):
		return utils.ForbiddenResponse(c, "Not authorized for this order")
	case errors.Is(err, tracking.ErrInvalidLocation):
		return utils.BadRequestResponse(c, "Coordinate out of range")
	case errors.Is(err, tracking.ErrStaleSample):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Location sample older than current")
	case errors.Is(err, tracking.ErrTrackingClosed):
		// 410, not 409: clients must be able to tell a terminally
		// closed order from a merely outdated sample.
		return utils.ErrorResponseHandler(c, http.StatusGone, "Tracking closed for this order")
	default:
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}

// subjectFromContext reads the identity the JWT middleware stored.
func subjectFromContext(c echo.Context) tracking.Subject {
	sub := tracking.Subject{}
	if id, ok := c.Get("user_id").(uuid.UUID); ok {
		sub.UserID = id.String()
	}
	if role, ok := c.Get("user_role").(string); ok {
		sub.Role = role
	}
	return sub
}
