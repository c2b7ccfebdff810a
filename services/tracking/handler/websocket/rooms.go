package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// handleJoinRoom joins the connection to an order's tracking room and
// acknowledges with the current snapshot.
func (m *WebSocketManager) handleJoinRoom(s *session, data json.RawMessage) {
	var req models.JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.OrderID == "" {
		s.sendError(constants.ErrorInvalidFormat, "Invalid joinRoom payload")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}
	if role != models.RoleShipper && role != models.RoleViewer {
		s.sendError(constants.ErrorInvalidFormat, "Unknown role: "+string(role))
		return
	}

	p := &participant{session: s, role: role}
	snapshot, err := m.trackingUC.JoinRoom(context.Background(), s.subject(), req.OrderID, role, p)
	if err != nil {
		m.sendDomainError(s, err)
		return
	}

	s.markJoined(req.OrderID, role)
	s.send(constants.EventJoinedRoom, models.JoinRoomAck{
		OrderID:  req.OrderID,
		Room:     "order_" + req.OrderID,
		Snapshot: snapshot,
	})
}

// handleLeaveRoom removes the connection from a room it joined.
func (m *WebSocketManager) handleLeaveRoom(s *session, data json.RawMessage) {
	var req models.LeaveRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.OrderID == "" {
		s.sendError(constants.ErrorInvalidFormat, "Invalid leaveRoom payload")
		return
	}

	if !s.inRoom(req.OrderID) {
		s.sendError(constants.ErrorNotInRoom, "Room not joined: "+req.OrderID)
		return
	}

	if err := m.trackingUC.LeaveRoom(context.Background(), req.OrderID, s.client.ConnID); err != nil {
		m.sendDomainError(s, err)
		return
	}

	s.markLeft(req.OrderID)
	s.send(constants.EventLeftRoom, models.LeaveRoomRequest{OrderID: req.OrderID})
}

// handleUpdateLocation feeds one position report into the room pipeline
// and replies with the estimate computed for it. The room membership
// check runs before anything else; a connection can never publish into
// an order it has not joined.
func (m *WebSocketManager) handleUpdateLocation(s *session, data json.RawMessage) {
	var req models.UpdateLocationRequest
	if err := json.Unmarshal(data, &req); err != nil || req.OrderID == "" {
		s.sendError(constants.ErrorInvalidFormat, "Invalid updateLocation payload")
		return
	}

	if !s.inRoom(req.OrderID) {
		s.sendError(constants.ErrorNotInRoom, "Room not joined: "+req.OrderID)
		return
	}

	sample := &models.LocationSample{
		OrderID:        req.OrderID,
		Coordinate:     req.Location,
		CapturedAt:     req.Timestamp,
		AccuracyMeters: req.AccuracyMeters,
		Vehicle:        req.Vehicle,
	}

	estimate, err := m.trackingUC.UpdateLocation(context.Background(), s.subject(), sample)
	if err != nil {
		m.sendDomainError(s, err)
		return
	}

	s.send(constants.EventLocationAck, models.LocationAck{
		OrderID: req.OrderID,
		ETA:     estimate,
	})
}

// sendDomainError translates pipeline errors into wire error codes.
func (m *WebSocketManager) sendDomainError(s *session, err error) {
	switch {
	case errors.Is(err, tracking.ErrUnauthorized):
		s.sendError(constants.ErrorUnauthorized, "Not authorized for this order")
	case errors.Is(err, tracking.ErrNotInRoom):
		s.sendError(constants.ErrorNotInRoom, "Room not joined")
	case errors.Is(err, tracking.ErrInvalidLocation):
		s.sendError(constants.ErrorInvalidLocation, "Coordinate out of range")
	case errors.Is(err, tracking.ErrStaleSample):
		s.sendError(constants.ErrorStaleSample, "Location sample older than current")
	case errors.Is(err, tracking.ErrRoutingUnavailable):
		s.sendError(constants.ErrorRoutingUnavailable, "Routing temporarily unavailable")
	case errors.Is(err, tracking.ErrTrackingNotReady):
		s.sendError(constants.ErrorTrackingNotReady, "Tracking not available for this order yet")
	case errors.Is(err, tracking.ErrTrackingClosed):
		s.sendError(constants.ErrorTrackingClosed, "Tracking closed for this order")
	default:
		logger.Error("Unexpected tracking pipeline error",
			logger.String("conn_id", s.client.ConnID),
			logger.Err(err))
		s.sendError(constants.ErrorInternalError, "Internal server error")
	}
}

// subject builds the usecase identity from the authenticated client.
func (s *session) subject() tracking.Subject {
	return tracking.Subject{
		UserID: s.client.UserID,
		Role:   s.client.Role,
	}
}
