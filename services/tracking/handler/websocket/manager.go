package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	wspkg "github.com/vietship/shiptrack/internal/pkg/websocket"
	"github.com/vietship/shiptrack/services/tracking"
)

// WebSocketManager is the tracking gateway: it authenticates
// connections, reads their messages and routes room commands into the
// usecase. Room membership is tracked per connection; a connection can
// only publish into or leave rooms it has joined.
type WebSocketManager struct {
	manager    *wspkg.Manager
	trackingUC tracking.TrackingUC
}

// NewWebSocketManager creates the tracking WebSocket gateway.
func NewWebSocketManager(cfg *models.Config, trackingUC tracking.TrackingUC) *WebSocketManager {
	return &WebSocketManager{
		manager:    wspkg.NewManager(cfg.JWT),
		trackingUC: trackingUC,
	}
}

// HandleWebSocket is the echo handler for the tracking channel.
func (m *WebSocketManager) HandleWebSocket(c echo.Context) error {
	return m.manager.HandleConnection(c, m.handleClient)
}

// handleClient runs the read loop for one authenticated connection.
// Returning ends the connection; the deferred cleanup leaves every room
// the connection joined so empty rooms get disposed.
func (m *WebSocketManager) handleClient(client *models.WebSocketClient, conn *websocket.Conn) error {
	client.Conn = conn
	m.manager.AddClient(client)

	session := newSession(m, client)
	go session.writeLoop()
	defer func() {
		session.leaveAll()
		session.closeQueue()
		m.manager.RemoveClient(client.ConnID)
	}()

	logger.Info("Tracking connection established",
		logger.String("conn_id", client.ConnID),
		logger.String("user_id", client.UserID))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Tracking connection closed unexpectedly",
					logger.String("conn_id", client.ConnID),
					logger.Err(err))
			}
			return nil
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			session.sendError(constants.ErrorInvalidFormat, "Invalid message format")
			continue
		}

		m.routeMessage(session, &msg)
	}
}

// routeMessage dispatches one message by event name. Unknown events are
// answered with an error instead of being silently dropped.
func (m *WebSocketManager) routeMessage(s *session, msg *models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinRoom:
		m.handleJoinRoom(s, msg.Data)
	case constants.EventLeaveRoom:
		m.handleLeaveRoom(s, msg.Data)
	case constants.EventUpdateLocation:
		m.handleUpdateLocation(s, msg.Data)
	case constants.EventPing:
		s.send(constants.EventPong, nil)
	default:
		s.sendError(constants.ErrorInvalidFormat, "Unknown event: "+msg.Event)
	}
}
