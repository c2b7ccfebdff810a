package websocket

import (
	"context"
	"sync"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// outboundBuffer bounds the per-connection fan-out queue. A connection
// that falls further behind than this loses events; the next update
// carries fresher state anyway.
const outboundBuffer = 64

type roomEvent struct {
	event   string
	payload interface{}
}

// session is the per-connection state: the authenticated client, the set
// of rooms this connection has joined and a write mutex. Room fan-out
// runs on other connections' goroutines while they hold their room's
// mutex, so fan-out only enqueues; the write loop owns the slow path to
// the socket.
type session struct {
	m      *WebSocketManager
	client *models.WebSocketClient

	mu     sync.Mutex
	joined map[string]models.ParticipantRole

	queueMu     sync.Mutex
	outbound    chan roomEvent
	queueClosed bool
}

func newSession(m *WebSocketManager, client *models.WebSocketClient) *session {
	return &session{
		m:        m,
		client:   client,
		joined:   make(map[string]models.ParticipantRole),
		outbound: make(chan roomEvent, outboundBuffer),
	}
}

// send serializes writes to the underlying connection. Write errors are
// logged and swallowed; the read loop notices a dead peer on its own.
func (s *session) send(event string, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.m.manager.SendMessage(s.client.Conn, event, payload); err != nil {
		logger.Debug("Failed to write to tracking connection",
			logger.String("conn_id", s.client.ConnID),
			logger.String("event", event),
			logger.Err(err))
	}
}

// enqueue hands a room event to the write loop without ever blocking
// the caller. When the peer cannot drain fast enough the event is
// dropped.
func (s *session) enqueue(event string, payload interface{}) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.queueClosed {
		return
	}
	select {
	case s.outbound <- roomEvent{event: event, payload: payload}:
	default:
		logger.Warn("Dropping room event for slow tracking connection",
			logger.String("conn_id", s.client.ConnID),
			logger.String("event", event))
	}
}

// writeLoop drains the fan-out queue onto the socket. It exits when
// closeQueue runs on disconnect.
func (s *session) writeLoop() {
	for ev := range s.outbound {
		s.send(ev.event, ev.payload)
	}
}

// closeQueue stops the write loop. Must run after the session left its
// rooms, so no fan-out can race the close.
func (s *session) closeQueue() {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.queueClosed {
		return
	}
	s.queueClosed = true
	close(s.outbound)
}

func (s *session) sendError(code, message string) {
	s.send(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// markJoined records room membership after a successful join.
func (s *session) markJoined(orderID string, role models.ParticipantRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined[orderID] = role
}

// inRoom reports whether this connection joined the order's room. This
// check is the isolation boundary between orders.
func (s *session) inRoom(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.joined[orderID]
	return ok
}

func (s *session) markLeft(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.joined, orderID)
}

// leaveAll leaves every joined room on disconnect so empty rooms are
// disposed.
func (s *session) leaveAll() {
	s.mu.Lock()
	orders := make([]string, 0, len(s.joined))
	for orderID := range s.joined {
		orders = append(orders, orderID)
	}
	s.joined = make(map[string]models.ParticipantRole)
	s.mu.Unlock()

	for _, orderID := range orders {
		if err := s.m.trackingUC.LeaveRoom(context.Background(), orderID, s.client.ConnID); err != nil {
			logger.Warn("Failed to leave tracking room on disconnect",
				logger.String("conn_id", s.client.ConnID),
				logger.String("order_id", orderID),
				logger.Err(err))
		}
	}
}

// participant adapts a session to the room fan-out interface for one
// room membership.
type participant struct {
	session *session
	role    models.ParticipantRole
}

var _ tracking.Participant = (*participant)(nil)

func (p *participant) ID() string {
	return p.session.client.ConnID
}

func (p *participant) Role() models.ParticipantRole {
	return p.role
}

func (p *participant) Notify(event string, payload interface{}) {
	p.session.enqueue(event, payload)
}
