package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/models"
)

// Session is one authenticated connection to the tracking channel. It
// owns the read loop; push events are delivered through the handler
// passed to Dial, request acknowledgments are matched to their callers.
//
// The protocol carries no correlation IDs, so the session allows one
// outstanding request at a time. That matches how the apps use it.
type Session struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	reqMu   sync.Mutex

	mu      sync.Mutex
	pending map[string]chan json.RawMessage
	errCh   chan *ServerError

	onEvent func(Event)

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// Dial connects and authenticates a tracking session. onEvent receives
// push events until the session ends; it is called from the read loop
// and must not block.
func Dial(ctx context.Context, serverURL, token string, onEvent func(Event)) (*Session, error) {
	wsURL := strings.Replace(serverURL, "http", "ws", 1) + "/ws/tracking"

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to dial tracking channel: %w", err)
	}

	s := &Session{
		conn:    conn,
		pending: make(map[string]chan json.RawMessage),
		errCh:   make(chan *ServerError, 1),
		onEvent: onEvent,
		closed:  make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Done is closed when the session ends for any reason.
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// Err reports why the session ended, nil for a clean Close.
func (s *Session) Err() error {
	select {
	case <-s.closed:
		return s.closeErr
	default:
		return nil
	}
}

// Close terminates the session.
func (s *Session) Close() error {
	s.fail(nil)
	return nil
}

func (s *Session) fail(err error) {
	s.closeOnce.Do(func() {
		s.closeErr = err
		s.conn.Close()
		close(s.closed)
	})
}

func (s *Session) readLoop() {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(err)
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		s.dispatch(&msg)
	}
}

func (s *Session) dispatch(msg *models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinedRoom, constants.EventLeftRoom, constants.EventLocationAck, constants.EventPong:
		s.mu.Lock()
		ch, ok := s.pending[msg.Event]
		if ok {
			delete(s.pending, msg.Event)
		}
		s.mu.Unlock()
		if ok {
			ch <- msg.Data
		}

	case constants.EventError:
		var werr models.WSErrorMessage
		if err := json.Unmarshal(msg.Data, &werr); err != nil {
			return
		}
		select {
		case s.errCh <- &ServerError{Code: werr.Code, Message: werr.Message}:
		default:
		}

	case constants.EventShipperMoved:
		var ev models.ShipperMovedEvent
		if err := json.Unmarshal(msg.Data, &ev); err == nil {
			s.onEvent(LocationChanged{OrderID: ev.OrderID, Location: ev.Location, At: ev.Timestamp})
		}

	case constants.EventUpdateETA:
		var ev models.UpdateETAEvent
		if err := json.Unmarshal(msg.Data, &ev); err == nil {
			s.onEvent(EtaChanged{OrderID: ev.OrderID, ETA: ev.ETA})
		}

	case constants.EventStatusChanged:
		var ev models.StatusChangedEvent
		if err := json.Unmarshal(msg.Data, &ev); err == nil {
			s.onEvent(StatusChanged{OrderID: ev.OrderID, Status: ev.Status, Message: ev.Message})
		}
	}
}

// request sends one message and waits for its acknowledgment event, a
// server error, session end or context cancellation.
func (s *Session) request(ctx context.Context, event string, payload interface{}, ackEvent string) (json.RawMessage, error) {
	s.reqMu.Lock()
	defer s.reqMu.Unlock()

	ack := make(chan json.RawMessage, 1)
	s.mu.Lock()
	s.pending[ackEvent] = ack
	// Drop any error left over from a previous exchange.
	select {
	case <-s.errCh:
	default:
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, ackEvent)
		s.mu.Unlock()
	}()

	if err := s.write(event, payload); err != nil {
		return nil, err
	}

	select {
	case data := <-ack:
		return data, nil
	case serr := <-s.errCh:
		return nil, serr
	case <-s.closed:
		return nil, fmt.Errorf("session closed: %w", s.closeErr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Session) write(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(models.WSMessage{Event: event, Data: data})
}

// JoinRoom joins an order's tracking room and returns the snapshot ack.
func (s *Session) JoinRoom(ctx context.Context, orderID string, role models.ParticipantRole) (*models.JoinRoomAck, error) {
	data, err := s.request(ctx, constants.EventJoinRoom, models.JoinRoomRequest{OrderID: orderID, Role: role}, constants.EventJoinedRoom)
	if err != nil {
		return nil, err
	}

	var ack models.JoinRoomAck
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode join ack: %w", err)
	}
	return &ack, nil
}

// LeaveRoom leaves an order's tracking room.
func (s *Session) LeaveRoom(ctx context.Context, orderID string) error {
	_, err := s.request(ctx, constants.EventLeaveRoom, models.LeaveRoomRequest{OrderID: orderID}, constants.EventLeftRoom)
	return err
}

// UpdateLocation publishes one sample and returns the estimate computed
// for it, nil when routing was unavailable.
func (s *Session) UpdateLocation(ctx context.Context, sample *models.LocationSample) (*models.RouteEstimate, error) {
	req := models.UpdateLocationRequest{
		OrderID:        sample.OrderID,
		Location:       sample.Coordinate,
		AccuracyMeters: sample.AccuracyMeters,
		Vehicle:        sample.Vehicle,
		Timestamp:      sample.CapturedAt,
	}

	data, err := s.request(ctx, constants.EventUpdateLocation, req, constants.EventLocationAck)
	if err != nil {
		return nil, err
	}

	var ack models.LocationAck
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode location ack: %w", err)
	}
	return ack.ETA, nil
}
