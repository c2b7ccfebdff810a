package client

import (
	"context"
	"sync"
	"time"

	"github.com/vietship/shiptrack/internal/pkg/logger"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/internal/pkg/retry"
)

// SubscriberConfig configures a tracking subscriber.
type SubscriberConfig struct {
	ServerURL string
	Token     string
	OrderID   string

	// PollInterval is the REST polling cadence while the channel is
	// down.
	PollInterval time.Duration
	// StaleThreshold is how old the last location may be before
	// IsLocationStale reports true.
	StaleThreshold time.Duration
	// EventBuffer sizes the event stream. A full buffer drops events;
	// the stream carries latest state, not history.
	EventBuffer int
}

// Subscriber follows one order's tracking state for a viewer. It
// prefers the realtime channel and degrades to REST polling while the
// channel is down, reconnecting with backoff. Exactly one transport is
// active at a time, so an event never arrives twice.
type Subscriber struct {
	cfg  SubscriberConfig
	rest *RESTClient
	dial func(ctx context.Context, serverURL, token string, onEvent func(Event)) (*Session, error)
	now  func() time.Time

	events chan Event

	mu             sync.Mutex
	running        bool
	cancel         context.CancelFunc
	done           chan struct{}
	lastLocationAt time.Time
	lastStatus     models.ShippingStatus
	streamClosed   bool
}

// NewSubscriber creates a subscriber. Start begins following the order.
func NewSubscriber(cfg SubscriberConfig) *Subscriber {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = 5 * time.Minute
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 32
	}
	return &Subscriber{
		cfg:    cfg,
		rest:   NewRESTClient(cfg.ServerURL, cfg.Token),
		dial:   Dial,
		now:    time.Now,
		events: make(chan Event, cfg.EventBuffer),
	}
}

// Events is the subscriber's event stream. It is closed when the
// subscriber stops.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Start launches the subscription. Calling Start on a running
// subscriber is a no-op.
func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	return nil
}

// Stop ends the subscription, waits for the loop to exit and closes the
// event stream. Calling Stop on a stopped subscriber is a no-op.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// IsLocationStale reports whether the last known location is older than
// the staleness threshold. Recomputed on every call, so a paused stream
// goes stale without any event arriving.
func (s *Subscriber) IsLocationStale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastLocationAt.IsZero() {
		return true
	}
	return s.now().Sub(s.lastLocationAt) > s.cfg.StaleThreshold
}

func (s *Subscriber) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.closeStream()

	// First paint comes from REST so the viewer is never blank while
	// the channel handshake is in flight.
	s.pollOnce(ctx)

	for ctx.Err() == nil {
		session := s.connectWithPolling(ctx)
		if session == nil {
			return
		}

		select {
		case <-ctx.Done():
			leaveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = session.LeaveRoom(leaveCtx, s.cfg.OrderID)
			cancel()
			session.Close()
			return
		case <-session.Done():
			s.emit(TransportError{Err: session.Err(), Polling: true})
		}
	}
}

// connectWithPolling dials and joins with backoff while a polling loop
// keeps the viewer current. The polling loop is stopped, and waited
// for, before the session's events flow, so both transports never run
// at once.
func (s *Subscriber) connectWithPolling(ctx context.Context) *Session {
	pollCtx, stopPolling := context.WithCancel(ctx)
	pollDone := make(chan struct{})
	go s.pollLoop(pollCtx, pollDone)

	defer func() {
		stopPolling()
		<-pollDone
	}()

	var session *Session
	retrier := retry.New(retry.ReconnectConfig(), logger.GetGlobalLogger())
	err := retrier.Execute(ctx, func(ctx context.Context) error {
		dialed, err := s.dial(ctx, s.cfg.ServerURL, s.cfg.Token, s.emit)
		if err != nil {
			return err
		}

		ack, err := dialed.JoinRoom(ctx, s.cfg.OrderID, models.RoleViewer)
		if err != nil {
			dialed.Close()
			return err
		}

		s.emitSnapshot(ack.Snapshot)
		session = dialed
		return nil
	})
	if err != nil {
		return nil
	}
	return session
}

func (s *Subscriber) pollLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx)
		}
	}
}

// pollOnce fetches the snapshot and synthesizes the same events the
// channel would have pushed, so consumers never care which transport
// produced an update.
func (s *Subscriber) pollOnce(ctx context.Context) {
	info, err := s.rest.GetTrackingInfo(ctx, s.cfg.OrderID)
	if err != nil {
		return
	}
	s.emitSnapshot(info)
}

func (s *Subscriber) emitSnapshot(info *models.TrackingInfo) {
	if info == nil {
		return
	}

	s.mu.Lock()
	newLocation := info.CurrentLocation != nil && info.CurrentLocation.CapturedAt.After(s.lastLocationAt)
	newStatus := info.ShippingStatus != "" && info.ShippingStatus != s.lastStatus
	if newStatus {
		s.lastStatus = info.ShippingStatus
	}
	s.mu.Unlock()

	if newLocation {
		s.emit(LocationChanged{
			OrderID:  info.OrderID,
			Location: info.CurrentLocation.Coordinate,
			At:       info.CurrentLocation.CapturedAt,
		})
		s.emit(EtaChanged{OrderID: info.OrderID, ETA: info.ETA})
	}
	if newStatus {
		s.emit(StatusChanged{OrderID: info.OrderID, Status: info.ShippingStatus})
	}
}

// closeStream ends the event stream. A late delivery from a session
// read loop that is still winding down must not hit a closed channel,
// so emit and closeStream share the mutex.
func (s *Subscriber) closeStream() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamClosed = true
	close(s.events)
}

// emit forwards one event to the stream, tracking location freshness.
// Called from the session read loop and the polling loop; a full buffer
// drops the event rather than stalling the transport.
func (s *Subscriber) emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamClosed {
		return
	}

	switch e := ev.(type) {
	case LocationChanged:
		if !e.At.After(s.lastLocationAt) {
			return
		}
		s.lastLocationAt = e.At
	case StatusChanged:
		s.lastStatus = e.Status
	}

	select {
	case s.events <- ev:
	default:
	}
}
