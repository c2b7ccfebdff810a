package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// Position is one reading from a device location source.
type Position struct {
	Coordinate     models.Coordinate
	AccuracyMeters float64
	CapturedAt     time.Time
}

// LocationSource yields the device's current position. Implementations
// return ErrPermissionDenied when the OS will never answer (stops the
// publisher) and ErrPositionUnavailable for a transient gap (skips the
// tick).
type LocationSource interface {
	Current(ctx context.Context) (*Position, error)
}

// PublisherConfig configures a location publisher.
type PublisherConfig struct {
	ServerURL string
	Token     string
	OrderID   string
	Vehicle   models.VehicleType
	Interval  time.Duration
	Source    LocationSource

	// OnEstimate receives the estimate computed for each accepted
	// sample; nil means routing was unavailable for that sample.
	OnEstimate func(*models.RouteEstimate)
	// OnError receives non-fatal and fatal publisher errors.
	OnError func(error)
}

// Publisher samples a location source on a fixed cadence and publishes
// each reading for one order. It prefers the realtime channel and falls
// back to HTTP while the channel is down, redialing on later ticks.
type Publisher struct {
	cfg  PublisherConfig
	rest *RESTClient
	dial func(ctx context.Context, serverURL, token string, onEvent func(Event)) (*Session, error)
	now  func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	session *Session
}

// NewPublisher creates a publisher. Start begins publishing.
func NewPublisher(cfg PublisherConfig) *Publisher {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.Vehicle == "" {
		cfg.Vehicle = models.VehicleBike
	}
	return &Publisher{
		cfg:  cfg,
		rest: NewRESTClient(cfg.ServerURL, cfg.Token),
		dial: Dial,
		now:  time.Now,
	}
}

// Start launches the publishing loop. Calling Start on a running
// publisher is a no-op.
func (p *Publisher) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.running = true
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
	return nil
}

// Stop ends publishing and waits for the loop to exit. Calling Stop on
// a stopped publisher is a no-op.
func (p *Publisher) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Publisher) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer p.closeSession(context.Background())

	p.connect(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.tick(ctx) {
				return
			}
		}
	}
}

// tick samples the source and publishes once. It returns false when the
// publisher should stop.
func (p *Publisher) tick(ctx context.Context) bool {
	pos, err := p.cfg.Source.Current(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrPermissionDenied):
			p.reportError(err)
			return false
		case errors.Is(err, ErrPositionUnavailable):
			// Transient gap: surface it, keep sampling.
			p.reportError(err)
			return true
		default:
			p.reportError(err)
			return true
		}
	}

	capturedAt := pos.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = p.now()
	}

	sample := &models.LocationSample{
		OrderID:        p.cfg.OrderID,
		Coordinate:     pos.Coordinate,
		CapturedAt:     capturedAt,
		AccuracyMeters: pos.AccuracyMeters,
		Vehicle:        p.cfg.Vehicle,
	}

	estimate, err := p.publish(ctx, sample)
	if err != nil {
		switch {
		case errors.Is(err, ErrStaleSample):
			// The server already has a newer sample, nothing to render.
			return true
		case errors.Is(err, ErrTrackingClosed), errors.Is(err, ErrSessionExpired):
			p.reportError(err)
			return false
		default:
			p.reportError(err)
			return true
		}
	}

	if p.cfg.OnEstimate != nil {
		p.cfg.OnEstimate(estimate)
	}
	return true
}

// publish sends a sample over the channel when it is up, degrading to
// HTTP when it is not. A dead channel is redialed on the next tick.
func (p *Publisher) publish(ctx context.Context, sample *models.LocationSample) (*models.RouteEstimate, error) {
	session := p.currentSession()
	if session == nil {
		session = p.connect(ctx)
	}

	if session != nil {
		estimate, err := session.UpdateLocation(ctx, sample)
		if err == nil {
			return estimate, nil
		}

		var serverErr *ServerError
		if errors.As(err, &serverErr) {
			// The channel itself is fine, the server refused the sample.
			return nil, err
		}

		p.dropSession()
		p.reportError(fmt.Errorf("tracking channel lost, using http fallback: %w", err))
	}

	return p.rest.UpdateLocation(ctx, sample)
}

// connect dials the channel and joins the order room as the shipper.
// Failures are tolerated; the publisher keeps working over HTTP.
func (p *Publisher) connect(ctx context.Context) *Session {
	session, err := p.dial(ctx, p.cfg.ServerURL, p.cfg.Token, func(Event) {})
	if err != nil {
		return nil
	}

	if _, err := session.JoinRoom(ctx, p.cfg.OrderID, models.RoleShipper); err != nil {
		session.Close()
		return nil
	}

	p.mu.Lock()
	p.session = session
	p.mu.Unlock()
	return session
}

func (p *Publisher) currentSession() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil
	}
	select {
	case <-p.session.Done():
		p.session = nil
		return nil
	default:
		return p.session
	}
}

func (p *Publisher) dropSession() {
	p.mu.Lock()
	session := p.session
	p.session = nil
	p.mu.Unlock()

	if session != nil {
		session.Close()
	}
}

func (p *Publisher) closeSession(ctx context.Context) {
	p.mu.Lock()
	session := p.session
	p.session = nil
	p.mu.Unlock()

	if session == nil {
		return
	}
	leaveCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = session.LeaveRoom(leaveCtx, p.cfg.OrderID)
	session.Close()
}

func (p *Publisher) reportError(err error) {
	if p.cfg.OnError != nil {
		p.cfg.OnError(err)
	}
}
