package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/vietship/shiptrack/client"
	jwtpkg "github.com/vietship/shiptrack/internal/pkg/jwt"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/internal/pkg/polyline"
)

// shippersim replays an encoded route as a simulated shipper device,
// publishing one point per interval. Useful for demoing a tracking
// screen without a courier on the road.
func main() {
	var (
		serverURL = flag.String("server", "http://localhost:9994", "tracking service base URL")
		token     = flag.String("token", "", "shipper JWT")
		shipperID = flag.String("shipper", "", "shipper user id; mints a dev token when -token is empty")
		secret    = flag.String("secret", "", "JWT secret for dev token minting")
		orderID   = flag.String("order", "", "order to publish for")
		route     = flag.String("route", "", "encoded polyline to replay")
		vehicle   = flag.String("vehicle", "bike", "vehicle type (bike|car)")
		interval  = flag.Duration("interval", 10*time.Second, "publish interval")
		loop      = flag.Bool("loop", false, "restart from the first point after the last")
	)
	flag.Parse()

	if *orderID == "" || *route == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *token == "" {
		if *shipperID == "" || *secret == "" {
			flag.Usage()
			os.Exit(2)
		}
		uid, err := uuid.Parse(*shipperID)
		if err != nil {
			log.Fatalf("invalid shipper id: %v", err)
		}
		cfg := &models.Config{JWT: models.JWTConfig{Secret: *secret, Expiration: 60, Issuer: "shiptrack"}}
		minted, _, err := jwtpkg.GenerateToken(uid, "shipper", cfg)
		if err != nil {
			log.Fatalf("failed to mint dev token: %v", err)
		}
		*token = minted
	}

	points, err := polyline.Decode(*route)
	if err != nil {
		log.Fatalf("invalid route polyline: %v", err)
	}
	if len(points) == 0 {
		log.Fatal("route polyline has no points")
	}

	source := &replaySource{points: points, loop: *loop}

	pub := client.NewPublisher(client.PublisherConfig{
		ServerURL: *serverURL,
		Token:     *token,
		OrderID:   *orderID,
		Vehicle:   models.VehicleType(*vehicle),
		Interval:  *interval,
		Source:    source,
		OnEstimate: func(eta *models.RouteEstimate) {
			if eta == nil {
				fmt.Println("published, ETA unknown")
				return
			}
			fmt.Printf("published, ETA %s (%dm, %ds)\n", eta.DisplayText, eta.DistanceMeters, eta.DurationSeconds)
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "publish error: %v\n", err)
		},
	})

	if err := pub.Start(); err != nil {
		log.Fatalf("failed to start publisher: %v", err)
	}
	fmt.Printf("replaying %d points for order %s every %s\n", len(points), *orderID, *interval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case <-source.exhausted():
		fmt.Println("route replay finished")
	}
	pub.Stop()
}

// replaySource walks a decoded route one point per sample.
type replaySource struct {
	mu     sync.Mutex
	points []models.Coordinate
	next   int
	loop   bool
	doneCh chan struct{}
	once   sync.Once
}

func (r *replaySource) Current(context.Context) (*client.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.points) {
		if !r.loop {
			r.once.Do(func() { close(r.done()) })
			return nil, client.ErrPositionUnavailable
		}
		r.next = 0
	}

	point := r.points[r.next]
	r.next++

	return &client.Position{
		Coordinate:     point,
		AccuracyMeters: 5,
		CapturedAt:     time.Now().UTC(),
	}, nil
}

func (r *replaySource) done() chan struct{} {
	if r.doneCh == nil {
		r.doneCh = make(chan struct{})
	}
	return r.doneCh
}

func (r *replaySource) exhausted() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done()
}
