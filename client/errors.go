package client

import (
	"errors"
	"fmt"

	"github.com/vietship/shiptrack/internal/pkg/constants"
)

// Errors surfaced by the tracking client.
var (
	// ErrSessionExpired means the server rejected the token; the caller
	// must obtain a fresh one before retrying.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnauthorized means the identity is not bound to the order.
	ErrUnauthorized = errors.New("not authorized for order")

	// ErrTrackingNotReady means no tracking session exists for the
	// order yet. Viewers show "preparing to track" and retry.
	ErrTrackingNotReady = errors.New("tracking not ready")

	// ErrStaleSample means the server already holds a newer location.
	ErrStaleSample = errors.New("location sample superseded")

	// ErrTrackingClosed means the shipping reached a terminal status.
	ErrTrackingClosed = errors.New("tracking closed")
)

// Location source errors. Implementations of LocationSource return these
// so the publisher can tell a fatal permission problem from a transient
// positioning gap.
var (
	// ErrPermissionDenied stops the publisher; there is no point
	// sampling a source the OS will never answer.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrPositionUnavailable skips the current tick only.
	ErrPositionUnavailable = errors.New("position unavailable")
)

// ServerError is an error event received over the tracking channel.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %s: %s", e.Code, e.Message)
}

// Unwrap maps stable wire codes onto client sentinel errors so callers
// can use errors.Is regardless of transport.
func (e *ServerError) Unwrap() error {
	switch e.Code {
	case constants.ErrorUnauthorized:
		return ErrUnauthorized
	case constants.ErrorTrackingNotReady:
		return ErrTrackingNotReady
	case constants.ErrorStaleSample:
		return ErrStaleSample
	case constants.ErrorTrackingClosed:
		return ErrTrackingClosed
	default:
		return nil
	}
}
