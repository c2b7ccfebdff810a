package usecase

import (
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
)

// TrackingUC implements tracking.TrackingUC. One instance serves all
// handlers; per-order state lives in the room registry.
type TrackingUC struct {
	cfg   *models.Config
	repo  tracking.TrackingRepo
	gw    tracking.TrackingGW
	rooms *Registry
}

// NewTrackingUC creates the tracking usecase.
func NewTrackingUC(
	cfg *models.Config,
	repo tracking.TrackingRepo,
	gw tracking.TrackingGW,
) *TrackingUC {
	return &TrackingUC{
		cfg:   cfg,
		repo:  repo,
		gw:    gw,
		rooms: NewRegistry(),
	}
}
