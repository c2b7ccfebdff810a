package repository

import (
	"time"

	"github.com/vietship/shiptrack/internal/pkg/database"
	"github.com/vietship/shiptrack/internal/pkg/models"
)

// TrackingRepo implements tracking.TrackingRepo on top of Postgres (the
// order collaborator view) and Redis (location and destination caches).
type TrackingRepo struct {
	cfg         *models.Config
	db          *database.PostgresClient
	cache       *database.RedisClient
	locationTTL time.Duration
}

// NewTrackingRepo creates the tracking repository.
func NewTrackingRepo(cfg *models.Config, db *database.PostgresClient, cache *database.RedisClient) *TrackingRepo {
	return &TrackingRepo{
		cfg:         cfg,
		db:          db,
		cache:       cache,
		locationTTL: time.Duration(cfg.Tracking.LocationTTLMinutes) * time.Minute,
	}
}
