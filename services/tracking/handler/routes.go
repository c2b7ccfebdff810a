package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vietship/shiptrack/internal/pkg/health"
	"github.com/vietship/shiptrack/internal/pkg/middleware"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
	httphandler "github.com/vietship/shiptrack/services/tracking/handler/http"
	wshandler "github.com/vietship/shiptrack/services/tracking/handler/websocket"
)

// RegisterRoutes wires the tracking service's HTTP and WebSocket surface
// onto the echo instance.
func RegisterRoutes(e *echo.Echo, cfg *models.Config, trackingUC tracking.TrackingUC) {
	e.GET("/ping", health.NewPingHandler(cfg.App.Name))

	// WebSocket channel; the manager authenticates during the handshake.
	wsManager := wshandler.NewWebSocketManager(cfg, trackingUC)
	e.GET("/ws/tracking", wsManager.HandleWebSocket)

	// REST fallback surface.
	trackingHandler := httphandler.NewTrackingHandler(trackingUC)
	api := e.Group("/tracking", middleware.JWTAuthMiddleware(cfg.JWT))
	api.POST("/location", trackingHandler.UpdateLocation)
	api.GET("/order/:orderId", trackingHandler.GetTrackingInfo)
}
