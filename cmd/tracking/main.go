package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/vietship/shiptrack/internal/pkg/config"
	"github.com/vietship/shiptrack/internal/pkg/database"
	"github.com/vietship/shiptrack/internal/pkg/logger"
	natspkg "github.com/vietship/shiptrack/internal/pkg/nats"
	"github.com/vietship/shiptrack/internal/pkg/server"
	"github.com/vietship/shiptrack/services/tracking/gateway"
	"github.com/vietship/shiptrack/services/tracking/handler"
	natsHandler "github.com/vietship/shiptrack/services/tracking/handler/nats"
	"github.com/vietship/shiptrack/services/tracking/repository"
	"github.com/vietship/shiptrack/services/tracking/usecase"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/tracking.env"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	trackingRepo := repository.NewTrackingRepo(configs, postgresClient, redisClient)
	trackingGW := gateway.NewTrackingGW(configs, natsClient)
	trackingUC := usecase.NewTrackingUC(configs, trackingRepo, trackingGW)

	nh := natsHandler.NewNatsHandler(natsClient, trackingUC)
	if err := nh.Start(); err != nil {
		zapLogger.Fatal("Failed to start NATS consumers", logger.Err(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(logger.EchoMiddleware(zapLogger))

	handler.RegisterRoutes(e, configs, trackingUC)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(context.Context) error {
		nh.Stop()
		return nil
	})
	shutdown.Register(func(context.Context) error {
		natsClient.Close()
		return nil
	})
	shutdown.Register(func(context.Context) error {
		return redisClient.Close()
	})
	shutdown.Register(func(context.Context) error {
		return postgresClient.Close()
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	if err := shutdown.Shutdown(context.Background()); err != nil {
		zapLogger.Error("Shutdown completed with errors", logger.Err(err))
	}
}
