package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"mesaYaHours/internal/config"
	availusecase "mesaYaHours/internal/modules/availability/application/usecase"
	availinfra "mesaYaHours/internal/modules/availability/infrastructure"
	availhttp "mesaYaHours/internal/modules/availability/interface"
	hoursusecase "mesaYaHours/internal/modules/hours/application/usecase"
	hoursdomain "mesaYaHours/internal/modules/hours/domain"
	hoursinfra "mesaYaHours/internal/modules/hours/infrastructure"
	hourshttp "mesaYaHours/internal/modules/hours/interface"
	handler "mesaYaHours/internal/modules/realtime/application/handler"
	usecase "mesaYaHours/internal/modules/realtime/application/usecase"
	"mesaYaHours/internal/modules/realtime/infrastructure"
	transport "mesaYaHours/internal/modules/realtime/interface"
	"mesaYaHours/internal/platform/broker"
	"mesaYaHours/internal/shared/auth"
	"mesaYaHours/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.Topics()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Venue schedules live in memory; the Kafka stream and the seed file are
	// the sources of truth that fill it.
	scheduleRepo := hoursinfra.NewMemoryScheduleRepository()
	seedCapacities := map[string]int{}
	if cfg.Seed.Path != "" {
		seed, err := hoursinfra.LoadVenueSeed(cfg.Seed.Path)
		if err != nil {
			slog.Error("seed load failed", slog.String("path", cfg.Seed.Path), slog.Any("error", err))
			os.Exit(1)
		}
		seedCapacities, err = seed.Apply(ctx, scheduleRepo)
		if err != nil {
			slog.Error("seed apply failed", slog.String("path", cfg.Seed.Path), slog.Any("error", err))
			os.Exit(1)
		}
	}

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	// Inventory REST client with the seed capacities as fallback when the
	// service is unreachable.
	inventoryClient := availinfra.NewInventoryHTTPClient(cfg.Inventory.BaseURL, cfg.Inventory.Token, cfg.Inventory.Timeout, nil)
	capacitySource := availinfra.NewFallbackCapacity(inventoryClient, seedCapacities)
	reservationCache := availusecase.NewReservationCache()

	statusOpts := hoursdomain.StatusOptions{FeedOverride: cfg.Hours.FeedOverride}

	queryUC := hoursusecase.NewScheduleQueryUseCase(scheduleRepo, statusOpts)
	editUC := hoursusecase.NewEditDayUseCase(scheduleRepo)
	reconcileUC := hoursusecase.NewReconcileFeedUseCase(scheduleRepo)
	registerUC := hoursusecase.NewRegisterVenueUseCase(scheduleRepo)
	evaluateUC := availusecase.NewEvaluateVenueUseCase(scheduleRepo, capacitySource, inventoryClient, reservationCache, statusOpts)
	notifyUC := usecase.NewNotifyAvailabilityUseCase(evaluateUC, broadcastUC)

	// JWT validator used to validate tokens issued by the platform auth service
	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)

	// Registrar handlers de tópicos (cada feature)
	registry.Register(handler.NewFeedSnapshotHandler(cfg.Kafka.FeedTopic, reconcileUC, broadcastUC, notifyUC))
	registry.Register(handler.NewVenueCreatedHandler(cfg.Kafka.VenueCreatedTopic, registerUC, reconcileUC))
	for _, topic := range cfg.Kafka.ReservationTopics {
		registry.Register(handler.NewReservationStreamHandler(topic, reservationCache, notifyUC))
	}

	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topics())

	// Echo server
	e := echo.New()
	e.Logger.SetOutput(log.Writer())

	hoursHandler := hourshttp.NewHoursHandler(queryUC, editUC, reconcileUC)
	availabilityHandler := availhttp.NewAvailabilityHandler(evaluateUC)
	wsHandler := transport.NewWebsocketHandler(hub, validator, evaluateUC)
	monitorHandler := transport.NewMonitorWebsocketHandler(hub, validator)
	pushHandler := transport.NewAvailabilityPushHandler(notifyUC)

	manage := auth.RequireRoles(validator, "admin", "manager")

	api := e.Group("/api/v1")
	api.GET("/venues/:venueId/hours", hoursHandler.GetWeek)
	api.PUT("/venues/:venueId/hours/:day", hoursHandler.PutDay, manage)
	api.POST("/venues/:venueId/hours/feed", hoursHandler.PostFeed, manage)
	api.GET("/venues/:venueId/hours/open", hoursHandler.GetOpen)
	api.GET("/venues/:venueId/hours/next-open", hoursHandler.GetNextOpen)
	api.POST("/venues/:venueId/reservations/validate", hoursHandler.PostValidate)
	api.GET("/venues/:venueId/availability", availabilityHandler.GetAvailability)
	api.POST("/venues/:venueId/availability/refresh", pushHandler, manage)

	// Venue availability stream: allow token in path or via query/header fallback
	e.GET("/ws/venues/:venue/:token", wsHandler)
	e.GET("/ws/venues/:venue", wsHandler)
	e.GET("/ws/monitor", monitorHandler)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	// Esperar señales
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
		Service:   cfg.Service,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
