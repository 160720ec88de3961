package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"campusdrop/internal/pkg/config"
	"campusdrop/internal/pkg/database"
	"campusdrop/internal/pkg/health"
	"campusdrop/internal/pkg/logger"
	nsqpkg "campusdrop/internal/pkg/nsq"
	"campusdrop/internal/pkg/retry"
	"campusdrop/internal/pkg/server"
	connectivityHandler "campusdrop/services/connectivity/handler"
	connectivityRepo "campusdrop/services/connectivity/repository"
	connectivityUC "campusdrop/services/connectivity/usecase"
	dispatchGateway "campusdrop/services/dispatch/gateway"
	dispatchHandler "campusdrop/services/dispatch/handler"
	dispatchRepo "campusdrop/services/dispatch/repository"
	dispatchUC "campusdrop/services/dispatch/usecase"
	locationGateway "campusdrop/services/location/gateway"
	locationHandler "campusdrop/services/location/handler"
	locationRepo "campusdrop/services/location/repository"
	locationUC "campusdrop/services/location/usecase"
)

const serviceName = "delivery"

func main() {
	cfg := config.InitConfig("")

	zapLogger, err := logger.NewZapLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	pgClient, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to postgres", logger.Err(err))
	}
	defer pgClient.Close()

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", logger.Err(err))
	}
	defer redisClient.Close()

	producer, err := nsqpkg.NewProducer(cfg.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to create NSQ producer", logger.Err(err))
	}
	defer producer.Stop()

	// Repositories
	catalogRepository := locationRepo.NewCatalogRepository(cfg, pgClient.GetDB())
	presenceRepository := connectivityRepo.NewConnectivityRepository(cfg, redisClient)
	requestRepository := dispatchRepo.NewRequestRepository(cfg, pgClient.GetDB())

	// Gateways
	locationGW := locationGateway.NewLocationGW(producer)
	dispatchGW := dispatchGateway.NewDispatchGW(producer)

	// Usecases
	connectivityUsecase := connectivityUC.NewConnectivityUC(cfg.Connectivity, presenceRepository)
	locationUsecase := locationUC.NewLocationUC(cfg.Location, catalogRepository, locationGW, connectivityUsecase)
	dispatchUsecase := dispatchUC.NewDispatchUC(requestRepository, dispatchGW, locationUsecase)

	// The database may still be warming up right after deploy; retry the
	// initial catalog load before giving up.
	ctx := context.Background()
	retrier := retry.NewWithDefaults()
	if err := retrier.Execute(ctx, func(ctx context.Context) error {
		_, err := locationUsecase.ReloadCatalog(ctx)
		return err
	}); err != nil {
		zapLogger.Fatal("Failed to load area catalog", logger.Err(err))
	}

	// Handlers
	locHandler := locationHandler.NewHandler(locationUsecase, cfg)
	connHandler := connectivityHandler.NewHandler(connectivityUsecase, cfg)
	dispHandler := dispatchHandler.NewHandler(dispatchUsecase, cfg)

	if err := locHandler.StartConsumers(); err != nil {
		zapLogger.Fatal("Failed to start NSQ consumers", logger.Err(err))
	}

	scheduler := dispatchUC.NewExpiryScheduler(dispatchUsecase, cfg.Scheduler)
	scheduler.Start(ctx)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(logger.EchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, serviceName)
	locHandler.RegisterRoutes(e)
	connHandler.RegisterRoutes(e)
	dispHandler.RegisterRoutes(e)

	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register(func(ctx context.Context) error {
		scheduler.Stop()
		return nil
	})
	shutdownManager.Register(func(ctx context.Context) error {
		locHandler.StopConsumers()
		return nil
	})

	gracefulServer := server.NewGracefulServer(
		e,
		zapLogger,
		cfg.Server.Port,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	if err := gracefulServer.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = shutdownManager.Shutdown(shutdownCtx)
}
