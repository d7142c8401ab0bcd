package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/app"
	"github.com/seasistemi/deliveryops/internal/auth"
	"github.com/seasistemi/deliveryops/internal/customers"
	"github.com/seasistemi/deliveryops/internal/deliveries"
	"github.com/seasistemi/deliveryops/internal/maps"
	"github.com/seasistemi/deliveryops/internal/media"
	"github.com/seasistemi/deliveryops/internal/observability"
	"github.com/seasistemi/deliveryops/internal/platform/cache"
	"github.com/seasistemi/deliveryops/internal/routes"
	"github.com/seasistemi/deliveryops/internal/tracking"
	"github.com/seasistemi/deliveryops/internal/users"
	"github.com/seasistemi/deliveryops/internal/vehicles"
	"github.com/seasistemi/deliveryops/internal/wordpress"
	"github.com/seasistemi/deliveryops/internal/zones"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	wpClient := wordpress.NewClient(cfg.WordPressBaseURL, logger,
		wordpress.WithHTTPClient(&http.Client{Timeout: cfg.WordPressTimeout}),
		wordpress.WithObserver(metrics))

	usersService := users.NewService(wpClient, logger)
	gate := acl.NewGate(usersService, logger)

	routesService := routes.NewService(wpClient, logger)
	deliveriesService := deliveries.NewService(wpClient, logger)
	customersService := customers.NewService(wpClient, logger)
	zonesService := zones.NewService(wpClient, logger)
	mediaService := media.NewService(wpClient, logger)
	mapsService := maps.NewService(wpClient, logger)

	var trackingHandler *tracking.Handler
	var deviceSource vehicles.DeviceSource
	if cfg.TrackerConfigured() {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, position cache disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
		}
		trackingClient := tracking.NewClient(cfg.TrackerBaseURL, cfg.TrackerUsername, cfg.TrackerToken, logger)
		trackingService := tracking.NewService(trackingClient, redisClient, cfg.PositionTTL, logger)
		trackingHandler = tracking.NewHandler(trackingService, gate, logger)
		deviceSource = trackingService
	}

	authClient := auth.NewClient(cfg.WordPressBaseURL, logger)
	authHandler := auth.NewHandler(authClient, logger, usersService, routesService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthHandler:       authHandler,
		UsersHandler:      users.NewHandler(usersService, logger),
		VehiclesHandler:   vehicles.NewHandler(vehicles.NewService(wpClient, deviceSource, logger), gate, logger),
		CustomersHandler:  customers.NewHandler(customersService, gate, logger),
		ZonesHandler:      zones.NewHandler(zonesService, gate, logger),
		DeliveriesHandler: deliveries.NewHandler(deliveriesService, gate, logger),
		RoutesHandler:     routes.NewHandler(routesService, gate, logger),
		MediaHandler:      media.NewHandler(mediaService, gate, logger),
		TrackingHandler:   trackingHandler,
		MapsHandler:       maps.NewHandler(mapsService, logger),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
