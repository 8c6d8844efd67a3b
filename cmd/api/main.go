package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dasportz/booking-backend/api/routes"
	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/internal/catalog"
	"github.com/dasportz/booking-backend/internal/checkout"
	"github.com/dasportz/booking-backend/pkg/config"
	"github.com/dasportz/booking-backend/pkg/env"
	"github.com/dasportz/booking-backend/pkg/instance"
	"github.com/dasportz/booking-backend/pkg/logger"
	"github.com/dasportz/booking-backend/pkg/metrics"
	"github.com/dasportz/booking-backend/pkg/orderapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	stringing, err := loadStringingCatalog(cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to load stringing catalog", err)
		os.Exit(1)
	}

	registry, err := booking.NewRegistry(cfg.Pricing, stringing)
	if err != nil {
		logg.Error(context.Background(), "failed to build booking rules", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(promRegistry)

	orderClient, err := orderapi.NewClient(
		cfg.Backend.BaseURL,
		orderapi.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		orderapi.WithRetry(cfg.Backend.MaxAttempts, cfg.Backend.RetryDelay),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order backend client", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(orderClient, checkout.Options{
		WhatsApp:     cfg.WhatsApp,
		AcceptedPage: cfg.Backend.AcceptedPageURL,
		TestMode:     cfg.Backend.TestMode,
	}, bookingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"backend":  cfg.Backend.BaseURL,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, registry, checkoutService, bookingMetrics, promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

// loadStringingCatalog reads the configured catalog file, or returns nil to use the
// built-in prices.
func loadStringingCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.StringingPath == "" {
		return nil, nil
	}
	f, err := os.Open(cfg.Catalog.StringingPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return catalog.LoadYAML(f)
}
