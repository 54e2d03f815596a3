package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/elektrolab/stockroom-backend/api/routes"
	"github.com/elektrolab/stockroom-backend/internal/assembly"
	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/internal/vendors"
	"github.com/elektrolab/stockroom-backend/internal/verification"
	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
	"github.com/elektrolab/stockroom-backend/pkg/metrics"
	"github.com/elektrolab/stockroom-backend/pkg/migrate"
	"github.com/elektrolab/stockroom-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	inventoryRepo := inventory.NewRepository(dbClient.DB())
	vendorRepo := vendors.NewRepository(dbClient.DB())
	assemblyRepo := assembly.NewRepository(dbClient.DB())

	reservationMetrics := metrics.NewReservationMetrics(prometheus.DefaultRegisterer)

	inventoryService, err := inventory.NewService(inventoryRepo, dbClient, vendorRepo, cfg.Inventory)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	assemblyService, err := assembly.NewService(assemblyRepo, inventoryRepo, dbClient, reservationMetrics, cfg.Inventory)
	if err != nil {
		logg.Error(context.Background(), "failed to create assembly service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendorRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	tokenStore, err := verification.NewTokenStore(redisClient, cfg.Verification.TokenTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create verification token store", err)
		os.Exit(1)
	}

	verificationService, err := verification.NewService(tokenStore, inventoryService, verification.NewLogNotifier(logg))
	if err != nil {
		logg.Error(context.Background(), "failed to create verification service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			assemblyService,
			inventoryService,
			vendorService,
			verificationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
