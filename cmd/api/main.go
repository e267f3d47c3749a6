package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vuhoangtran/shopcart-backend/api/routes"
	"github.com/vuhoangtran/shopcart-backend/internal/cart"
	"github.com/vuhoangtran/shopcart-backend/internal/catalog"
	"github.com/vuhoangtran/shopcart-backend/pkg/config"
	"github.com/vuhoangtran/shopcart-backend/pkg/db"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
	"github.com/vuhoangtran/shopcart-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := catalog.Migrate(dbClient.DB()); err != nil {
			logg.Error(context.Background(), "failed to migrate catalog", err)
			os.Exit(1)
		}
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.FeatureFlags.SeedCatalog {
		if err := catalogRepo.SeedIfEmpty(context.Background(), catalog.DefaultProducts()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := catalogSvc.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Cart.SlotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartSvc, err := cart.NewService(cartStore, catalogSvc, cfg.Cart.TaxBasisPoints)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
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
		Handler: routes.New(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			CatalogSvc: catalogSvc,
			CartSvc:    cartSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
