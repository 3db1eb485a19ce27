package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/izishop-backend/api/controllers"
	"github.com/angelmondragon/izishop-backend/api/routes"
	"github.com/angelmondragon/izishop-backend/internal/cart"
	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/config"
	"github.com/angelmondragon/izishop-backend/pkg/db"
	"github.com/angelmondragon/izishop-backend/pkg/kv"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/metrics"
	"github.com/angelmondragon/izishop-backend/pkg/migrate"
	"github.com/angelmondragon/izishop-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	var readiness []controllers.Dependency

	var dbClient *db.Client
	if cfg.DB.Enabled(cfg.Cart) {
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		dbClient = client
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		readiness = append(readiness, controllers.Dependency{Name: "db", Pinger: dbClient})
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		readiness = append(readiness, controllers.Dependency{Name: "redis", Pinger: redisClient})
	}

	store, err := cartStore(cfg, dbClient, redisClient)
	if err != nil {
		return err
	}

	policy, err := cart.PolicyFromConfig(cfg.Pricing)
	if err != nil {
		return fmt.Errorf("pricing policy: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := cart.NewSessions(cart.SessionsOptions{
		Store:       store,
		BaseKey:     cfg.Cart.StorageKey,
		Policy:      policy,
		Logger:      logg,
		Metrics:     metrics.NewCartMetrics(reg),
		MaxSessions: cfg.Cart.MaxSessions,
		IdleTTL:     cfg.Cart.IdleTTL,
	})
	cartService, err := cart.NewService(sessions, cat)
	if err != nil {
		return fmt.Errorf("cart service: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"cart_store": cfg.Cart.Store,
		"products":   len(cat.Products()),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			cat,
			cartService,
			redisClient,
			metrics.NewHTTPMetrics(reg),
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			readiness...,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func cartStore(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client) (kv.Store, error) {
	switch cfg.Cart.Store {
	case config.CartStoreMemory:
		return kv.NewMemory(), nil
	case config.CartStoreSQLite, config.CartStorePostgres:
		if dbClient == nil {
			return nil, errors.New("database client required for sql cart store")
		}
		return kv.NewSQL(dbClient.DB(), cfg.Cart.SlotTTL), nil
	case config.CartStoreRedis:
		if redisClient == nil {
			return nil, errors.New("redis client required for redis cart store")
		}
		return kv.NewRedis(redisClient, cfg.Cart.SlotTTL), nil
	}
	return nil, fmt.Errorf("unsupported cart store %q", cfg.Cart.Store)
}
