// Command api runs the Alzia storefront HTTP service.
//
// @title                       Alzia Storefront API
// @version                     1.0
// @description                 Access gate, account, catalog, checkout, admin and virtual try-on API for the Alzia cosmetics storefront.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        session
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/api"
	"github.com/alzia/storefront/internal/api/handler"
	"github.com/alzia/storefront/internal/core/ports"
	"github.com/alzia/storefront/internal/core/service"
	"github.com/alzia/storefront/internal/infrastructure/config"
	mongodb "github.com/alzia/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/alzia/storefront/internal/infrastructure/db/redis"
	"github.com/alzia/storefront/internal/infrastructure/fetch"
	"github.com/alzia/storefront/internal/infrastructure/http/handlers"
	"github.com/alzia/storefront/internal/infrastructure/imaging"
	"github.com/alzia/storefront/internal/infrastructure/queue"
	"github.com/alzia/storefront/internal/infrastructure/storage"
	"github.com/alzia/storefront/internal/infrastructure/tokenstore"
	"github.com/alzia/storefront/internal/infrastructure/tryon"
	"github.com/alzia/storefront/pkg/logger"
)

const (
	shutdownTimeout  = 15 * time.Second
	indexTimeout     = 30 * time.Second
	tokenStoreRedis  = "redis"
	fetchTimeout     = 60 * time.Second
	memorySweepEvery = 5 * time.Minute
)

func main() {
	// Config is read before the logger exists, so a bootstrap logger reports load failures.
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "alzia-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting application")

	// --- Mongo ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect error")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	customerRepo := mongodb.NewCustomerRepository(db)
	addressRepo := mongodb.NewAddressRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	tryOnRepo := mongodb.NewTryOnRepository(db)

	ictx, cancel := context.WithTimeout(ctx, indexTimeout)
	err = mongodb.EnsureIndexes(ictx, customerRepo, addressRepo, productRepo, orderRepo, eventRepo, tryOnRepo)
	cancel()
	if err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// --- Object storage ---
	store, err := storage.NewS3Store(ctx, storage.Config{
		Bucket:          cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
	})
	if err != nil {
		return err
	}

	// --- Order event dispatcher ---
	eventService := service.NewOrderEventService(eventRepo, redisdb.NewDedupChecker(rdb), logger.Component("order-events"))
	dispatcher := queue.NewDispatcher(cfg.Orders.EventWorkers, eventService, logger.Component("dispatcher"))
	// Not tied to the signal context: requests still draining in Shutdown may publish.
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	dispatcher.Start(dispatchCtx)

	// --- Services ---
	authService := service.NewAuthService(customerRepo, cfg.Session.Secret, cfg.Session.TTL, cfg.Session.SignupCredits, logger.Component("auth"))
	accountService := service.NewAccountService(customerRepo, addressRepo, orderRepo, logger.Component("account"))
	catalogService := service.NewCatalogService(productRepo, logger.Component("catalog"))
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, addressRepo, dispatcher, eventRepo, logger.Component("orders"))
	customerService := service.NewCustomerService(customerRepo, logger.Component("customers"))

	fetcher := fetch.New(fetchTimeout)
	tryOnService := service.NewTryOnService(
		customerRepo,
		tryOnRepo,
		store,
		tryon.NewClient(tryon.Config{
			Endpoint: cfg.TryOn.Endpoint,
			APIName:  cfg.TryOn.APIName,
			Token:    cfg.TryOn.APIToken,
			Timeout:  cfg.TryOn.Timeout,
		}, logger.Component("tryon-model")),
		fetcher,
		imaging.NewCompositor(),
		cfg.Storage.Prefix,
		logger.Component("tryon"),
	)

	tokenService := service.NewImageTokenService(
		newTokenStore(ctx, cfg.ImageToken.Store, rdb, log),
		fetcher,
		append([]string{store.BaseURL()}, cfg.ImageToken.Sources...),
		cfg.ImageToken.DefaultTTL,
		cfg.ImageToken.MaxTTL,
		logger.Component("image-tokens"),
	)

	// --- HTTP ---
	e := api.NewRouter(api.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.SessionCookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: !cfg.IsDevelopment(),
		}),
		Account:    handler.NewAccountHandler(accountService, orderService, tryOnService),
		Catalog:    handler.NewCatalogHandler(catalogService, accountService),
		Order:      handler.NewOrderHandler(orderService),
		Admin:      handler.NewAdminHandler(orderService, customerService, catalogService),
		TryOn:      handler.NewTryOnHandler(tryOnService),
		ImageToken: handler.NewImageTokenHandler(tokenService),
		Health:     handlers.NewHealthHandler(),
		Readiness: handlers.NewHealthDependenciesHandler(map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		}),
	}, api.Options{
		Sessions:       authService,
		CookieName:     cfg.Session.CookieName,
		Limiter:        redis_rate.NewLimiter(rdb),
		TryOnPerMinute: cfg.TryOn.RatePerMinute,
		Logger:         logger.Component("http"),
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("order events still queued at shutdown")
	}

	log.Info().Msg("application stopped")
	return nil
}

// newTokenStore picks the one-time image token backend. The in-memory store
// is per process; redis keeps single use across instances.
func newTokenStore(ctx context.Context, kind string, rdb *goredis.Client, log zerolog.Logger) ports.TokenStore {
	if kind == tokenStoreRedis {
		log.Info().Msg("image tokens stored in redis")
		return redisdb.NewTokenStore(rdb)
	}
	mem := tokenstore.NewMemory(logger.Component("image-token-store"))
	mem.Start(ctx, memorySweepEvery)
	log.Warn().Msg("image tokens stored in memory; links are not shared across instances")
	return mem
}
