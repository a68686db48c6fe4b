package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streetqr/config"
	"streetqr/logger"
	httpapi "streetqr/shop-svc/internal/api/http"
	"streetqr/shop-svc/internal/service"
	"streetqr/shop-svc/internal/storage"
)

type repository interface {
	service.AccountRepository
	service.OrderRepository
}

func main() {
	cfg := config.Load()
	lg := logger.New("shop-svc", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepository(ctx, cfg, lg)
	defer closeRepo()

	var (
		cache     service.MenuCache
		stats     service.StatsReader
		publisher service.OrderPublisher
	)
	if cfg.RedisEnabled() {
		rdb := config.MustInitRedis(cfg)
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, cfg.MenuCacheTTL)
		stats = storage.NewRedisStats(rdb)
	} else {
		lg.Info("redis disabled, menu cache and order stats are off")
	}
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		lg.Info("kafka disabled, order events are not published")
	}

	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}
	menus := service.NewMenuService(repo, cache, service.NewBcryptHasher(cfg.BcryptCost), qr, lg)
	orders := service.NewOrderService(repo, publisher, stats, lg)

	handler := httpapi.NewHandler(menus, orders, lg)
	router := httpapi.NewRouter(handler, cfg.CORSOrigins)

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, router, lg); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed:", err)
	}
}

func openRepository(ctx context.Context, cfg config.Config, lg *slog.Logger) (repository, func()) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		lg.Warn("using in-memory store, data is lost on restart")
		return storage.NewMemoryRepository(), func() {}

	case config.DriverMongo:
		client := config.MustInitMongo(ctx, cfg)
		repo := storage.NewMongoRepository(client.Database(cfg.MongoDB))
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to ensure indexes:", err)
		}
		return repo, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(shutdownCtx)
		}

	case config.DriverPostgres:
		db := config.MustInitPostgres(cfg)
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		return repo, func() { db.Close() }

	default:
		log.Fatalf("Unknown STORE_DRIVER %q", cfg.StoreDriver)
		return nil, nil
	}
}
