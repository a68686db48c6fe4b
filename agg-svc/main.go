package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"streetqr/agg-svc/internal/service"
	"streetqr/agg-svc/internal/storage"
	"streetqr/config"
	"streetqr/logger"
)

func main() {
	cfg := config.Load()
	lg := logger.New("agg-svc", cfg.LogLevel)

	if !cfg.KafkaEnabled() || !cfg.RedisEnabled() {
		log.Fatal("agg-svc needs KAFKA_BROKER and REDIS_HOST")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), lg)
	consumer.Start(ctx)
}
