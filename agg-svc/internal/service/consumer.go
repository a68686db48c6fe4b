package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"streetqr/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *slog.Logger

	// RetryBackoff is the first wait after a failed store write. It doubles
	// per attempt up to MaxBackoff.
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{
		Reader:       reader,
		Store:        store,
		Log:          log,
		RetryBackoff: time.Second,
		MaxBackoff:   30 * time.Second,
	}
}

// Start reads until ctx is cancelled. A message is committed once it has
// been applied or found unreadable. A store failure is retried on the same
// message, so no later offset is committed past it.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("starting order event consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("order event consumer stopped")
				return
			}
			c.Log.Error("error reading message", slog.Any("error", err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Warn("dropping unreadable message", slog.Int64("offset", message.Offset), slog.Any("error", err))
			c.commit(ctx, message)
			continue
		}

		if !c.apply(ctx, message, event) {
			c.Log.Info("order event consumer stopped")
			return
		}
		c.commit(ctx, message)
	}
}

// apply retries ProcessEvent until it succeeds. It returns false only when
// ctx is cancelled first.
func (c *Consumer) apply(ctx context.Context, message kafka.Message, event domain.OrderEvent) bool {
	backoff := c.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	for attempt := 1; ; attempt++ {
		err := c.ProcessEvent(ctx, event)
		if err == nil {
			return true
		}
		c.Log.Error("error applying order event",
			slog.String("type", event.Type),
			slog.String("order_id", event.OrderID),
			slog.Int64("offset", message.Offset),
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", backoff),
			slog.Any("error", err))
		if ctx.Err() != nil {
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		backoff *= 2
		if c.MaxBackoff > 0 && backoff > c.MaxBackoff {
			backoff = c.MaxBackoff
		}
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	switch event.Type {
	case domain.EventOrderPlaced:
		if err := c.Store.RecordPlaced(ctx, event); err != nil {
			return fmt.Errorf("record placed: %w", err)
		}
	case domain.EventOrderCompleted:
		if err := c.Store.RecordCompleted(ctx, event); err != nil {
			return fmt.Errorf("record completed: %w", err)
		}
	default:
		c.Log.Debug("ignoring order event", slog.String("type", event.Type))
		return nil
	}

	c.Log.Info("processed order event",
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
		slog.String("shop_id", event.ShopID))
	return nil
}

func (c *Consumer) commit(ctx context.Context, message kafka.Message) {
	if err := c.Reader.CommitMessages(ctx, message); err != nil {
		c.Log.Warn("commit failed", slog.Int64("offset", message.Offset), slog.Any("error", err))
	}
}
