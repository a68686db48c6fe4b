package service

import (
	"context"

	"streetqr/agg-svc/internal/domain"
	"streetqr/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordPlaced(ctx context.Context, event domain.OrderEvent) error
	RecordCompleted(ctx context.Context, event domain.OrderEvent) error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
