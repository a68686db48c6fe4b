package service

import (
	"context"

	"streetqr/shop-svc/internal/domain"
	"streetqr/shop-svc/internal/storage"
)

// AccountRepository persists shop accounts and their menus. Implementations
// return domain.ErrNotFound and domain.ErrDuplicateAccount for the matching
// conditions; anything else is treated as a store fault.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.ShopAccount) error
	GetAccountByEmail(ctx context.Context, email string) (*domain.ShopAccount, error)
	ReplaceMenu(ctx context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) error
	GetMenu(ctx context.Context, shopID string) (*domain.ShopMenu, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, shopID string) ([]domain.Order, error)
	// UpdateStatus sets next only while the order is still in from and
	// reports whether a row changed.
	UpdateStatus(ctx context.Context, orderID string, from, next domain.OrderStatus) (bool, error)
}

type MenuCache interface {
	Get(ctx context.Context, shopID string) (*domain.ShopMenu, error)
	Set(ctx context.Context, menu *domain.ShopMenu) error
	Fill(ctx context.Context, menu *domain.ShopMenu) error
	Invalidate(ctx context.Context, shopID string) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type StatsReader interface {
	OrderStats(ctx context.Context, shopID string) (*domain.OrderStats, error)
}

type CredentialHasher interface {
	Hash(credential string) ([]byte, error)
	Compare(hash []byte, credential string) error
}

type MenuServiceInterface interface {
	CreateAccount(ctx context.Context, email, credential string) (string, error)
	VerifyCredential(ctx context.Context, email, credential string) (*domain.ShopMenu, error)
	ReplaceMenu(ctx context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) (domain.Menu, error)
	GetMenu(ctx context.Context, shopID string) (*domain.ShopMenu, error)
	MenuQRCode(ctx context.Context, shopID string) ([]byte, error)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (string, error)
	ListOrders(ctx context.Context, shopID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Stats(ctx context.Context, shopID string) (*domain.OrderStats, error)
}

var (
	_ MenuServiceInterface  = (*MenuService)(nil)
	_ OrderServiceInterface = (*OrderService)(nil)

	_ AccountRepository = (*storage.PostgresRepository)(nil)
	_ OrderRepository   = (*storage.PostgresRepository)(nil)
	_ AccountRepository = (*storage.MongoRepository)(nil)
	_ OrderRepository   = (*storage.MongoRepository)(nil)
	_ AccountRepository = (*storage.MemoryRepository)(nil)
	_ OrderRepository   = (*storage.MemoryRepository)(nil)
	_ MenuCache         = (*storage.RedisCache)(nil)
	_ StatsReader       = (*storage.RedisStats)(nil)
	_ OrderPublisher    = (*storage.KafkaPublisher)(nil)
)
