package storage

import (
	"context"
	"sort"
	"sync"

	"streetqr/shop-svc/internal/domain"
)

// MemoryRepository keeps accounts and orders in process. Every read and
// write copies, so callers never share slices with the store.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.ShopAccount
	byEmail  map[string]string
	orders   map[string]*domain.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]*domain.ShopAccount),
		byEmail:  make(map[string]string),
		orders:   make(map[string]*domain.Order),
	}
}

func (r *MemoryRepository) CreateAccount(_ context.Context, account *domain.ShopAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return domain.ErrDuplicateAccount
	}
	stored := copyAccount(account)
	r.accounts[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return nil
}

func (r *MemoryRepository) GetAccountByEmail(_ context.Context, email string) (*domain.ShopAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *MemoryRepository) ReplaceMenu(_ context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[shopID]
	if !ok {
		return domain.ErrNotFound
	}
	account.Menu = menu.Clone()
	account.Metadata = meta
	return nil
}

func (r *MemoryRepository) GetMenu(_ context.Context, shopID string) (*domain.ShopMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[shopID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.ShopMenu{
		ShopID:   account.ID,
		Menu:     account.Menu.Clone(),
		Metadata: account.Metadata,
	}, nil
}

func (r *MemoryRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *MemoryRepository) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyOrder(order), nil
}

func (r *MemoryRepository) ListOrders(_ context.Context, shopID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []domain.Order{}
	for _, order := range r.orders {
		if order.ShopID == shopID {
			orders = append(orders, *copyOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, orderID string, from, next domain.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = next
	return true, nil
}

func copyAccount(account *domain.ShopAccount) *domain.ShopAccount {
	out := *account
	out.PasswordHash = append([]byte(nil), account.PasswordHash...)
	out.Menu = account.Menu.Clone()
	return &out
}

func copyOrder(order *domain.Order) *domain.Order {
	out := *order
	out.Items = append([]domain.OrderItem(nil), order.Items...)
	return &out
}
