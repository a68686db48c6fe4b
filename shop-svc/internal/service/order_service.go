package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"streetqr/shop-svc/internal/domain"

	"github.com/google/uuid"
)

var ErrStatsUnavailable = errors.New("order stats are not configured")

type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	stats     StatsReader
	log       *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewOrderService builds the Order Ledger. publisher and stats may be nil.
func NewOrderService(repo OrderRepository, publisher OrderPublisher, stats StatsReader, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		stats:     stats,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// PlaceOrder records a new pending order. The total and item prices are
// taken as submitted; they are checked against each other but not against
// the shop's current menu.
func (s *OrderService) PlaceOrder(ctx context.Context, order *domain.Order) (string, error) {
	order.ShopID = strings.TrimSpace(order.ShopID)
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	order.TableNumber = strings.TrimSpace(order.TableNumber)
	if err := order.Validate(); err != nil {
		return "", err
	}

	order.ID = s.newID()
	order.Total = order.Total.Round()
	order.Status = domain.StatusPending
	order.CreatedAt = s.now().UTC()
	order.Items = append([]domain.OrderItem(nil), order.Items...)

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return "", fault("create order", err)
	}

	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("shop_id", order.ShopID),
		slog.Int("items", len(order.Items)))

	s.publish(ctx, domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   order.ID,
		ShopID:    order.ShopID,
		Total:     float64(order.Total),
		Items:     order.Items,
		Timestamp: order.CreatedAt,
	})
	return order.ID, nil
}

// ListOrders returns every order of a shop, newest first, in one read.
func (s *OrderService) ListOrders(ctx context.Context, shopID string) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx, shopID)
	if err != nil {
		return nil, fault("list orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// SetStatus moves an order forward. Re-applying the current status returns
// the order unchanged.
func (s *OrderService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Invalid("status", "must be pending or completed")
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fault("get order", err)
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransition(status) {
		return nil, domain.ErrInvalidTransition
	}

	changed, err := s.repo.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, fault("update status", err)
	}
	if !changed {
		// Lost a race with another update; report what is stored now.
		current, err := s.repo.GetOrder(ctx, orderID)
		if err != nil {
			return nil, fault("get order", err)
		}
		if current.Status != status {
			return nil, domain.ErrInvalidTransition
		}
		return current, nil
	}
	order.Status = status

	if status == domain.StatusCompleted {
		s.publish(ctx, domain.OrderEvent{
			Type:      domain.EventOrderCompleted,
			OrderID:   order.ID,
			ShopID:    order.ShopID,
			Total:     float64(order.Total),
			Timestamp: s.now().UTC(),
		})
	}
	return order, nil
}

func (s *OrderService) Stats(ctx context.Context, shopID string) (*domain.OrderStats, error) {
	if s.stats == nil {
		return nil, ErrStatsUnavailable
	}
	stats, err := s.stats.OrderStats(ctx, shopID)
	if err != nil {
		return nil, fault("order stats", err)
	}
	return stats, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warn("order event publish failed",
			slog.String("type", event.Type),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err))
	}
}
