package domain

import "time"

const (
	EventOrderPlaced    = "order_placed"
	EventOrderCompleted = "order_completed"
)

type OrderItem struct {
	ItemID   string  `json:"itemId,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	ShopID    string      `json:"shop_id"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
