package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// CanTransition reports whether an order in status s may be set to next.
// Setting the current status again is allowed and has no effect.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == StatusPending && next == StatusCompleted
}

// MaxPrice bounds a single item price so cents times quantity stays in int64.
const MaxPrice = 1_000_000

// maxAmount bounds any decoded amount, totals included.
const maxAmount = 1e12

// MaxQuantity bounds the quantity of one order line.
const MaxQuantity = 10_000

// Price decodes from a JSON number or a numeric string. Non-finite and
// out-of-range values are rejected.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", s)
		}
		return p.set(v)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.set(v)
}

func (p *Price) set(v float64) error {
	if !Price(v).Finite() {
		return fmt.Errorf("price %v is not a finite number", v)
	}
	if math.Abs(v) > maxAmount {
		return fmt.Errorf("price %v is out of range", v)
	}
	*p = Price(v)
	return nil
}

func (p Price) Finite() bool {
	return !math.IsNaN(float64(p)) && !math.IsInf(float64(p), 0)
}

// Round returns the price rounded to whole cents.
func (p Price) Round() Price {
	return Price(float64(p.Cents()) / 100)
}

// Cents rounds the price to the smallest currency unit.
func (p Price) Cents() int64 {
	return int64(math.Round(float64(p) * 100))
}

type MenuItem struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Price   Price  `json:"price" bson:"price"`
	Remarks string `json:"remarks" bson:"remarks"`
	Image   string `json:"image" bson:"image"`
}

// Menu maps a category name to its ordered items.
type Menu map[string][]MenuItem

func (m Menu) Clone() Menu {
	out := make(Menu, len(m))
	for category, items := range m {
		out[category] = append([]MenuItem(nil), items...)
	}
	return out
}

type ShopMetadata struct {
	ShopName  string `json:"shopName" bson:"shop_name"`
	OpenHours string `json:"openHours" bson:"open_hours"`
	Address   string `json:"address" bson:"address"`
	Logo      string `json:"logo" bson:"logo"`
}

type ShopAccount struct {
	ID           string       `json:"id" bson:"_id"`
	Email        string       `json:"email" bson:"email"`
	PasswordHash []byte       `json:"-" bson:"password_hash"`
	Menu         Menu         `json:"menu" bson:"menu"`
	Metadata     ShopMetadata `json:"metadata" bson:"metadata"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updated_at"`
}

// ShopMenu is the public read view of a shop.
type ShopMenu struct {
	ShopID   string       `json:"shopId"`
	Menu     Menu         `json:"menu"`
	Metadata ShopMetadata `json:"metadata"`
}

type OrderItem struct {
	ItemID   string `json:"itemId,omitempty" bson:"item_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	Price    Price  `json:"price" bson:"price"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Remarks  string `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

type Order struct {
	ID           string      `json:"id" bson:"_id"`
	ShopID       string      `json:"shopId" bson:"shop_id"`
	CustomerName string      `json:"customerName" bson:"customer_name"`
	TableNumber  string      `json:"tableNumber" bson:"table_number"`
	Items        []OrderItem `json:"items" bson:"items"`
	Total        Price       `json:"total" bson:"total"`
	Status       OrderStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"created_at"`
}

// ItemsTotal sums price × quantity over the items, in cents.
func (o *Order) ItemsTotal() int64 {
	var cents int64
	for _, item := range o.Items {
		cents += item.Price.Cents() * int64(item.Quantity)
	}
	return cents
}

const (
	EventOrderPlaced    = "order_placed"
	EventOrderCompleted = "order_completed"
)

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	ShopID    string      `json:"shop_id"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type OrderStats struct {
	ShopID       string      `json:"shopId"`
	OrdersToday  int64       `json:"ordersToday"`
	RevenueToday float64     `json:"revenueToday"`
	Pending      int64       `json:"pending"`
	TopItems     []ItemScore `json:"topItems"`
}

type ItemScore struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}
