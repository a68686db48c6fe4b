package domain

import (
	"fmt"
	"strings"
)

func (m Menu) Validate() error {
	for category, items := range m {
		if strings.TrimSpace(category) == "" {
			return Invalid("menu", "category name is required")
		}
		for i, item := range items {
			if strings.TrimSpace(item.Name) == "" {
				return Invalid(fmt.Sprintf("menu.%s[%d].name", category, i), "is required")
			}
			if err := checkPrice(item.Price); err != "" {
				return Invalid(fmt.Sprintf("menu.%s[%d].price", category, i), err)
			}
		}
	}
	return nil
}

// Validate checks the fields a customer must supply at checkout. The total
// is compared with the submitted items only, never with live menu prices.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ShopID) == "" {
		return Invalid("shopId", "is required")
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return Invalid("customerName", "is required")
	}
	if strings.TrimSpace(o.TableNumber) == "" {
		return Invalid("tableNumber", "is required")
	}
	if len(o.Items) == 0 {
		return Invalid("items", "at least one item is required")
	}
	for i, item := range o.Items {
		if strings.TrimSpace(item.Name) == "" && item.ItemID == "" {
			return Invalid(fmt.Sprintf("items[%d]", i), "name or itemId is required")
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return Invalid(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("must be between 1 and %d", MaxQuantity))
		}
		if err := checkPrice(item.Price); err != "" {
			return Invalid(fmt.Sprintf("items[%d].price", i), err)
		}
	}
	if !o.Total.Finite() {
		return Invalid("total", "must be a finite number")
	}
	if o.Total.Cents() != o.ItemsTotal() {
		return Invalid("total", fmt.Sprintf("%.2f does not match items total %.2f",
			float64(o.Total), float64(o.ItemsTotal())/100))
	}
	return nil
}

func checkPrice(p Price) string {
	switch {
	case !p.Finite():
		return "must be a finite number"
	case p < 0:
		return "must not be negative"
	case p > MaxPrice:
		return fmt.Sprintf("must not exceed %d", MaxPrice)
	}
	return ""
}
