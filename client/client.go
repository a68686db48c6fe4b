// Package client is a typed client for the shop service. Callers keep the
// shop identity in an explicit Session instead of process-wide state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session identifies the shopkeeper a dashboard acts for.
type Session struct {
	ShopID string
	Email  string
}

type MenuItem struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Remarks string  `json:"remarks,omitempty"`
	Image   string  `json:"image,omitempty"`
}

type Menu map[string][]MenuItem

type ShopInfo struct {
	ShopName  string `json:"shopName"`
	OpenHours string `json:"openHours"`
	Address   string `json:"address"`
	Logo      string `json:"logo"`
}

type PublicMenu struct {
	ShopInfo
	Menu Menu `json:"menu"`
}

type OrderItem struct {
	ItemID   string  `json:"itemId,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Remarks  string  `json:"remarks,omitempty"`
}

type Checkout struct {
	ShopID       string      `json:"shopId"`
	CustomerName string      `json:"customerName"`
	TableNumber  string      `json:"tableNumber"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

type Order struct {
	ID           string      `json:"id"`
	ShopID       string      `json:"shopId"`
	CustomerName string      `json:"customerName"`
	TableNumber  string      `json:"tableNumber"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// APIError is a success:false reply or a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop service: %s (status %d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    HTTPClient
}

func New(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Signup(ctx context.Context, email, credential string) (Session, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	body := map[string]string{"email": email, "credential": credential}
	if err := c.do(ctx, http.MethodPost, "/signup", body, &out); err != nil {
		return Session{}, err
	}
	return Session{ShopID: out.UserID, Email: email}, nil
}

func (c *Client) Login(ctx context.Context, email, credential string) (Session, Menu, error) {
	var out struct {
		UserID string `json:"userId"`
		Menu   Menu   `json:"menu"`
	}
	body := map[string]string{"email": email, "credential": credential}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return Session{}, nil, err
	}
	return Session{ShopID: out.UserID, Email: email}, out.Menu, nil
}

// SaveMenu replaces the whole menu and shop info of the session's shop and
// returns the stored menu with item ids filled in.
func (c *Client) SaveMenu(ctx context.Context, s Session, menu Menu, info ShopInfo) (Menu, error) {
	body := struct {
		Menu Menu `json:"menu"`
		ShopInfo
	}{Menu: menu, ShopInfo: info}
	var out struct {
		Menu Menu `json:"menu"`
	}
	if err := c.do(ctx, http.MethodPost, "/menu/"+url.PathEscape(s.ShopID), body, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

func (c *Client) Menu(ctx context.Context, shopID string) (*PublicMenu, error) {
	var out PublicMenu
	if err := c.do(ctx, http.MethodGet, "/menu/"+url.PathEscape(shopID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlaceOrder(ctx context.Context, checkout Checkout) (string, error) {
	var out struct {
		OrderID string `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/order", checkout, &out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

// Orders returns the session's orders split by status, from a single read.
func (c *Client) Orders(ctx context.Context, s Session) (pending, completed []Order, err error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(s.ShopID), nil, &out); err != nil {
		return nil, nil, err
	}
	for _, order := range out.Orders {
		if order.Status == "completed" {
			completed = append(completed, order)
		} else {
			pending = append(pending, order)
		}
	}
	return pending, completed, nil
}

func (c *Client) CompleteOrder(ctx context.Context, orderID string) (*Order, error) {
	var out struct {
		Order *Order `json:"order"`
	}
	body := map[string]string{"status": "completed"}
	if err := c.do(ctx, http.MethodPut, "/order-status/"+url.PathEscape(orderID), body, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode >= 300 || !envelope.Success {
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
