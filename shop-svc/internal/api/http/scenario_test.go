package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"streetqr/client"
	"streetqr/logger"
	httpapi "streetqr/shop-svc/internal/api/http"
	"streetqr/shop-svc/internal/service"
	"streetqr/shop-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryServer(t *testing.T) *client.Client {
	repo := storage.NewMemoryRepository()
	log := logger.Discard()
	menus := service.NewMenuService(repo, nil, service.NewBcryptHasher(4), service.DefaultQRGenerator{BaseURL: "http://localhost"}, log)
	orders := service.NewOrderService(repo, nil, nil, log)

	server := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(menus, orders, log), nil))
	t.Cleanup(server.Close)
	return client.New(server.URL+"/api", server.Client())
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got %v", err)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, message, apiErr.Message)
}

func TestScenario_Accounts(t *testing.T) {
	api := newMemoryServer(t)
	ctx := context.Background()

	session, err := api.Signup(ctx, "chai@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, session.ShopID)

	_, err = api.Signup(ctx, "Chai@Example.com", "other")
	requireAPIError(t, err, http.StatusOK, "User already exists")

	again, menu, err := api.Login(ctx, "chai@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.ShopID, again.ShopID)
	assert.Empty(t, menu)

	_, _, err = api.Login(ctx, "chai@example.com", "other")
	requireAPIError(t, err, http.StatusOK, "Invalid credentials")

	_, _, err = api.Login(ctx, "nobody@example.com", "secret")
	requireAPIError(t, err, http.StatusOK, "Invalid credentials")
}

func TestScenario_MenuRoundTrip(t *testing.T) {
	api := newMemoryServer(t)
	ctx := context.Background()

	session, err := api.Signup(ctx, "chai@example.com", "secret")
	require.NoError(t, err)

	info := client.ShopInfo{ShopName: "Chai Point", OpenHours: "8-20", Address: "MG Road"}
	saved, err := api.SaveMenu(ctx, session, client.Menu{
		"Breakfast": {{Name: "Tea", Price: 20}, {Name: "Poha", Price: 35, Remarks: "spicy"}},
	}, info)
	require.NoError(t, err)
	require.Len(t, saved["Breakfast"], 2)
	assert.NotEmpty(t, saved["Breakfast"][0].ID)

	public, err := api.Menu(ctx, session.ShopID)
	require.NoError(t, err)
	assert.Equal(t, saved, public.Menu)
	assert.Equal(t, info, public.ShopInfo)

	replaced, err := api.SaveMenu(ctx, session, client.Menu{"Lunch": {{Name: "Thali", Price: 120}}}, client.ShopInfo{})
	require.NoError(t, err)

	public, err = api.Menu(ctx, session.ShopID)
	require.NoError(t, err)
	assert.Equal(t, replaced, public.Menu)
	assert.NotContains(t, public.Menu, "Breakfast")
	assert.Empty(t, public.ShopName)
}

func TestScenario_UnknownShop(t *testing.T) {
	api := newMemoryServer(t)
	ctx := context.Background()

	_, err := api.Menu(ctx, "does-not-exist")
	requireAPIError(t, err, http.StatusOK, "Shopkeeper not found")

	_, err = api.SaveMenu(ctx, client.Session{ShopID: "does-not-exist"}, client.Menu{}, client.ShopInfo{})
	requireAPIError(t, err, http.StatusOK, "Shopkeeper not found")

	_, err = api.CompleteOrder(ctx, "does-not-exist")
	requireAPIError(t, err, http.StatusNotFound, "Order not found")
}

func TestScenario_OrderLifecycle(t *testing.T) {
	api := newMemoryServer(t)
	ctx := context.Background()

	shop, err := api.Signup(ctx, "chai@example.com", "secret")
	require.NoError(t, err)
	other, err := api.Signup(ctx, "dosa@example.com", "secret")
	require.NoError(t, err)

	_, err = api.SaveMenu(ctx, shop, client.Menu{"Breakfast": {{Name: "Tea", Price: 20}}}, client.ShopInfo{})
	require.NoError(t, err)

	orderID, err := api.PlaceOrder(ctx, client.Checkout{
		ShopID:       shop.ShopID,
		CustomerName: "Amit",
		TableNumber:  "4",
		Items:        []client.OrderItem{{Name: "Tea", Price: 20, Quantity: 2, Remarks: "less sugar"}},
		Total:        40,
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	_, err = api.PlaceOrder(ctx, client.Checkout{
		ShopID:       other.ShopID,
		CustomerName: "Ravi",
		TableNumber:  "1",
		Items:        []client.OrderItem{{Name: "Dosa", Price: 60, Quantity: 1}},
		Total:        60,
	})
	require.NoError(t, err)

	pending, completed, err := api.Orders(ctx, shop)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Empty(t, completed)
	assert.Equal(t, orderID, pending[0].ID)
	assert.Equal(t, 40.0, pending[0].Total)
	assert.Equal(t, "pending", pending[0].Status)
	assert.Equal(t, "less sugar", pending[0].Items[0].Remarks)

	_, err = api.SaveMenu(ctx, shop, client.Menu{"Breakfast": {{Name: "Tea", Price: 25}}}, client.ShopInfo{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		order, err := api.CompleteOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, "completed", order.Status)
	}

	pending, completed, err = api.Orders(ctx, shop)
	require.NoError(t, err)
	assert.Empty(t, pending)
	require.Len(t, completed, 1)
	assert.Equal(t, orderID, completed[0].ID)
	assert.Equal(t, 40.0, completed[0].Total)
}

func TestScenario_RejectedOrders(t *testing.T) {
	api := newMemoryServer(t)
	ctx := context.Background()

	_, err := api.PlaceOrder(ctx, client.Checkout{
		ShopID:       "S1",
		CustomerName: "Amit",
		TableNumber:  "4",
		Items:        []client.OrderItem{{Name: "Tea", Price: 20, Quantity: 2}},
		Total:        30,
	})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = api.PlaceOrder(ctx, client.Checkout{ShopID: "S1", TableNumber: "4"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
