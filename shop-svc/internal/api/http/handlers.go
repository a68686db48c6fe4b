package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"streetqr/shop-svc/internal/domain"
	"streetqr/shop-svc/internal/service"

	"github.com/gorilla/mux"
)

// MaxBodyBytes matches the request size the web client was built against.
const MaxBodyBytes = 5 << 20

const (
	msgUserExists      = "User already exists"
	msgBadCredentials  = "Invalid credentials"
	msgShopNotFound    = "Shopkeeper not found"
	msgOrderNotFound   = "Order not found"
	msgInternalError   = "internal error"
	msgInvalidRequest  = "invalid request body"
	msgStatsNotEnabled = "order stats are not available"
)

type Handler struct {
	Menus  service.MenuServiceInterface
	Orders service.OrderServiceInterface
	Log    *slog.Logger
}

func NewHandler(menus service.MenuServiceInterface, orders service.OrderServiceInterface, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Menus: menus, Orders: orders, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/signup", h.signup).Methods("POST")
	r.HandleFunc("/login", h.login).Methods("POST")

	r.HandleFunc("/menu/{shopId}", h.replaceMenu).Methods("POST")
	r.HandleFunc("/menu/{shopId}", h.getMenu).Methods("GET")
	r.HandleFunc("/menu/{shopId}/qrcode", h.getMenuQRCode).Methods("GET")

	r.HandleFunc("/order", h.placeOrder).Methods("POST")
	r.HandleFunc("/orders/{shopId}", h.listOrders).Methods("GET")
	r.HandleFunc("/orders/{shopId}/stats", h.orderStats).Methods("GET")
	r.HandleFunc("/order-status/{orderId}", h.setStatus).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "shop-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	shopID, err := h.Menus.CreateAccount(r.Context(), req.Email, req.secret())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, signupResponse{Success: true, UserID: shopID})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	shop, err := h.Menus.VerifyCredential(r.Context(), req.Email, req.secret())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, UserID: shop.ShopID, Menu: shop.Menu})
}

func (h *Handler) replaceMenu(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	var req menuRequest
	if !h.decode(w, r, &req) {
		return
	}

	menu, err := h.Menus.ReplaceMenu(r.Context(), shopID, req.Menu, req.metadata())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menuSavedResponse{Success: true, Menu: menu, ShopID: shopID})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	shop, err := h.Menus.GetMenu(r.Context(), mux.Vars(r)["shopId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menuResponse{
		Success:   true,
		Menu:      shop.Menu,
		Logo:      shop.Metadata.Logo,
		ShopName:  shop.Metadata.ShopName,
		OpenHours: shop.Metadata.OpenHours,
		Address:   shop.Metadata.Address,
	})
}

func (h *Handler) getMenuQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Menus.MenuQRCode(r.Context(), mux.Vars(r)["shopId"])
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: msgShopNotFound})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	orderID, err := h.Orders.PlaceOrder(r.Context(), req.order())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderPlacedResponse{Success: true, OrderID: orderID})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListOrders(r.Context(), mux.Vars(r)["shopId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

func (h *Handler) orderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Orders.Stats(r.Context(), mux.Vars(r)["shopId"])
	if errors.Is(err, service.ErrStatsUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: msgStatsNotEnabled})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.Orders.SetStatus(r.Context(), mux.Vars(r)["orderId"], req.Status)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: msgOrderNotFound})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Success: true, Order: order})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: msgInvalidRequest + ": " + err.Error()})
		return false
	}
	return true
}

// fail turns business errors into success:false payloads and everything
// else into a logged 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateAccount):
		writeJSON(w, http.StatusOK, errorResponse{Message: msgUserExists})
	case errors.Is(err, domain.ErrAuthFailure):
		writeJSON(w, http.StatusOK, errorResponse{Message: msgBadCredentials})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusOK, errorResponse{Message: msgShopNotFound})
	default:
		h.Log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: msgInternalError})
	}
}

// writeJSON encodes before writing the header so an unencodable body becomes
// a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		slog.Error("response encoding failed", slog.Any("error", err))
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(errorResponse{Message: msgInternalError})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
