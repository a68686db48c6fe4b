package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"streetqr/shop-svc/internal/domain"
)

// flexString accepts a JSON string or number, for fields like table numbers
// that browsers send either way.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("expected a string or a number")
	}
	*s = flexString(n.String())
	return nil
}

type credentialsRequest struct {
	Email      string `json:"email"`
	Credential string `json:"credential"`
	// Password is the field name used by the existing web client.
	Password string `json:"password"`
}

func (r credentialsRequest) secret() string {
	if r.Credential != "" {
		return r.Credential
	}
	return r.Password
}

func (r credentialsRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return domain.Invalid("email", "is required")
	}
	if r.secret() == "" {
		return domain.Invalid("credential", "is required")
	}
	return nil
}

type menuRequest struct {
	Menu      domain.Menu `json:"menu"`
	ShopName  string      `json:"shopName"`
	OpenHours string      `json:"openHours"`
	Address   string      `json:"address"`
	Logo      string      `json:"logo"`
}

func (r menuRequest) metadata() domain.ShopMetadata {
	return domain.ShopMetadata{
		ShopName:  r.ShopName,
		OpenHours: r.OpenHours,
		Address:   r.Address,
		Logo:      r.Logo,
	}
}

type orderItemRequest struct {
	ItemID   string       `json:"itemId"`
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    domain.Price `json:"price"`
	Quantity int          `json:"quantity"`
	Remarks  string       `json:"remarks"`
}

type orderRequest struct {
	ShopID       string             `json:"shopId"`
	CustomerName string             `json:"customerName"`
	TableNumber  flexString         `json:"tableNumber"`
	Items        []orderItemRequest `json:"items"`
	Total        domain.Price       `json:"total"`
}

func (r orderRequest) validate() error {
	switch {
	case strings.TrimSpace(r.ShopID) == "":
		return domain.Invalid("shopId", "is required")
	case strings.TrimSpace(r.CustomerName) == "":
		return domain.Invalid("customerName", "is required")
	case strings.TrimSpace(string(r.TableNumber)) == "":
		return domain.Invalid("tableNumber", "is required")
	case len(r.Items) == 0:
		return domain.Invalid("items", "at least one item is required")
	}
	return nil
}

func (r orderRequest) order() *domain.Order {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		itemID := item.ItemID
		if itemID == "" {
			itemID = item.ID
		}
		items = append(items, domain.OrderItem{
			ItemID:   itemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Remarks:  strings.TrimSpace(item.Remarks),
		})
	}
	return &domain.Order{
		ShopID:       r.ShopID,
		CustomerName: r.CustomerName,
		TableNumber:  string(r.TableNumber),
		Items:        items,
		Total:        r.Total,
	}
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type signupResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	UserID  string      `json:"userId"`
	Menu    domain.Menu `json:"menu"`
}

type menuSavedResponse struct {
	Success bool        `json:"success"`
	Menu    domain.Menu `json:"menu"`
	ShopID  string      `json:"shopId"`
}

type menuResponse struct {
	Success   bool        `json:"success"`
	Menu      domain.Menu `json:"menu"`
	Logo      string      `json:"logo"`
	ShopName  string      `json:"shopName"`
	OpenHours string      `json:"openHours"`
	Address   string      `json:"address"`
}

type orderPlacedResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type ordersResponse struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
}

type orderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

type statsResponse struct {
	Success bool               `json:"success"`
	Stats   *domain.OrderStats `json:"stats"`
}
