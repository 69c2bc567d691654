package domain

import "time"

type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderNew, OrderConfirmed, OrderPreparing, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItem struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	VariantID    string `json:"variantId,omitempty"`
	VariantTitle string `json:"variantTitle,omitempty"`
	UnitPrice    int64  `json:"unitPrice"`
	Qty          int    `json:"qty"`
	Subtotal     int64  `json:"subtotal"`
}

type Order struct {
	ID        string        `json:"id"`
	StoreID   string        `json:"-"`
	Status    OrderStatus   `json:"status"`
	Channel   string        `json:"channel,omitempty"`
	ClientID  string        `json:"clientId,omitempty"`
	Customer  OrderCustomer `json:"customer"`
	Notes     string        `json:"notes,omitempty"`
	Items     []OrderItem   `json:"items"`
	Total     int64         `json:"total"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
