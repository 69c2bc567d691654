package domain

import "time"

// Client aggregates the order history of one shopper per store. The phone
// number doubles as the identifier, matching how merchants recognize repeat
// buyers on WhatsApp.
type Client struct {
	StoreID     string     `json:"-"`
	Phone       string     `json:"phone"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Notes       string     `json:"notes,omitempty"`
	TotalOrders int        `json:"totalOrders"`
	TotalSpent  int64      `json:"totalSpent"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
