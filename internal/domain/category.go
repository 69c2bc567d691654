package domain

import "time"

type Category struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"-"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
