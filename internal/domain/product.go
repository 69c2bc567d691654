package domain

import "time"

// ProductOption is a named axis of variation, e.g. Color with values
// ["Rojo", "Azul"]. Value order is meaningful: it drives variant order.
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variant is one purchasable combination of option values. ID is opaque and
// stable across regenerations as long as the combination survives.
type Variant struct {
	ID           string   `json:"id"`
	OptionValues []string `json:"optionValues"`
	Title        string   `json:"title"`
	Price        int64    `json:"price"`
	Stock        *int     `json:"stock,omitempty"`
	SKU          string   `json:"sku,omitempty"`
}

// DiscountPercent and DiscountAmount are the two supported discount types.
const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

type Discount struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
}

type VideoRef struct {
	URL         string  `json:"url"`
	PublicID    string  `json:"publicId,omitempty"`
	ThumbURL    string  `json:"thumbUrl,omitempty"`
	DurationSec float64 `json:"durationSec,omitempty"`
}

// Product prices are whole Colombian pesos, no minor units.
type Product struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"-"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	CategoryID  string          `json:"categoryId"`
	Price       int64           `json:"price"`
	Discount    *Discount       `json:"discount,omitempty"`
	Images      []ImageRef      `json:"images"`
	Videos      []VideoRef      `json:"videos"`
	Options     []ProductOption `json:"options"`
	Variants    []Variant       `json:"variants"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MainImage returns the cover image URL, empty when the product has none.
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
