package domain

// CartItem is one line of an anonymous shopper's cart. Two items are the
// same line iff ProductID and VariantID (possibly empty) both match.
type CartItem struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	VariantID    string `json:"variantId,omitempty"`
	VariantTitle string `json:"variantTitle,omitempty"`
	UnitPrice    int64  `json:"unitPrice"`
	Qty          int    `json:"qty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}
