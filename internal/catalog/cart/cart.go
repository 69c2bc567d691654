// Package cart implements the client-side shopping cart reducer: line
// merging, quantity changes bounded by stock, and totals.
package cart

import "github.com/juan-beltranos/catalogo-interactivo/internal/domain"

// Add merges item into items. A line with the same product and variant gets
// its quantity incremented; otherwise the item is appended. Items without a
// positive unit price or quantity are ignored.
func Add(items []domain.CartItem, item domain.CartItem) []domain.CartItem {
	if item.UnitPrice <= 0 || item.Qty <= 0 {
		return items
	}
	for i, it := range items {
		if it.ProductID == item.ProductID && it.VariantID == item.VariantID {
			next := make([]domain.CartItem, len(items))
			copy(next, items)
			next[i].Qty += item.Qty
			return next
		}
	}
	next := make([]domain.CartItem, len(items)+1)
	copy(next, items)
	next[len(items)] = item
	return next
}

// ChangeQty adjusts the quantity of the line at index by delta. The line is
// removed when the quantity drops to zero or below. When maxStock is set, a
// change that would exceed it is rejected and the cart is returned unchanged.
func ChangeQty(items []domain.CartItem, index, delta int, maxStock *int) []domain.CartItem {
	if index < 0 || index >= len(items) {
		return items
	}
	q := items[index].Qty + delta
	if maxStock != nil && q > *maxStock {
		return items
	}

	next := make([]domain.CartItem, len(items))
	copy(next, items)
	if q <= 0 {
		return append(next[:index], next[index+1:]...)
	}
	next[index].Qty = q
	return next
}

// Total sums unitPrice x qty over all lines.
func Total(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Qty)
	}
	return total
}

// OrderItems converts cart lines into order items with computed subtotals.
func OrderItems(items []domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			VariantID:    it.VariantID,
			VariantTitle: it.VariantTitle,
			UnitPrice:    it.UnitPrice,
			Qty:          it.Qty,
			Subtotal:     it.UnitPrice * int64(it.Qty),
		})
	}
	return out
}
