package cart

import (
	"testing"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

func item(productID, variantID string, price int64, qty int) domain.CartItem {
	return domain.CartItem{
		ProductID:   productID,
		ProductName: "Producto " + productID,
		VariantID:   variantID,
		UnitPrice:   price,
		Qty:         qty,
	}
}

func TestAddMergesSameLine(t *testing.T) {
	items := Add(nil, item("p1", "v1", 1000, 1))
	items = Add(items, item("p1", "v1", 1000, 1))

	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", items[0].Qty)
	}
}

func TestAddDifferentVariantCreatesNewLine(t *testing.T) {
	items := Add(nil, item("p1", "v1", 1000, 1))
	items = Add(items, item("p1", "v2", 1200, 1))
	items = Add(items, item("p1", "", 900, 1))

	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
}

func TestAddRejectsZeroPrice(t *testing.T) {
	items := Add(nil, item("p1", "", 0, 1))
	if len(items) != 0 {
		t.Fatalf("expected zero-price item to be ignored")
	}
}

func TestChangeQty(t *testing.T) {
	items := []domain.CartItem{item("p1", "v1", 1000, 2)}

	items = ChangeQty(items, 0, 1, nil)
	if items[0].Qty != 3 {
		t.Fatalf("expected qty 3, got %d", items[0].Qty)
	}

	// Stock cap rejects the increment.
	stock := 3
	capped := ChangeQty(items, 0, 1, &stock)
	if capped[0].Qty != 3 {
		t.Fatalf("expected stock cap to hold qty at 3, got %d", capped[0].Qty)
	}

	// Dropping to zero removes the line.
	removed := ChangeQty(items, 0, -3, nil)
	if len(removed) != 0 {
		t.Fatalf("expected line removal, got %d lines", len(removed))
	}

	// Out-of-range index is a no-op.
	same := ChangeQty(items, 5, 1, nil)
	if len(same) != 1 || same[0].Qty != 3 {
		t.Fatalf("expected no-op for bad index")
	}
}

func TestTotal(t *testing.T) {
	items := []domain.CartItem{
		item("p1", "v1", 1000, 2),
		item("p2", "", 5000, 3),
	}
	if got := Total(items); got != 17000 {
		t.Fatalf("Total = %d, want 17000", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %d, want 0", got)
	}
}

func TestOrderItemsSubtotals(t *testing.T) {
	out := OrderItems([]domain.CartItem{item("p1", "v1", 1500, 4)})
	if len(out) != 1 {
		t.Fatalf("expected 1 order item")
	}
	if out[0].Subtotal != 6000 {
		t.Fatalf("Subtotal = %d, want 6000", out[0].Subtotal)
	}
}
