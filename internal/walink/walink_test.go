package walink

import (
	"strings"
	"testing"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

func TestBuild(t *testing.T) {
	got := Build("+57 300 111-2233", "Hola, quiero pedir")
	want := "https://wa.me/573001112233?text=Hola%2C%20quiero%20pedir"
	if got != want {
		t.Fatalf("Build = %q, want %q", got, want)
	}
}

func TestBuildWithoutMessage(t *testing.T) {
	if got := Build("573001112233", ""); got != "https://wa.me/573001112233" {
		t.Fatalf("Build = %q", got)
	}
}

func TestOrderMessage(t *testing.T) {
	order := domain.Order{
		Customer: domain.OrderCustomer{Name: "Ana", Phone: "3001112233", Address: "Calle 1 # 2-3"},
		Notes:    "Entregar en la tarde",
		Items: []domain.OrderItem{
			{ProductName: "Camiseta", VariantTitle: "Rojo / M", UnitPrice: 25000, Qty: 2, Subtotal: 50000},
			{ProductName: "Gorra", UnitPrice: 15000, Qty: 1, Subtotal: 15000},
		},
		Total: 65000,
	}

	msg := OrderMessage("Mi Tienda", "abc123", order)

	for _, want := range []string{
		"🛒 *Nuevo pedido*",
		"Tienda: *Mi Tienda*",
		"Pedido ID: abc123",
		"👤 Cliente: *Ana*",
		"📝 Notas: Entregar en la tarde",
		"- 2 x Camiseta (Rojo / M) — $ 50.000",
		"- 1 x Gorra — $ 15.000",
		"💰 *Total:* $ 65.000",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestOrderMessageSkipsEmptyNotes(t *testing.T) {
	msg := OrderMessage("Tienda", "id", domain.Order{Notes: "   "})
	if strings.Contains(msg, "Notas") {
		t.Fatal("empty notes must not appear")
	}
}
