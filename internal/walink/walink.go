// Package walink builds WhatsApp deep links and the order message pushed to
// merchants. The wa.me link is the entire notification transport: there is
// no webhook and no delivery confirmation.
package walink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/catalog/pricing"
	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/slug"
)

// Build returns a https://wa.me/<digits>?text=<message> URL. Non-digit
// characters are stripped from the phone; an empty message omits the query.
func Build(phone, message string) string {
	link := "https://wa.me/" + slug.Digits(phone)
	if message == "" {
		return link
	}
	return link + "?text=" + encode(message)
}

// OrderMessage renders the WhatsApp text for a placed order.
func OrderMessage(storeName, orderID string, o domain.Order) string {
	var lines []string
	lines = append(lines,
		"🛒 *Nuevo pedido*",
		"Tienda: *"+storeName+"*",
		"Pedido ID: "+orderID,
		"",
		"👤 Cliente: *"+o.Customer.Name+"*",
		"📞 Tel: "+o.Customer.Phone,
		"📍 Dirección: "+o.Customer.Address,
	)
	if notes := strings.TrimSpace(o.Notes); notes != "" {
		lines = append(lines, "📝 Notas: "+notes)
	}
	lines = append(lines, "", "📦 *Productos*:")
	for _, it := range o.Items {
		variant := ""
		if it.VariantTitle != "" {
			variant = " (" + it.VariantTitle + ")"
		}
		lines = append(lines, "- "+strconv.Itoa(it.Qty)+" x "+it.ProductName+variant+" — "+pricing.FormatCOP(it.Subtotal))
	}
	lines = append(lines, "", "💰 *Total:* "+pricing.FormatCOP(o.Total))
	return strings.Join(lines, "\n")
}

// encode matches JS encodeURIComponent closely enough for wa.me: spaces as
// %20, not '+'.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
