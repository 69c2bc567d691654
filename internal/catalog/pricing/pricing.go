// Package pricing computes effective and display prices for catalog
// products. Amounts are whole Colombian pesos.
package pricing

import (
	"math"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

// Effective applies a discount to a base price. Percent discounts are clamped
// to [0,100], amount discounts to >= 0, and the result never goes below zero.
// A nil or non-positive discount leaves the base price unchanged.
func Effective(basePrice int64, d *domain.Discount) int64 {
	if d == nil || d.Value <= 0 {
		return basePrice
	}
	switch d.Type {
	case domain.DiscountPercent:
		pct := d.Value
		if pct > 100 {
			pct = 100
		}
		v := int64(math.Round(float64(basePrice) * (1 - float64(pct)/100)))
		if v < 0 {
			v = 0
		}
		return v
	case domain.DiscountAmount:
		v := basePrice - d.Value
		if v < 0 {
			v = 0
		}
		return v
	}
	return basePrice
}

// Savings is the difference between the base and effective price, never
// negative.
func Savings(basePrice int64, d *domain.Discount) int64 {
	s := basePrice - Effective(basePrice, d)
	if s < 0 {
		return 0
	}
	return s
}

// Display returns the catalog price tag for a product. Products with
// variants show "Desde <min>" using the lowest positive variant price;
// variants priced at zero are excluded from the minimum unless every variant
// is zero.
func Display(p domain.Product) (label string, value int64) {
	if len(p.Variants) > 0 {
		var min int64
		for _, v := range p.Variants {
			if v.Price <= 0 {
				continue
			}
			if min == 0 || v.Price < min {
				min = v.Price
			}
		}
		return "Desde " + FormatCOP(min), min
	}
	return FormatCOP(p.Price), p.Price
}

// FormatCOP renders pesos the way es-CO shows them: "$ 1.234.567", no
// decimals.
func FormatCOP(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits := []byte{}
	if v == 0 {
		digits = []byte{'0'}
	}
	for v > 0 {
		digits = append(digits, byte('0'+v%10))
		v /= 10
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("$ ")
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// ParseMoney turns "25.000", "$ 25.000", or "25,000" into 25000 by keeping
// only the digits.
func ParseMoney(s string) int64 {
	var v int64
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		v = v*10 + int64(r-'0')
	}
	if !seen {
		return 0
	}
	return v
}
