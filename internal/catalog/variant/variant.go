// Package variant derives the purchasable combinations of a product's
// options and keeps previously saved variants stable across regenerations.
package variant

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

// keySep cannot appear in normal option values, so joined keys stay unambiguous.
const keySep = "||"

// Cartesian returns every ordered combination of the given value lists, the
// first list varying slowest. An empty input produces no combinations, and a
// list with zero values eliminates all combinations.
func Cartesian(lists [][]string) [][]string {
	if len(lists) == 0 {
		return nil
	}
	combos := [][]string{{}}
	for _, values := range lists {
		if len(values) == 0 {
			return nil
		}
		next := make([][]string, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				row := make([]string, len(combo)+1)
				copy(row, combo)
				row[len(combo)] = v
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}

// Key builds the case-insensitive identity key for a combination. It is used
// to match previous variants to regenerated ones and is never shown to users.
func Key(optionValues []string) string {
	trimmed := make([]string, len(optionValues))
	for i, v := range optionValues {
		trimmed[i] = strings.TrimSpace(v)
	}
	return strings.ToLower(strings.Join(trimmed, keySep))
}

// Result carries the cleaned option list and the regenerated variants.
type Result struct {
	Options  []domain.ProductOption
	Variants []domain.Variant
}

// Generate normalizes options, crosses their values, and merges the result
// against previously saved variants: a combination that already existed keeps
// its id, price, and stock; a new combination gets a fresh id, the base
// price, and zero stock. Titles are always rebuilt from the current values.
// The function is pure and total; invalid option entries are dropped, never
// reported.
func Generate(basePrice int64, options []domain.ProductOption, prev []domain.Variant) Result {
	clean := normalizeOptions(options)
	if len(clean) == 0 {
		return Result{}
	}

	lists := make([][]string, len(clean))
	for i, o := range clean {
		lists[i] = o.Values
	}
	combos := Cartesian(lists)

	prevByKey := make(map[string]domain.Variant, len(prev))
	for _, v := range prev {
		prevByKey[Key(v.OptionValues)] = v
	}

	variants := make([]domain.Variant, 0, len(combos))
	for _, values := range combos {
		v := domain.Variant{
			OptionValues: values,
			Title:        strings.Join(values, " / "),
		}
		if existing, ok := prevByKey[Key(values)]; ok {
			v.ID = existing.ID
			v.Price = existing.Price
			v.SKU = existing.SKU
			if existing.Stock != nil {
				v.Stock = existing.Stock
			} else {
				v.Stock = intPtr(0)
			}
		} else {
			v.ID = NewID()
			v.Price = basePrice
			v.Stock = intPtr(0)
		}
		variants = append(variants, v)
	}

	return Result{Options: clean, Variants: variants}
}

func normalizeOptions(options []domain.ProductOption) []domain.ProductOption {
	var clean []domain.ProductOption
	for _, o := range options {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			continue
		}
		var values []string
		for _, v := range o.Values {
			if t := strings.TrimSpace(v); t != "" {
				values = append(values, t)
			}
		}
		if len(values) == 0 {
			continue
		}
		clean = append(clean, domain.ProductOption{Name: name, Values: values})
	}
	return clean
}

// NewID returns a short opaque variant identifier.
func NewID() string {
	var buf [6]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	}
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

func intPtr(v int) *int {
	return &v
}
