// Package importer bulk-loads products from merchant spreadsheets. Rows
// are processed independently: one bad row is reported and skipped, the
// rest still land.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/juan-beltranos/catalogo-interactivo/internal/catalog/pricing"
	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/slug"
)

// ProductWriter is the slice of the product repository the importer needs.
type ProductWriter interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error)
}

// CategoryStore resolves and creates categories by name.
type CategoryStore interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// importedCategoryOrder pushes spreadsheet-created categories behind the
// ones the merchant ordered by hand.
const importedCategoryOrder = 9999

// Summary reports what happened to each row of an import.
type Summary struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Importer loads products into one store.
type Importer struct {
	products   ProductWriter
	categories CategoryStore
	storeID    string
	logger     *log.Logger
}

func New(products ProductWriter, categories CategoryStore, storeID string, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{
		products:   products,
		categories: categories,
		storeID:    storeID,
		logger:     logger,
	}
}

// ImportXLSX reads the first sheet of an Excel workbook.
func (i *Importer) ImportXLSX(ctx context.Context, r io.Reader) (*Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return i.Run(ctx, rows)
}

// ImportCSV reads a comma-separated export with the same columns.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may have trailing commas
	var rows [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, record)
	}
	return i.Run(ctx, rows)
}

type columns struct {
	sku      int
	name     int
	category int
	price    int
	desc     int
}

// Run imports pre-split rows, the first being the header. Column headers
// are matched accent- and case-insensitively against Spanish and English
// aliases.
func (i *Importer) Run(ctx context.Context, rows [][]string) (*Summary, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	byName, err := i.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	seen := make(map[string]bool)
	for n, row := range rows[1:] {
		line := n + 2 // 1-based, after the header

		sku := strings.TrimSpace(cell(row, cols.sku))
		name := strings.TrimSpace(cell(row, cols.name))
		if sku == "" && name == "" {
			continue
		}
		if sku == "" || name == "" {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: sku and name required", line))
			continue
		}
		if seen[sku] {
			sum.Skipped++
			continue
		}
		seen[sku] = true

		price := pricing.ParseMoney(cell(row, cols.price))
		if price <= 0 {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: invalid price %q", line, cell(row, cols.price)))
			continue
		}

		exists, err := i.products.ExistsBySKU(ctx, i.storeID, sku)
		if err != nil {
			return sum, err
		}
		if exists {
			sum.Skipped++
			continue
		}

		categoryID, err := i.resolveCategory(ctx, byName, cell(row, cols.category))
		if err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: category: %v", line, err))
			continue
		}

		p := domain.Product{
			StoreID:     i.storeID,
			Name:        name,
			SKU:         sku,
			CategoryID:  categoryID,
			Price:       price,
			Description: strings.TrimSpace(cell(row, cols.desc)),
		}
		if _, err := i.products.Create(ctx, p); err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		sum.Created++
	}

	i.logger.Printf("importer: store_id=%s created=%d skipped=%d failed=%d", i.storeID, sum.Created, sum.Skipped, sum.Failed)
	return sum, nil
}

func (i *Importer) categoryIndex(ctx context.Context) (map[string]string, error) {
	existing, err := i.categories.ListByStore(ctx, i.storeID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[slug.Norm(c.Name)] = c.ID
	}
	return byName, nil
}

func (i *Importer) resolveCategory(ctx context.Context, byName map[string]string, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", nil
	}
	if id, ok := byName[slug.Norm(name)]; ok {
		return id, nil
	}
	created, err := i.categories.Create(ctx, domain.Category{
		StoreID: i.storeID,
		Name:    name,
		Order:   importedCategoryOrder,
	})
	if err != nil {
		return "", err
	}
	byName[slug.Norm(name)] = created.ID
	return created.ID, nil
}

var headerAliases = map[string]string{
	"codigo":       "sku",
	"sku":          "sku",
	"nombre":       "name",
	"name":         "name",
	"producto":     "name",
	"categoria":    "category",
	"category":     "category",
	"precio":       "price",
	"price":        "price",
	"precio final": "price",
	"descripcion":  "desc",
	"description":  "desc",
}

func mapColumns(header []string) (columns, error) {
	cols := columns{sku: -1, name: -1, category: -1, price: -1, desc: -1}
	for idx, h := range header {
		switch headerAliases[slug.Norm(h)] {
		case "sku":
			cols.sku = idx
		case "name":
			cols.name = idx
		case "category":
			cols.category = idx
		case "price":
			cols.price = idx
		case "desc":
			cols.desc = idx
		}
	}
	if cols.sku < 0 || cols.name < 0 || cols.price < 0 {
		return cols, errors.New("missing required columns (codigo/sku, nombre/name, precio/price)")
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
