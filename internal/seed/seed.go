// Package seed loads a demo store for manual testing. It is idempotent:
// rerunning updates the demo rows instead of duplicating them.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/juan-beltranos/catalogo-interactivo/internal/catalog/variant"
	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

const (
	demoEmail    = "demo@catalogo.local"
	demoPassword = "Demo1234"
)

type productSeed struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Price       int64
	Discount    *domain.Discount
	Options     []domain.ProductOption
}

// Apply inserts the demo merchant, store, categories, and products.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	merchantID, err := ensureMerchant(ctx, pool)
	if err != nil {
		return fmt.Errorf("ensure merchant: %w", err)
	}
	storeID, err := ensureStore(ctx, pool, merchantID)
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	categoryIDs := map[string]string{}
	for i, name := range []string{"Ropa", "Accesorios"} {
		id, err := ensureCategory(ctx, pool, storeID, name, i)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			SKU:         "DEMO-TSHIRT",
			Name:        "Camiseta Clásica",
			Description: "Camiseta de algodón, varias tallas y colores",
			Category:    "Ropa",
			Price:       45000,
			Discount:    &domain.Discount{Type: domain.DiscountPercent, Value: 10},
			Options: []domain.ProductOption{
				{Name: "Talla", Values: []string{"S", "M", "L"}},
				{Name: "Color", Values: []string{"Negro", "Blanco"}},
			},
		},
		{
			SKU:         "DEMO-GORRA",
			Name:        "Gorra Demo",
			Description: "Gorra ajustable con logo bordado",
			Category:    "Accesorios",
			Price:       25000,
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, storeID, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func ensureMerchant(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO merchants (email, password_hash)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, demoEmail, string(hash)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, ownerID string) (string, error) {
	const q = `
INSERT INTO stores (owner_id, name, slug, whatsapp, description)
VALUES ($1, 'Tienda Demo', 'tienda-demo', '573001112233', 'Catálogo de demostración')
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, ownerID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, storeID, name string, ord int) (string, error) {
	const q = `
INSERT INTO categories (store_id, name, ord)
VALUES ($1, $2, $3)
ON CONFLICT (store_id, lower(name)) DO UPDATE SET ord = EXCLUDED.ord
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, storeID, name, ord).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, storeID, categoryID string, p productSeed) error {
	gen := variant.Generate(p.Price, p.Options, nil)
	const q = `
INSERT INTO products (store_id, category_id, name, description, sku, price, discount, options, variants)
SELECT $1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9
WHERE NOT EXISTS (SELECT 1 FROM products WHERE store_id = $1 AND sku = $5)
`
	_, err := pool.Exec(ctx, q,
		storeID, categoryID, p.Name, p.Description, p.SKU, p.Price,
		p.Discount, orEmpty(gen.Options), orEmpty(gen.Variants),
	)
	return err
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
