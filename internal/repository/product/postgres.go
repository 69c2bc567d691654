package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	"github.com/juan-beltranos/catalogo-interactivo/internal/repository/keyset"
)

const productColumns = `id::text, store_id::text, COALESCE(category_id::text, ''), name, COALESCE(description, ''), COALESCE(sku, ''), price, discount, images, videos, options, variants, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (store_id, category_id, name, description, sku, price, discount, images, videos, options, variants)
VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11)
RETURNING id::text, created_at, updated_at
`
	out := p
	err := r.pool.QueryRow(ctx, q,
		p.StoreID, p.CategoryID, p.Name, p.Description, p.SKU, p.Price,
		p.Discount, jsonOrEmpty(p.Images), jsonOrEmpty(p.Videos), jsonOrEmpty(p.Options), jsonOrEmpty(p.Variants),
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create store_id=%s name=%s error=%v", p.StoreID, p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created store_id=%s id=%s", p.StoreID, out.ID)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET category_id = NULLIF($3, '')::uuid,
    name = $4,
    description = NULLIF($5, ''),
    sku = NULLIF($6, ''),
    price = $7,
    discount = $8,
    images = $9,
    videos = $10,
    options = $11,
    variants = $12,
    updated_at = now()
WHERE store_id = $1 AND id = $2
RETURNING created_at, updated_at
`
	out := p
	err := r.pool.QueryRow(ctx, q,
		p.StoreID, p.ID, p.CategoryID, p.Name, p.Description, p.SKU, p.Price,
		p.Discount, jsonOrEmpty(p.Images), jsonOrEmpty(p.Videos), jsonOrEmpty(p.Options), jsonOrEmpty(p.Variants),
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update store_id=%s id=%s error=%v", p.StoreID, p.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, q, storeID, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		r.logger.Printf("product repo: delete store_id=%s id=%s error=%v", storeID, id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE store_id = $1 AND sku = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, storeID, sku).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) CountByCategory(ctx context.Context, storeID, categoryID string) (int, error) {
	const q = `SELECT count(*) FROM products WHERE store_id = $1 AND category_id = $2`
	var n int
	if err := r.pool.QueryRow(ctx, q, storeID, categoryID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) Pages(storeID string) paging.Source[domain.Product] {
	return &pageSource{repo: r, storeID: storeID}
}

type pageSource struct {
	repo    *postgresRepo
	storeID string
}

func (s *pageSource) FetchPage(ctx context.Context, req paging.FetchRequest) ([]paging.Item[domain.Product], error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}

	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case req.Before != nil:
		at, id, derr := keyset.Decode(req.Before)
		if derr != nil {
			return nil, derr
		}
		// Read the window just before the boundary in reverse, then flip it
		// back to forward order (newest first).
		q := `SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND ($2 = '' OR category_id::text = $2) AND (created_at, id) > ($3, $4::uuid)
ORDER BY created_at ASC, id ASC
LIMIT $5`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, at, id, limit)
	case req.After != nil:
		at, id, derr := keyset.Decode(req.After)
		if derr != nil {
			return nil, derr
		}
		q := `SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND ($2 = '' OR category_id::text = $2) AND (created_at, id) < ($3, $4::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $5`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, at, id, limit)
	default:
		q := `SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND ($2 = '' OR category_id::text = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, limit)
	}
	if err != nil {
		s.repo.logger.Printf("product repo: page store_id=%s filter=%q error=%v", s.storeID, req.Filter, err)
		return nil, err
	}
	defer rows.Close()

	var items []paging.Item[domain.Product]
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, paging.Item[domain.Product]{
			Value:  *p,
			Cursor: keyset.Encode(p.CreatedAt, p.ID),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if req.Before != nil {
		reverse(items)
	}
	return items, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description, &p.SKU, &p.Price,
		&p.Discount, &p.Images, &p.Videos, &p.Options, &p.Variants,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// jsonOrEmpty keeps jsonb columns as [] instead of null for nil slices.
func jsonOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
