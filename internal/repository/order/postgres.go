package order

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

const orderColumns = `id::text, store_id::text, COALESCE(client_phone, ''), status, channel, customer, notes, items, total, created_at, updated_at`

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

func (r *postgresRepo) Place(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := o
	if out.Status == "" {
		out.Status = domain.OrderNew
	}
	if out.Channel == "" {
		out.Channel = "whatsapp"
	}
	out.ClientID = o.Customer.Phone
	items := out.Items
	if items == nil {
		items = []domain.OrderItem{}
	}

	const insertOrder = `
INSERT INTO orders (store_id, client_phone, status, channel, customer, notes, items, total)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
RETURNING id::text, created_at, updated_at
`
	err = tx.QueryRow(ctx, insertOrder,
		o.StoreID, o.Customer.Phone, out.Status, out.Channel, o.Customer, o.Notes, items, o.Total,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("order repo: place store_id=%s error=%v", o.StoreID, err)
		return nil, err
	}

	const upsertClient = `
INSERT INTO clients (store_id, phone, name, address, total_orders, total_spent, last_order_at)
VALUES ($1, $2, $3, $4, 1, $5, now())
ON CONFLICT (store_id, phone) DO UPDATE
SET name = EXCLUDED.name,
    address = CASE WHEN EXCLUDED.address <> '' THEN EXCLUDED.address ELSE clients.address END,
    total_orders = clients.total_orders + 1,
    total_spent = clients.total_spent + EXCLUDED.total_spent,
    last_order_at = now(),
    updated_at = now()
`
	_, err = tx.Exec(ctx, upsertClient, o.StoreID, o.Customer.Phone, o.Customer.Name, o.Customer.Address, o.Total)
	if err != nil {
		r.logger.Printf("order repo: client upsert store_id=%s phone=%s error=%v", o.StoreID, o.Customer.Phone, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed store_id=%s id=%s total=%d", out.StoreID, out.ID, out.Total)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1 AND id = $2`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, storeID, id string, status domain.OrderStatus) (*domain.Order, error) {
	q := `UPDATE orders SET status = $3, updated_at = now() WHERE store_id = $1 AND id = $2 RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CountByStatus(ctx context.Context, storeID string) (map[domain.OrderStatus]int, error) {
	const q = `SELECT status, count(*) FROM orders WHERE store_id = $1 GROUP BY status`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var (
			status domain.OrderStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *postgresRepo) Pages(storeID string) paging.Source[domain.Order] {
	return &pageSource{repo: r, storeID: storeID}
}

type pageSource struct {
	repo    *postgresRepo
	storeID string
}

func (s *pageSource) FetchPage(ctx context.Context, req paging.FetchRequest) ([]paging.Item[domain.Order], error) {
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
		q := `SELECT ` + orderColumns + `
FROM orders
WHERE store_id = $1 AND ($2 = '' OR status = $2) AND (created_at, id) > ($3, $4::uuid)
ORDER BY created_at ASC, id ASC
LIMIT $5`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, at, id, limit)
	case req.After != nil:
		at, id, derr := keyset.Decode(req.After)
		if derr != nil {
			return nil, derr
		}
		q := `SELECT ` + orderColumns + `
FROM orders
WHERE store_id = $1 AND ($2 = '' OR status = $2) AND (created_at, id) < ($3, $4::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $5`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, at, id, limit)
	default:
		q := `SELECT ` + orderColumns + `
FROM orders
WHERE store_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3`
		rows, err = s.repo.pool.Query(ctx, q, s.storeID, req.Filter, limit)
	}
	if err != nil {
		s.repo.logger.Printf("order repo: page store_id=%s filter=%q error=%v", s.storeID, req.Filter, err)
		return nil, err
	}
	defer rows.Close()

	var items []paging.Item[domain.Order]
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, paging.Item[domain.Order]{
			Value:  *o,
			Cursor: keyset.Encode(o.CreatedAt, o.ID),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if req.Before != nil {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.StoreID, &o.ClientID, &o.Status, &o.Channel,
		&o.Customer, &o.Notes, &o.Items, &o.Total,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
