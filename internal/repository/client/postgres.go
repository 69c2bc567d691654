package client

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

const clientColumns = `store_id::text, phone, name, address, notes, total_orders, total_spent, last_order_at, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE store_id = $1 ORDER BY last_order_at DESC NULLS LAST, phone ASC`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.StoreID, &c.Phone, &c.Name, &c.Address, &c.Notes, &c.TotalOrders, &c.TotalSpent, &c.LastOrderAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByPhone(ctx context.Context, storeID, phone string) (*domain.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE store_id = $1 AND phone = $2`
	var c domain.Client
	err := r.pool.QueryRow(ctx, q, storeID, phone).
		Scan(&c.StoreID, &c.Phone, &c.Name, &c.Address, &c.Notes, &c.TotalOrders, &c.TotalSpent, &c.LastOrderAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
