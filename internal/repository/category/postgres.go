package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Category, error) {
	const q = `
SELECT id::text, store_id::text, name, ord, created_at
FROM categories
WHERE store_id = $1
ORDER BY ord ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Order, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Category, error) {
	const q = `
SELECT id::text, store_id::text, name, ord, created_at
FROM categories
WHERE store_id = $1 AND id = $2
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, storeID, id).Scan(&c.ID, &c.StoreID, &c.Name, &c.Order, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (store_id, name, ord)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.StoreID, c.Name, c.Order).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $3, ord = $4
WHERE store_id = $1 AND id = $2
RETURNING created_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.StoreID, c.ID, c.Name, c.Order).Scan(&out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
