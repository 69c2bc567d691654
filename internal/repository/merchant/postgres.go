package merchant

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

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

func (r *postgresRepo) Create(ctx context.Context, m domain.Merchant) (*domain.Merchant, error) {
	const q = `
INSERT INTO merchants (email, password_hash)
VALUES ($1, $2)
RETURNING id::text, created_at
`
	out := m
	err := r.pool.QueryRow(ctx, q, m.Email, m.PasswordHash).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("merchant repo: create email=%s error=%v", m.Email, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	const q = `
SELECT id::text, email, password_hash, created_at
FROM merchants
WHERE id = $1
`
	return r.scanOne(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	const q = `
SELECT id::text, email, password_hash, created_at
FROM merchants
WHERE email = $1
`
	return r.scanOne(ctx, q, email)
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE merchants SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Printf("merchant repo: update password id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOne(ctx context.Context, q string, arg any) (*domain.Merchant, error) {
	var m domain.Merchant
	err := r.pool.QueryRow(ctx, q, arg).Scan(&m.ID, &m.Email, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
