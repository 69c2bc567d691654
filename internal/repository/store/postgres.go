package store

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

const storeColumns = `id::text, owner_id::text, name, slug, whatsapp, COALESCE(description, ''), COALESCE(logo_url, ''), COALESCE(logo_public_id, ''), created_at`

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

func (r *postgresRepo) Create(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
INSERT INTO stores (owner_id, name, slug, whatsapp, description, logo_url, logo_public_id)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
RETURNING id::text, created_at
`
	out := s
	err := r.pool.QueryRow(ctx, q, s.OwnerID, s.Name, s.Slug, s.WhatsApp, s.Description, s.LogoURL, s.LogoPublicID).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("store repo: create slug=%s error=%v", s.Slug, err)
		return nil, err
	}
	r.logger.Printf("store repo: created id=%s slug=%s", out.ID, out.Slug)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

func (r *postgresRepo) GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id = $1 LIMIT 1`, ownerID)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE slug = $1`, slug)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Store, error) {
	const q = `
UPDATE stores
SET name = $2,
    slug = $3,
    whatsapp = $4,
    description = NULLIF($5, ''),
    logo_url = NULLIF($6, ''),
    logo_public_id = NULLIF($7, '')
WHERE id = $1
RETURNING ` + storeColumns
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, id, in.Name, in.Slug, in.WhatsApp, in.Description, in.LogoURL, in.LogoPublicID).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.WhatsApp, &s.Description, &s.LogoURL, &s.LogoPublicID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("store repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) SlugTaken(ctx context.Context, slug, excludeStoreID string) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM stores WHERE slug = $1 AND ($2 = '' OR id::text <> $2)
)
`
	var taken bool
	if err := r.pool.QueryRow(ctx, q, slug, excludeStoreID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *postgresRepo) scanOne(ctx context.Context, q string, arg any) (*domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, arg).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.WhatsApp, &s.Description, &s.LogoURL, &s.LogoPublicID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
