package merchant

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, m domain.Merchant) (*domain.Merchant, error)
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
