package client

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Client, error)
	GetByPhone(ctx context.Context, storeID, phone string) (*domain.Client, error)
}
