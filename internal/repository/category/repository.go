package category

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Category, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, storeID, id string) error
}
