package product

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
)

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
	Delete(ctx context.Context, storeID, id string) error
	ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error)
	CountByCategory(ctx context.Context, storeID, categoryID string) (int, error)

	// Pages returns a store-scoped paging source ordered by creation time
	// descending. The fetch filter, when set, restricts to one category.
	Pages(storeID string) paging.Source[domain.Product]
}
