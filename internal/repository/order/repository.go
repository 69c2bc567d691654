package order

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
)

type Repository interface {
	// Place inserts the order and upserts the per-store client record in
	// one transaction. The client's counters are incremented atomically in
	// SQL so concurrent orders from the same phone never lose updates.
	Place(ctx context.Context, o domain.Order) (*domain.Order, error)

	GetByID(ctx context.Context, storeID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, storeID, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, storeID, id string) error
	CountByStatus(ctx context.Context, storeID string) (map[domain.OrderStatus]int, error)

	// Pages returns a store-scoped paging source ordered by creation time
	// descending. The fetch filter, when set, restricts to one status.
	Pages(storeID string) paging.Source[domain.Order]
}
