package store

import (
	"context"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

// UpdateInput carries the editable settings of a store.
type UpdateInput struct {
	Name         string
	Slug         string
	WhatsApp     string
	Description  string
	LogoURL      string
	LogoPublicID string
}

type Repository interface {
	Create(ctx context.Context, s domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Store, error)
	SlugTaken(ctx context.Context, slug, excludeStoreID string) (bool, error)
}
