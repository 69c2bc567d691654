package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	catrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/category"
	prodrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/product"
)

// ErrCategoryInUse is returned when deleting a category that products
// still reference.
var ErrCategoryInUse = errors.New("category has products assigned")

// Service manages a store's categories.
type Service struct {
	repo     catrepo.Repository
	products prodrepo.Repository
}

func New(repo catrepo.Repository, products prodrepo.Repository) *Service {
	return &Service{repo: repo, products: products}
}

// List returns the store's categories in display order.
func (s *Service) List(ctx context.Context, storeID string) ([]domain.Category, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// Create adds a category. When order is negative the category goes last.
func (s *Service) Create(ctx context.Context, storeID, name string, order int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrInvalidInput)
	}
	if order < 0 {
		existing, err := s.repo.ListByStore(ctx, storeID)
		if err != nil {
			return nil, err
		}
		order = 0
		for _, c := range existing {
			if c.Order >= order {
				order = c.Order + 1
			}
		}
	}
	return s.repo.Create(ctx, domain.Category{
		StoreID: storeID,
		Name:    name,
		Order:   order,
	})
}

// Update renames or reorders a category. A negative order keeps the
// current position.
func (s *Service) Update(ctx context.Context, storeID, id, name string, order int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrInvalidInput)
	}
	if order < 0 {
		current, err := s.repo.GetByID(ctx, storeID, id)
		if err != nil {
			return nil, err
		}
		order = current.Order
	}
	return s.repo.Update(ctx, domain.Category{
		ID:      id,
		StoreID: storeID,
		Name:    name,
		Order:   order,
	})
}

// Delete removes a category. Deletion is refused while products still
// reference it so storefront filters never point at a hole.
func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	n, err := s.products.CountByCategory(ctx, storeID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(ctx, storeID, id)
}
