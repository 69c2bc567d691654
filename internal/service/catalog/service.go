package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/catalog/variant"
	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/media"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	catrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/category"
	prodrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/product"
)

var (
	// ErrInvalidPrice is returned when a price is zero or negative.
	ErrInvalidPrice = fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	// ErrSKUTaken is returned when another product in the store already
	// carries the SKU.
	ErrSKUTaken = errors.New("sku already in use")
)

// Service manages a store's products. Variant generation and media
// cleanup happen here so repositories stay plain CRUD.
type Service struct {
	products   prodrepo.Repository
	categories catrepo.Repository
	assets     media.Deleter
	logger     *log.Logger
	pageSize   int
}

func New(products prodrepo.Repository, categories catrepo.Repository, assets media.Deleter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		products:   products,
		categories: categories,
		assets:     assets,
		logger:     logger,
		pageSize:   12,
	}
}

// ProductInput carries a full product payload. Variants, when present,
// hold the previous generation so edited prices and stock survive option
// changes.
type ProductInput struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	SKU         string                 `json:"sku"`
	CategoryID  string                 `json:"categoryId"`
	Price       int64                  `json:"price"`
	Discount    *domain.Discount       `json:"discount"`
	Images      []domain.ImageRef      `json:"images"`
	Videos      []domain.VideoRef      `json:"videos"`
	Options     []domain.ProductOption `json:"options"`
	Variants    []domain.Variant       `json:"variants"`
}

// Create adds a product to the store.
func (s *Service) Create(ctx context.Context, storeID string, in ProductInput) (*domain.Product, error) {
	p, err := s.build(ctx, storeID, in, in.Variants)
	if err != nil {
		return nil, err
	}
	if p.SKU != "" {
		taken, err := s.products.ExistsBySKU(ctx, storeID, p.SKU)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSKUTaken
		}
	}
	return s.products.Create(ctx, *p)
}

// Update replaces a product's contents. Variants are regenerated from the
// submitted options; combinations that survive keep their identity, price
// and stock. Images and videos removed by the edit have their Cloudinary
// assets deleted best-effort.
func (s *Service) Update(ctx context.Context, storeID, id string, in ProductInput) (*domain.Product, error) {
	current, err := s.products.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	prev := in.Variants
	if prev == nil {
		prev = current.Variants
	}
	p, err := s.build(ctx, storeID, in, prev)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if p.SKU != "" && p.SKU != current.SKU {
		taken, err := s.products.ExistsBySKU(ctx, storeID, p.SKU)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSKUTaken
		}
	}

	updated, err := s.products.Update(ctx, *p)
	if err != nil {
		return nil, err
	}

	s.cleanupRemoved(ctx, current, updated)
	return updated, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, storeID, id)
}

// Delete removes a product and then deletes its Cloudinary assets
// best-effort. Asset failures are logged, never returned: the record is
// already gone.
func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	p, err := s.products.GetByID(ctx, storeID, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, storeID, id); err != nil {
		return err
	}
	for _, img := range p.Images {
		s.deleteAsset(ctx, img.PublicID)
	}
	for _, v := range p.Videos {
		s.deleteAsset(ctx, v.PublicID)
	}
	return nil
}

// Pager returns a product pager for the store, optionally restored from a
// previously issued state token.
func (s *Service) Pager(storeID, state string) (*paging.Pager[domain.Product], error) {
	p := paging.New(s.products.Pages(storeID), s.pageSize)
	if state != "" {
		if err := p.Restore(state); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *Service) build(ctx context.Context, storeID string, in ProductInput, prev []domain.Variant) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name required", domain.ErrInvalidInput)
	}
	if in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if d := in.Discount; d != nil {
		if d.Type != domain.DiscountPercent && d.Type != domain.DiscountAmount {
			return nil, fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, d.Type)
		}
		if d.Value < 0 {
			return nil, fmt.Errorf("%w: discount value must not be negative", domain.ErrInvalidInput)
		}
	}
	if in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, storeID, in.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: category does not exist", domain.ErrInvalidInput)
			}
			return nil, err
		}
	}

	// Zero is a legal per-variant price (the catalog hides it from the
	// "Desde" minimum); only negatives are refused.
	gen := variant.Generate(in.Price, in.Options, prev)
	for _, v := range gen.Variants {
		if v.Price < 0 {
			return nil, ErrInvalidPrice
		}
	}

	return &domain.Product{
		StoreID:     storeID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		SKU:         strings.TrimSpace(in.SKU),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Discount:    in.Discount,
		Images:      in.Images,
		Videos:      in.Videos,
		Options:     gen.Options,
		Variants:    gen.Variants,
	}, nil
}

// cleanupRemoved deletes assets present on the old product but absent
// from the updated one.
func (s *Service) cleanupRemoved(ctx context.Context, old, updated *domain.Product) {
	keep := make(map[string]bool)
	for _, img := range updated.Images {
		keep[img.PublicID] = true
	}
	for _, v := range updated.Videos {
		keep[v.PublicID] = true
	}
	for _, img := range old.Images {
		if !keep[img.PublicID] {
			s.deleteAsset(ctx, img.PublicID)
		}
	}
	for _, v := range old.Videos {
		if !keep[v.PublicID] {
			s.deleteAsset(ctx, v.PublicID)
		}
	}
}

func (s *Service) deleteAsset(ctx context.Context, publicID string) {
	if publicID == "" || s.assets == nil {
		return
	}
	if err := s.assets.DeleteAsset(ctx, publicID); err != nil {
		s.logger.Printf("catalog: asset cleanup public_id=%s error=%v", publicID, err)
	}
}
