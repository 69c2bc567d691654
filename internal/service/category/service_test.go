package category

import (
	"context"
	"errors"
	"testing"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
)

type stubCategoryRepo struct {
	categories []domain.Category
	deleted    []string
}

func (s *stubCategoryRepo) ListByStore(context.Context, string) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryRepo) GetByID(_ context.Context, _, id string) (*domain.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	c.ID = "c-created"
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s *stubCategoryRepo) Update(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, _, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubProductCounter struct {
	count int
}

func (s *stubProductCounter) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductCounter) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductCounter) GetByID(context.Context, string, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProductCounter) Delete(context.Context, string, string) error {
	return nil
}

func (s *stubProductCounter) ExistsBySKU(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s *stubProductCounter) CountByCategory(context.Context, string, string) (int, error) {
	return s.count, nil
}

func (s *stubProductCounter) Pages(string) paging.Source[domain.Product] {
	return nil
}

func TestCreate_NegativeOrderAppends(t *testing.T) {
	repo := &stubCategoryRepo{categories: []domain.Category{
		{ID: "c-1", Name: "Ropa", Order: 0},
		{ID: "c-2", Name: "Accesorios", Order: 3},
	}}
	svc := New(repo, &stubProductCounter{})

	c, err := svc.Create(context.Background(), "s-1", "Calzado", -1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Order != 4 {
		t.Fatalf("expected order 4 after the highest, got %d", c.Order)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := New(&stubCategoryRepo{}, &stubProductCounter{})

	if _, err := svc.Create(context.Background(), "s-1", "   ", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdate_NegativeOrderKeepsPosition(t *testing.T) {
	repo := &stubCategoryRepo{categories: []domain.Category{{ID: "c-1", Name: "Ropa", Order: 7}}}
	svc := New(repo, &stubProductCounter{})

	c, err := svc.Update(context.Background(), "s-1", "c-1", "Ropa y Más", -1)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Order != 7 {
		t.Fatalf("expected order preserved at 7, got %d", c.Order)
	}
	if c.Name != "Ropa y Más" {
		t.Fatalf("unexpected name %q", c.Name)
	}
}

func TestDelete_RefusedWhileInUse(t *testing.T) {
	repo := &stubCategoryRepo{}
	svc := New(repo, &stubProductCounter{count: 2})

	if err := svc.Delete(context.Background(), "s-1", "c-1"); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("category must not be deleted while in use")
	}
}

func TestDelete_EmptyCategory(t *testing.T) {
	repo := &stubCategoryRepo{}
	svc := New(repo, &stubProductCounter{})

	if err := svc.Delete(context.Background(), "s-1", "c-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "c-1" {
		t.Fatalf("expected c-1 deleted, got %v", repo.deleted)
	}
}
