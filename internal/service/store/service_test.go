package store

import (
	"context"
	"errors"
	"testing"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	storerepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/store"
)

type stubStoreRepo struct {
	bySlug map[string]*domain.Store
	owner  *domain.Store
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{bySlug: map[string]*domain.Store{}}
}

func (s *stubStoreRepo) Create(_ context.Context, st domain.Store) (*domain.Store, error) {
	st.ID = "s-created"
	s.bySlug[st.Slug] = &st
	return &st, nil
}

func (s *stubStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	for _, st := range s.bySlug {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubStoreRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	if s.owner == nil || s.owner.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return s.owner, nil
}

func (s *stubStoreRepo) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	st, ok := s.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (s *stubStoreRepo) Update(_ context.Context, id string, in storerepo.UpdateInput) (*domain.Store, error) {
	updated := &domain.Store{
		ID:           id,
		OwnerID:      s.owner.OwnerID,
		Name:         in.Name,
		Slug:         in.Slug,
		WhatsApp:     in.WhatsApp,
		Description:  in.Description,
		LogoURL:      in.LogoURL,
		LogoPublicID: in.LogoPublicID,
	}
	s.owner = updated
	return updated, nil
}

func (s *stubStoreRepo) SlugTaken(_ context.Context, slug, excludeStoreID string) (bool, error) {
	st, ok := s.bySlug[slug]
	if !ok {
		return false, nil
	}
	return st.ID != excludeStoreID, nil
}

type stubDeleter struct {
	deleted []string
	err     error
}

func (s *stubDeleter) DeleteAsset(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return s.err
}

func TestRegister_SlugFromName(t *testing.T) {
	repo := newStubStoreRepo()
	svc := New(repo, nil, nil)

	st, err := svc.Register(context.Background(), "m-1", RegisterInput{
		Name:     "  Tienda de Ropa Ñoña  ",
		WhatsApp: "+57 (300) 111-2233",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if st.Slug != "tienda-de-ropa-nona" {
		t.Fatalf("unexpected slug %q", st.Slug)
	}
	if st.WhatsApp != "573001112233" {
		t.Fatalf("expected digits-only whatsapp, got %q", st.WhatsApp)
	}
	if st.Name != "Tienda de Ropa Ñoña" {
		t.Fatalf("expected trimmed name, got %q", st.Name)
	}
}

func TestRegister_SuffixesTakenSlug(t *testing.T) {
	repo := newStubStoreRepo()
	repo.bySlug["mi-tienda"] = &domain.Store{ID: "s-other", Slug: "mi-tienda"}
	repo.bySlug["mi-tienda-2"] = &domain.Store{ID: "s-other2", Slug: "mi-tienda-2"}
	svc := New(repo, nil, nil)

	st, err := svc.Register(context.Background(), "m-1", RegisterInput{Name: "Mi Tienda", WhatsApp: "3001112233"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if st.Slug != "mi-tienda-3" {
		t.Fatalf("expected mi-tienda-3, got %q", st.Slug)
	}
}

func TestRegister_RequiresNameAndPhone(t *testing.T) {
	svc := New(newStubStoreRepo(), nil, nil)

	if _, err := svc.Register(context.Background(), "m-1", RegisterInput{Name: "", WhatsApp: "3001112233"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "m-1", RegisterInput{Name: "Mi Tienda", WhatsApp: "sin numero"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for phone without digits, got %v", err)
	}
}

func TestUpdate_SlugConflict(t *testing.T) {
	repo := newStubStoreRepo()
	repo.owner = &domain.Store{ID: "s-1", OwnerID: "m-1", Name: "Mi Tienda", Slug: "mi-tienda", WhatsApp: "3001112233"}
	repo.bySlug["mi-tienda"] = repo.owner
	repo.bySlug["otra"] = &domain.Store{ID: "s-2", Slug: "otra"}
	svc := New(repo, nil, nil)

	_, err := svc.Update(context.Background(), "m-1", UpdateInput{Name: "Mi Tienda", Slug: "otra", WhatsApp: "3001112233"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// Keeping the own slug never conflicts.
	st, err := svc.Update(context.Background(), "m-1", UpdateInput{Name: "Mi Tienda", Slug: "mi-tienda", WhatsApp: "3001112233"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if st.Slug != "mi-tienda" {
		t.Fatalf("unexpected slug %q", st.Slug)
	}
}

func TestUpdate_ReplacedLogoIsDeleted(t *testing.T) {
	repo := newStubStoreRepo()
	repo.owner = &domain.Store{
		ID: "s-1", OwnerID: "m-1", Name: "Mi Tienda", Slug: "mi-tienda", WhatsApp: "3001112233",
		LogoURL: "https://cdn/old.png", LogoPublicID: "stores/s-1/logo-old",
	}
	repo.bySlug["mi-tienda"] = repo.owner
	deleter := &stubDeleter{err: errors.New("cloudinary down")}
	svc := New(repo, deleter, nil)

	st, err := svc.Update(context.Background(), "m-1", UpdateInput{
		Name: "Mi Tienda", Slug: "mi-tienda", WhatsApp: "3001112233",
		LogoURL: "https://cdn/new.png", LogoPublicID: "stores/s-1/logo-new",
	})
	if err != nil {
		t.Fatalf("asset failure must not fail the update: %v", err)
	}
	if st.LogoPublicID != "stores/s-1/logo-new" {
		t.Fatalf("unexpected logo %q", st.LogoPublicID)
	}
	if len(deleter.deleted) != 1 || deleter.deleted[0] != "stores/s-1/logo-old" {
		t.Fatalf("expected old logo deleted, got %v", deleter.deleted)
	}
}
