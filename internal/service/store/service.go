package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/media"
	storerepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/store"
	"github.com/juan-beltranos/catalogo-interactivo/internal/slug"
)

// ErrSlugTaken is returned when the requested public URL slug belongs to
// another store.
var ErrSlugTaken = errors.New("slug already in use")

// Service manages store settings and the public storefront lookup.
type Service struct {
	repo   storerepo.Repository
	assets media.Deleter
	logger *log.Logger
}

func New(repo storerepo.Repository, assets media.Deleter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, assets: assets, logger: logger}
}

// RegisterInput carries the fields needed to open a store.
type RegisterInput struct {
	Name        string `json:"name"`
	WhatsApp    string `json:"whatsapp"`
	Description string `json:"description"`
}

// Register opens the merchant's store. The slug is derived from the name;
// when taken, a numeric suffix is appended until a free one is found.
func (s *Service) Register(ctx context.Context, ownerID string, in RegisterInput) (*domain.Store, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name required", domain.ErrInvalidInput)
	}
	phone := slug.Digits(in.WhatsApp)
	if phone == "" {
		return nil, fmt.Errorf("%w: whatsapp number required", domain.ErrInvalidInput)
	}

	base := slug.Slugify(name)
	if base == "" {
		base = "tienda"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugTaken(ctx, candidate, "")
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	created, err := s.repo.Create(ctx, domain.Store{
		OwnerID:     ownerID,
		Name:        name,
		Slug:        candidate,
		WhatsApp:    phone,
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("store: registered id=%s slug=%s owner=%s", created.ID, created.Slug, ownerID)
	return created, nil
}

// GetByOwner returns the merchant's store.
func (s *Service) GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// GetBySlug resolves a public storefront by its URL slug.
func (s *Service) GetBySlug(ctx context.Context, storeSlug string) (*domain.Store, error) {
	return s.repo.GetBySlug(ctx, storeSlug)
}

// UpdateInput carries editable store settings. Logo fields replace the
// current logo when set; empty values clear it.
type UpdateInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	WhatsApp     string `json:"whatsapp"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	LogoPublicID string `json:"logoPublicId"`
}

// Update changes store settings. When the logo is replaced or cleared, the
// previous Cloudinary asset is deleted best-effort: a failed deletion is
// logged but never fails the update.
func (s *Service) Update(ctx context.Context, ownerID string, in UpdateInput) (*domain.Store, error) {
	current, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name required", domain.ErrInvalidInput)
	}
	phone := slug.Digits(in.WhatsApp)
	if phone == "" {
		return nil, fmt.Errorf("%w: whatsapp number required", domain.ErrInvalidInput)
	}
	newSlug := slug.Slugify(in.Slug)
	if newSlug == "" {
		newSlug = current.Slug
	}
	if newSlug != current.Slug {
		taken, err := s.repo.SlugTaken(ctx, newSlug, current.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
	}

	updated, err := s.repo.Update(ctx, current.ID, storerepo.UpdateInput{
		Name:         name,
		Slug:         newSlug,
		WhatsApp:     phone,
		Description:  strings.TrimSpace(in.Description),
		LogoURL:      in.LogoURL,
		LogoPublicID: in.LogoPublicID,
	})
	if err != nil {
		return nil, err
	}

	if old := current.LogoPublicID; old != "" && old != updated.LogoPublicID && s.assets != nil {
		if err := s.assets.DeleteAsset(ctx, old); err != nil {
			s.logger.Printf("store: logo cleanup id=%s public_id=%s error=%v", current.ID, old, err)
		}
	}
	return updated, nil
}
