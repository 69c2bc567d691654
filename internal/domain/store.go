package domain

import "time"

// Store is a merchant storefront. Slug is the public catalog handle and is
// unique across tenants.
type Store struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"-"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	WhatsApp     string    `json:"whatsapp"`
	Description  string    `json:"description,omitempty"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	LogoPublicID string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
