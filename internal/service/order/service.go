package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/juan-beltranos/catalogo-interactivo/internal/catalog/cart"
	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	clientrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/client"
	orderrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/order"
	storerepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/store"
	"github.com/juan-beltranos/catalogo-interactivo/internal/slug"
	"github.com/juan-beltranos/catalogo-interactivo/internal/walink"
)

var (
	// ErrEmptyOrder is returned when an order carries no valid lines.
	ErrEmptyOrder = fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = fmt.Errorf("%w: invalid order status", domain.ErrInvalidInput)
)

// Service places shopper orders and manages them for the merchant.
type Service struct {
	orders   orderrepo.Repository
	clients  clientrepo.Repository
	stores   storerepo.Repository
	logger   *log.Logger
	pageSize int
}

func New(orders orderrepo.Repository, clients clientrepo.Repository, stores storerepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:   orders,
		clients:  clients,
		stores:   stores,
		logger:   logger,
		pageSize: 12,
	}
}

// PlaceInput is the anonymous checkout payload.
type PlaceInput struct {
	Customer domain.OrderCustomer `json:"customer"`
	Notes    string               `json:"notes"`
	Items    []domain.CartItem    `json:"items"`
}

// Placed bundles the stored order with the WhatsApp handoff the shopper
// opens to notify the merchant.
type Placed struct {
	Order        *domain.Order `json:"order"`
	WhatsAppLink string        `json:"whatsappLink"`
	Message      string        `json:"message"`
}

// Place records an order against the store identified by its public slug
// and returns the wa.me link carrying the order summary. Invalid lines
// (no price or quantity) are dropped; an order with none left is refused.
func (s *Service) Place(ctx context.Context, storeSlug string, in PlaceInput) (*Placed, error) {
	st, err := s.stores.GetBySlug(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Customer.Name)
	phone := slug.Digits(in.Customer.Phone)
	address := strings.TrimSpace(in.Customer.Address)
	if name == "" || address == "" {
		return nil, fmt.Errorf("%w: customer name and address required", domain.ErrInvalidInput)
	}
	if len(phone) < 7 || len(phone) > 15 {
		return nil, fmt.Errorf("%w: customer phone must be 7 to 15 digits", domain.ErrInvalidInput)
	}

	var lines []domain.CartItem
	for _, it := range in.Items {
		lines = cart.Add(lines, it)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	o := domain.Order{
		StoreID: st.ID,
		Customer: domain.OrderCustomer{
			Name:    name,
			Phone:   phone,
			Address: address,
		},
		Notes: strings.TrimSpace(in.Notes),
		Items: cart.OrderItems(lines),
		Total: cart.Total(lines),
	}

	placed, err := s.orders.Place(ctx, o)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order: placed store=%s id=%s items=%d total=%d", st.Slug, placed.ID, len(placed.Items), placed.Total)

	msg := walink.OrderMessage(st.Name, placed.ID, *placed)
	return &Placed{
		Order:        placed,
		WhatsAppLink: walink.Build(st.WhatsApp, msg),
		Message:      msg,
	}, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, storeID, id)
}

// UpdateStatus moves an order through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, storeID, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orders.UpdateStatus(ctx, storeID, id, status)
}

// Delete removes an order. Client counters are left as-is: the purchase
// happened even if the merchant clears the record.
func (s *Service) Delete(ctx context.Context, storeID, id string) error {
	return s.orders.Delete(ctx, storeID, id)
}

// CountByStatus returns order totals per status for the dashboard.
func (s *Service) CountByStatus(ctx context.Context, storeID string) (map[domain.OrderStatus]int, error) {
	return s.orders.CountByStatus(ctx, storeID)
}

// Clients lists the store's buyers, most recent order first.
func (s *Service) Clients(ctx context.Context, storeID string) ([]domain.Client, error) {
	return s.clients.ListByStore(ctx, storeID)
}

// Client returns one buyer by phone.
func (s *Service) Client(ctx context.Context, storeID, phone string) (*domain.Client, error) {
	return s.clients.GetByPhone(ctx, storeID, slug.Digits(phone))
}

// Pager returns an order pager for the store, optionally restored from a
// previously issued state token. The filter, when set, is a status.
func (s *Service) Pager(storeID, state string) (*paging.Pager[domain.Order], error) {
	p := paging.New(s.orders.Pages(storeID), s.pageSize)
	if state != "" {
		if err := p.Restore(state); err != nil {
			return nil, err
		}
	}
	return p, nil
}
