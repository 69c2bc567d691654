package httpserver

import (
	"context"
	"io"
	"log"
	"strconv"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	accountsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/account"
	catalogsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/catalog"
	ordersvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/order"
	storesvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/store"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAccounts struct {
	merchant  *domain.Merchant
	loginErr  error
	signupErr error
}

func (s *stubAccounts) Signup(_ context.Context, email, _ string) (*domain.Merchant, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &domain.Merchant{ID: "m-1", Email: email}, nil
}

func (s *stubAccounts) Login(_ context.Context, _, _ string) (*domain.Merchant, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.merchant, "access", "refresh", nil
}

func (s *stubAccounts) Refresh(_ context.Context, _ string) (string, error) {
	return "access", nil
}

func (s *stubAccounts) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAccounts) LookupByToken(_ context.Context, token string) (*domain.Merchant, error) {
	if s.merchant == nil || token != "token" {
		return nil, accountsvc.ErrInvalidToken
	}
	return s.merchant, nil
}

func (s *stubAccounts) RequestPasswordReset(_ context.Context, _ string) (string, error) {
	return "reset-token", nil
}

func (s *stubAccounts) ResetPassword(_ context.Context, _, _ string) error { return nil }

func (s *stubAccounts) AccessTTLSeconds() int { return 3600 }

type stubStores struct {
	store *domain.Store
}

func (s *stubStores) Register(_ context.Context, ownerID string, in storesvc.RegisterInput) (*domain.Store, error) {
	st := &domain.Store{ID: "s-1", OwnerID: ownerID, Name: in.Name, Slug: "tienda"}
	return st, nil
}

func (s *stubStores) GetByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	if s.store == nil || s.store.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return s.store, nil
}

func (s *stubStores) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	if s.store == nil || s.store.Slug != slug {
		return nil, domain.ErrNotFound
	}
	return s.store, nil
}

func (s *stubStores) Update(_ context.Context, _ string, in storesvc.UpdateInput) (*domain.Store, error) {
	st := *s.store
	st.Name = in.Name
	return &st, nil
}

// productSource pages over a fixed slice with index cursors.
type productSource struct {
	items []domain.Product
}

func (s productSource) FetchPage(_ context.Context, req paging.FetchRequest) ([]paging.Item[domain.Product], error) {
	matches := func(p domain.Product) bool {
		return req.Filter == "" || p.CategoryID == req.Filter
	}
	at := func(c paging.Cursor) int {
		i, err := strconv.Atoi(string(c))
		if err != nil {
			return -1
		}
		return i
	}
	item := func(i int) paging.Item[domain.Product] {
		return paging.Item[domain.Product]{Value: s.items[i], Cursor: paging.Cursor(strconv.Itoa(i))}
	}

	var out []paging.Item[domain.Product]
	switch {
	case req.Before != nil:
		for i := 0; i < at(req.Before) && i < len(s.items); i++ {
			if matches(s.items[i]) {
				out = append(out, item(i))
			}
		}
		if len(out) > req.Limit {
			out = out[len(out)-req.Limit:]
		}
	case req.After != nil:
		for i := at(req.After) + 1; i < len(s.items) && len(out) < req.Limit; i++ {
			if matches(s.items[i]) {
				out = append(out, item(i))
			}
		}
	default:
		for i := 0; i < len(s.items) && len(out) < req.Limit; i++ {
			if matches(s.items[i]) {
				out = append(out, item(i))
			}
		}
	}
	return out, nil
}

type stubCatalog struct {
	products  []domain.Product
	createErr error
	pageSize  int
}

func (s *stubCatalog) Create(_ context.Context, storeID string, in catalogsvc.ProductInput) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Product{ID: "p-1", StoreID: storeID, Name: in.Name, Price: in.Price}, nil
}

func (s *stubCatalog) Update(_ context.Context, storeID, id string, in catalogsvc.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: id, StoreID: storeID, Name: in.Name, Price: in.Price}, nil
}

func (s *stubCatalog) Get(_ context.Context, _, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubCatalog) Pager(_, state string) (*paging.Pager[domain.Product], error) {
	size := s.pageSize
	if size == 0 {
		size = 2
	}
	p := paging.New[domain.Product](productSource{items: s.products}, size)
	if state != "" {
		if err := p.Restore(state); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type stubCategories struct {
	categories []domain.Category
	deleteErr  error
}

func (s *stubCategories) List(_ context.Context, _ string) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategories) Create(_ context.Context, storeID, name string, order int) (*domain.Category, error) {
	return &domain.Category{ID: "c-1", StoreID: storeID, Name: name, Order: order}, nil
}

func (s *stubCategories) Update(_ context.Context, storeID, id, name string, order int) (*domain.Category, error) {
	return &domain.Category{ID: id, StoreID: storeID, Name: name, Order: order}, nil
}

func (s *stubCategories) Delete(_ context.Context, _, _ string) error { return s.deleteErr }

type stubOrders struct {
	placed   *ordersvc.Placed
	placeErr error
	orders   []domain.Order
}

func (s *stubOrders) Place(_ context.Context, _ string, _ ordersvc.PlaceInput) (*ordersvc.Placed, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return s.placed, nil
}

func (s *stubOrders) Get(_ context.Context, _, id string) (*domain.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) UpdateStatus(_ context.Context, _, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ordersvc.ErrInvalidStatus
	}
	return &domain.Order{ID: id, Status: status}, nil
}

func (s *stubOrders) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubOrders) CountByStatus(_ context.Context, _ string) (map[domain.OrderStatus]int, error) {
	return map[domain.OrderStatus]int{domain.OrderNew: len(s.orders)}, nil
}

func (s *stubOrders) Clients(_ context.Context, _ string) ([]domain.Client, error) {
	return nil, nil
}

func (s *stubOrders) Client(_ context.Context, _, phone string) (*domain.Client, error) {
	return &domain.Client{Phone: phone}, nil
}

func (s *stubOrders) Pager(_, state string) (*paging.Pager[domain.Order], error) {
	p := paging.New[domain.Order](orderSource{items: s.orders}, 2)
	if state != "" {
		if err := p.Restore(state); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type orderSource struct {
	items []domain.Order
}

func (s orderSource) FetchPage(_ context.Context, req paging.FetchRequest) ([]paging.Item[domain.Order], error) {
	var out []paging.Item[domain.Order]
	start := 0
	if req.After != nil {
		i, _ := strconv.Atoi(string(req.After))
		start = i + 1
	}
	for i := start; i < len(s.items) && len(out) < req.Limit; i++ {
		if req.Filter != "" && string(s.items[i].Status) != req.Filter {
			continue
		}
		out = append(out, paging.Item[domain.Order]{Value: s.items[i], Cursor: paging.Cursor(strconv.Itoa(i))})
	}
	return out, nil
}

func testDeps(accounts *stubAccounts, stores *stubStores, catalog *stubCatalog, categories *stubCategories, orders *stubOrders) Deps {
	if accounts == nil {
		accounts = &stubAccounts{}
	}
	if stores == nil {
		stores = &stubStores{}
	}
	if catalog == nil {
		catalog = &stubCatalog{}
	}
	if categories == nil {
		categories = &stubCategories{}
	}
	if orders == nil {
		orders = &stubOrders{}
	}
	return Deps{
		Accounts:   accounts,
		Stores:     stores,
		Catalog:    catalog,
		Categories: categories,
		Orders:     orders,
	}
}
