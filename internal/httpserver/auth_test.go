package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	accountsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/account"
)

func TestSignupHandler_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"tienda@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"tienda@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_EmailTaken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := &stubAccounts{signupErr: domain.ErrAlreadyExists}
	router, err := buildRouter(logDiscard(), nil, testDeps(accounts, nil, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"tienda@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := &stubAccounts{loginErr: accountsvc.ErrInvalidCredentials}
	router, err := buildRouter(logDiscard(), nil, testDeps(accounts, nil, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"tienda@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMeHandler_UnauthorizedWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMeHandler_IncludesStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := &stubAccounts{merchant: &domain.Merchant{ID: "m-1", Email: "me@example.com"}}
	stores := &stubStores{store: &domain.Store{ID: "s-1", OwnerID: "m-1", Name: "Mi Tienda", Slug: "mi-tienda"}}
	router, err := buildRouter(logDiscard(), nil, testDeps(accounts, stores, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"slug":"mi-tienda"`) {
		t.Fatalf("expected store in body: %s", rec.Body.String())
	}
}

func TestAdminRoutes_RequireStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := &stubAccounts{merchant: &domain.Merchant{ID: "m-1"}}
	router, err := buildRouter(logDiscard(), nil, testDeps(accounts, &stubStores{}, nil, nil, nil), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for merchant without store, got %d body=%s", rec.Code, rec.Body.String())
	}
}
