package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	"github.com/juan-beltranos/catalogo-interactivo/internal/importer"
	"github.com/juan-beltranos/catalogo-interactivo/internal/media"
	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	catalogsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/catalog"
	ordersvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/order"
	storesvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/store"
)

// AccountService handles merchant authentication.
type AccountService interface {
	Signup(ctx context.Context, email, password string) (*domain.Merchant, error)
	Login(ctx context.Context, email, password string) (*domain.Merchant, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	LookupByToken(ctx context.Context, token string) (*domain.Merchant, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	AccessTTLSeconds() int
}

// StoreService manages store settings and public storefront lookup.
type StoreService interface {
	Register(ctx context.Context, ownerID string, in storesvc.RegisterInput) (*domain.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	Update(ctx context.Context, ownerID string, in storesvc.UpdateInput) (*domain.Store, error)
}

// CatalogService manages products.
type CatalogService interface {
	Create(ctx context.Context, storeID string, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, storeID, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Get(ctx context.Context, storeID, id string) (*domain.Product, error)
	Delete(ctx context.Context, storeID, id string) error
	Pager(storeID, state string) (*paging.Pager[domain.Product], error)
}

// CategoryService manages categories.
type CategoryService interface {
	List(ctx context.Context, storeID string) ([]domain.Category, error)
	Create(ctx context.Context, storeID, name string, order int) (*domain.Category, error)
	Update(ctx context.Context, storeID, id, name string, order int) (*domain.Category, error)
	Delete(ctx context.Context, storeID, id string) error
}

// OrderService places and manages orders.
type OrderService interface {
	Place(ctx context.Context, storeSlug string, in ordersvc.PlaceInput) (*ordersvc.Placed, error)
	Get(ctx context.Context, storeID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, storeID, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, storeID, id string) error
	CountByStatus(ctx context.Context, storeID string) (map[domain.OrderStatus]int, error)
	Clients(ctx context.Context, storeID string) ([]domain.Client, error)
	Client(ctx context.Context, storeID, phone string) (*domain.Client, error)
	Pager(storeID, state string) (*paging.Pager[domain.Order], error)
}

// MediaService signs direct uploads and deletes store assets. Optional:
// routes return 503 when nil.
type MediaService interface {
	SignUpload(storeID, kind string) (*media.SignedUpload, error)
	DeleteAsset(ctx context.Context, publicID string) error
}

// ProductImporter loads spreadsheet files into one store.
type ProductImporter interface {
	ImportXLSX(ctx context.Context, r io.Reader) (*importer.Summary, error)
	ImportCSV(ctx context.Context, r io.Reader) (*importer.Summary, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Accounts   AccountService
	Stores     StoreService
	Catalog    CatalogService
	Categories CategoryService
	Orders     OrderService
	Media      MediaService
	// NewImporter builds a store-scoped importer; nil disables the route.
	NewImporter func(storeID string) ProductImporter
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.Accounts == nil || deps.Stores == nil || deps.Catalog == nil || deps.Categories == nil || deps.Orders == nil {
		return nil, errors.New("httpserver: missing service dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if allowAll(corsOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", signupHandler(deps.Accounts))
	auth.POST("/login", loginHandler(deps.Accounts))
	auth.POST("/refresh", refreshHandler(deps.Accounts))
	auth.POST("/password/forgot", forgotPasswordHandler(deps.Accounts))
	auth.POST("/password/reset", resetPasswordHandler(deps.Accounts))

	authed := api.Group("", requireAuth(deps.Accounts))
	authed.GET("/auth/me", meHandler(deps.Stores))
	authed.POST("/auth/logout", logoutHandler(deps.Accounts))
	authed.POST("/store", registerStoreHandler(deps.Stores))

	admin := authed.Group("", requireStore(deps.Stores))
	admin.GET("/store", getStoreHandler())
	admin.PUT("/store", updateStoreHandler(deps.Stores))

	admin.GET("/categories", listCategoriesHandler(deps.Categories))
	admin.POST("/categories", createCategoryHandler(deps.Categories))
	admin.PUT("/categories/:id", updateCategoryHandler(deps.Categories))
	admin.DELETE("/categories/:id", deleteCategoryHandler(deps.Categories))

	admin.GET("/products", listProductsHandler(deps.Catalog))
	admin.POST("/products", createProductHandler(deps.Catalog))
	admin.GET("/products/:id", getProductHandler(deps.Catalog))
	admin.PUT("/products/:id", updateProductHandler(deps.Catalog))
	admin.DELETE("/products/:id", deleteProductHandler(deps.Catalog))
	admin.POST("/products/import", importProductsHandler(deps.NewImporter))

	admin.GET("/orders", listOrdersHandler(deps.Orders))
	admin.GET("/orders/stats", orderStatsHandler(deps.Orders))
	admin.GET("/orders/:id", getOrderHandler(deps.Orders))
	admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Orders))
	admin.DELETE("/orders/:id", deleteOrderHandler(deps.Orders))

	admin.GET("/clients", listClientsHandler(deps.Orders))
	admin.GET("/clients/:phone", getClientHandler(deps.Orders))

	admin.POST("/media/sign", signUploadHandler(deps.Media))
	admin.POST("/media/delete", deleteAssetHandler(deps.Media))

	public := api.Group("/catalog")
	public.GET("/:slug", publicStoreHandler(deps.Stores, deps.Categories))
	public.GET("/:slug/products", publicProductsHandler(deps.Stores, deps.Catalog))
	public.GET("/:slug/products/:id", publicProductHandler(deps.Stores, deps.Catalog))
	public.POST("/:slug/orders", placeOrderHandler(deps.Orders))

	return router, nil
}

func allowAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
