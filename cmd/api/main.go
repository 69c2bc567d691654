package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/juan-beltranos/catalogo-interactivo/internal/config"
	"github.com/juan-beltranos/catalogo-interactivo/internal/db"
	"github.com/juan-beltranos/catalogo-interactivo/internal/httpserver"
	"github.com/juan-beltranos/catalogo-interactivo/internal/importer"
	"github.com/juan-beltranos/catalogo-interactivo/internal/media"
	categoryrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/category"
	clientrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/client"
	merchantrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/merchant"
	orderrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/order"
	productrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/product"
	storerepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/store"
	tokenrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/token"
	accountsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/account"
	catalogsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/catalog"
	categorysvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/category"
	ordersvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/order"
	storesvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var mediaSvc *media.Service
	if cfg.CloudinaryCloudName != "" {
		mediaSvc, err = media.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger)
		if err != nil {
			logger.Fatalf("init media service: %v", err)
		}
	} else {
		logger.Printf("cloudinary not configured, media endpoints disabled")
	}

	merchants := merchantrepo.NewPostgres(dbpool, logger)
	tokens := tokenrepo.NewPostgres(dbpool)
	stores := storerepo.NewPostgres(dbpool, logger)
	categories := categoryrepo.NewPostgres(dbpool)
	products := productrepo.NewPostgres(dbpool, logger)
	orders := orderrepo.NewPostgres(dbpool, logger)
	clients := clientrepo.NewPostgres(dbpool)

	var assets media.Deleter
	if mediaSvc != nil {
		assets = mediaSvc
	}

	accountService := accountsvc.New(merchants, tokens)
	storeService := storesvc.New(stores, assets, logger)
	catalogService := catalogsvc.New(products, categories, assets, logger)
	categoryService := categorysvc.New(categories, products)
	orderService := ordersvc.New(orders, clients, stores, logger)

	deps := httpserver.Deps{
		Accounts:   accountService,
		Stores:     storeService,
		Catalog:    catalogService,
		Categories: categoryService,
		Orders:     orderService,
		NewImporter: func(storeID string) httpserver.ProductImporter {
			return importer.New(products, categories, storeID, logger)
		},
	}
	if mediaSvc != nil {
		deps.Media = mediaSvc
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
