package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/juan-beltranos/catalogo-interactivo/internal/config"
	"github.com/juan-beltranos/catalogo-interactivo/internal/db"
	"github.com/juan-beltranos/catalogo-interactivo/internal/importer"
	categoryrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/category"
	productrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/product"
	storerepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/store"
)

func main() {
	var (
		filePath  string
		storeSlug string
	)
	pflag.StringVarP(&filePath, "file", "f", "", "path to a product spreadsheet (.xlsx or .csv)")
	pflag.StringVarP(&storeSlug, "store", "s", "", "slug of the store to import into")
	pflag.Parse()

	if filePath == "" || storeSlug == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	st, err := storerepo.NewPostgres(pool, logger).GetBySlug(ctx, storeSlug)
	if err != nil {
		logger.Fatalf("resolve store %q: %v", storeSlug, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.New(
		productrepo.NewPostgres(pool, logger),
		categoryrepo.NewPostgres(pool),
		st.ID,
		logger,
	)

	start := time.Now()
	var sum *importer.Summary
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		sum, err = imp.ImportXLSX(ctx, f)
	case ".csv":
		sum, err = imp.ImportCSV(ctx, f)
	default:
		logger.Fatalf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(filePath))
	}
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported into %s in %s: %d created, %d skipped, %d failed\n",
		storeSlug, time.Since(start).Truncate(time.Millisecond), sum.Created, sum.Skipped, sum.Failed)
	for _, e := range sum.Errors {
		fmt.Println("  -", e)
	}
}
