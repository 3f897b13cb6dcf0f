// migrate_legacy importa produtos.json y vendas.json del sistema anterior al almacenamiento
// configurado (STORAGE_DRIVER). Los productos se agregan o reemplazan por código; las ventas
// se agregan al final del historial.
//
// Uso: go run ./cmd/migrate_legacy [produtos.json] [vendas.json]
// Por defecto usa LEGACY_PRODUCTS_FILE y LEGACY_SALES_FILE (LEGACY_ENCODING: utf-8 | latin1).
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/legacy"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/storage"
	"github.com/jhoicas/pos-supermercado/pkg/config"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	productsFile, salesFile := cfg.Legacy.ProductsFile, cfg.Legacy.SalesFile
	if len(os.Args) > 1 {
		productsFile = os.Args[1]
	}
	if len(os.Args) > 2 {
		salesFile = os.Args[2]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if err := run(context.Background(), cfg, log, productsFile, salesFile); err != nil {
		fmt.Fprintf(os.Stderr, "Migración: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, productsFile, salesFile string) error {
	dec, err := legacy.NewDecoder(cfg.Legacy.Encoding, nil)
	if err != nil {
		return err
	}
	products, err := readLegacy(productsFile, func(f *os.File) ([]entity.Product, error) { return dec.Products(f) })
	if err != nil {
		return err
	}
	sales, err := readLegacy(salesFile, func(f *os.File) ([]entity.Sale, error) { return dec.Sales(f) })
	if err != nil {
		return err
	}

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		store, closeStore, err := storage.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		return importAll(ctx, cfg, log, store, products, sales)
	}

	// En PostgreSQL ambas colecciones se confirman en una sola transacción.
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	store := postgres.NewSnapshotStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("crear esquema de snapshots: %w", err)
	}
	err = postgres.NewTxRunner(pool).Run(ctx, func(ctx context.Context, tx *postgres.SnapshotStore) error {
		return importAll(ctx, cfg, log, tx, products, sales)
	})
	if err != nil {
		return err
	}
	count, total, err := store.SalesSummary(ctx, cfg.Storage.SalesCollection)
	if err != nil {
		return fmt.Errorf("resumen de ventas: %w", err)
	}
	fmt.Printf("PostgreSQL: %d ventas, total recaudado %s\n", count, total.StringFixed(2))
	return nil
}

func importAll(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	store repository.SnapshotStore,
	products []entity.Product,
	sales []entity.Sale,
) error {
	cat := catalog.New(store, cfg.Storage.ProductsCollection, log)
	if err := cat.Load(ctx); err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		return err
	}
	ledger := sale.NewLedger(store, cfg.Storage.SalesCollection, log)
	if err := ledger.Load(ctx); err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		return err
	}

	// Se valida antes de escribir nada para que un segundo intento no deje el catálogo a medias.
	if len(sales) > 0 && ledger.Len() > 0 {
		return fmt.Errorf("la migración ya se ejecutó (%d ventas registradas): %w", ledger.Len(), domain.ErrHistoryNotEmpty)
	}

	nProducts, err := cat.Import(ctx, products)
	if err != nil {
		return fmt.Errorf("importar productos: %w", err)
	}
	nSales, err := ledger.Import(ctx, sales)
	if err != nil {
		return fmt.Errorf("importar ventas: %w", err)
	}
	fmt.Printf("Productos importados: %d (catálogo: %d)\n", nProducts, cat.Len())
	fmt.Printf("Ventas importadas:    %d (historial: %d)\n", nSales, ledger.Len())
	return nil
}

// readLegacy abre y decodifica un archivo heredado. Un archivo inexistente equivale a colección vacía.
func readLegacy[T any](path string, decode func(*os.File) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return decode(f)
}
