package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/report"
	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/internal/domain"
	infrapdf "github.com/jhoicas/pos-supermercado/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/pos-supermercado/internal/interfaces/http"
	"github.com/jhoicas/pos-supermercado/pkg/clock"
	"github.com/jhoicas/pos-supermercado/pkg/config"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	// Un snapshot corrupto no impide arrancar: la colección queda vacía y se avisa.
	cat := catalog.New(store, cfg.Storage.ProductsCollection, log)
	if err := cat.Load(ctx); err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	ledger := sale.NewLedger(store, cfg.Storage.SalesCollection, log)
	if err := ledger.Load(ctx); err != nil && !errors.Is(err, domain.ErrCorruptSnapshot) {
		log.Fatal().Err(err).Msg("cargar ventas")
	}
	log.Info().Int("products", cat.Len()).Int("sales", ledger.Len()).Msg("datos cargados")

	clk := clock.NewRealClock()
	engine := sale.NewEngine(cat, ledger, clk, log)
	views := report.NewViews(cat, ledger, clk.Now)
	renderer := infrapdf.NewReportRenderer(cfg.Report.StoreName, cfg.Report.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Supermercado API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:       cfg.App.Name,
		Catalog:           cat,
		Engine:            engine,
		Ledger:            ledger,
		Views:             views,
		Renderer:          renderer,
		LowStockThreshold: cfg.Report.LowStockThreshold,
		Log:               log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
