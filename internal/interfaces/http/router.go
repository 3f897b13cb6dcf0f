package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/dto"
	"github.com/jhoicas/pos-supermercado/internal/application/report"
	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName       string
	Catalog           *catalog.Catalog
	Engine            *sale.Engine
	Ledger            *sale.Ledger
	Views             *report.Views
	Renderer          report.Renderer
	LowStockThreshold int
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	var mu sync.Mutex

	app.Use(RequestID(), AccessLog(log.Named("http")))

	app.Get("/health", Serialize(&mu), func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:   "ok",
			Service:  deps.ServiceName,
			Products: deps.Catalog.Len(),
			Sales:    deps.Ledger.Len(),
		})
	})

	api := app.Group("/api", Serialize(&mu))

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Upsert)
	products.Delete("/:code", productHandler.Delete)

	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Catalog, deps.Engine, deps.Ledger)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Views, deps.Renderer, deps.LowStockThreshold)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/low-stock.pdf", reportHandler.LowStockPDF)
	reports.Get("/sales", reportHandler.SalesHistory)
	reports.Get("/sales.pdf", reportHandler.SalesHistoryPDF)
}
