package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// ProductSource es lo que los reportes leen del catálogo.
type ProductSource interface {
	LowStock(threshold int) ([]entity.Product, error)
}

// SaleSource es lo que los reportes leen del historial de ventas.
type SaleSource interface {
	List() []entity.Sale
}

// Renderer produce la representación imprimible (PDF) de un reporte.
type Renderer interface {
	RenderLowStock(ctx context.Context, r LowStockReport) ([]byte, error)
	RenderSalesHistory(ctx context.Context, r SalesHistory) ([]byte, error)
}

// LowStockReport productos con stock <= Threshold en el orden del catálogo.
type LowStockReport struct {
	Threshold   int
	GeneratedAt time.Time
	Items       []entity.Product
}

// SaleEntry una venta del historial con su número correlativo (desde 1).
type SaleEntry struct {
	Number int
	Sale   entity.Sale
}

// SalesHistory todas las ventas registradas y el total general recaudado.
type SalesHistory struct {
	GeneratedAt time.Time
	Entries     []SaleEntry
	UnitsSold   int
	GrandTotal  decimal.Decimal
}

// Views son proyecciones de solo lectura: no mutan ni persisten nada.
type Views struct {
	products ProductSource
	sales    SaleSource
	now      func() time.Time
}

// NewViews construye las vistas de reportes.
func NewViews(products ProductSource, sales SaleSource, now func() time.Time) *Views {
	if now == nil {
		now = time.Now
	}
	return &Views{products: products, sales: sales, now: now}
}

// LowStock arma el reporte de stock bajo. Un límite negativo es un error de validación.
func (v *Views) LowStock(threshold int) (LowStockReport, error) {
	items, err := v.products.LowStock(threshold)
	if err != nil {
		return LowStockReport{}, err
	}
	return LowStockReport{Threshold: threshold, GeneratedAt: v.now(), Items: items}, nil
}

// SalesHistory enumera todas las ventas en orden de registro con el total general.
func (v *Views) SalesHistory() SalesHistory {
	sales := v.sales.List()
	h := SalesHistory{
		GeneratedAt: v.now(),
		Entries:     make([]SaleEntry, 0, len(sales)),
		GrandTotal:  decimal.Zero,
	}
	for i, s := range sales {
		h.Entries = append(h.Entries, SaleEntry{Number: i + 1, Sale: s})
		h.GrandTotal = h.GrandTotal.Add(s.Total)
		h.UnitsSold += s.Units()
	}
	return h
}
