package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/application/report"
)

// LowStockResponse reporte de stock bajo.
type LowStockResponse struct {
	Threshold   int               `json:"threshold"`
	GeneratedAt time.Time         `json:"generated_at"`
	Items       []ProductResponse `json:"items"`
}

// SaleEntryResponse venta numerada dentro del historial.
type SaleEntryResponse struct {
	Number int          `json:"number"`
	Sale   SaleResponse `json:"sale"`
}

// SalesHistoryResponse historial completo con el total general.
type SalesHistoryResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Entries     []SaleEntryResponse `json:"entries"`
	UnitsSold   int                 `json:"units_sold"`
	GrandTotal  decimal.Decimal     `json:"grand_total"`
}

// FromLowStock mapea el reporte.
func FromLowStock(r report.LowStockReport) LowStockResponse {
	return LowStockResponse{Threshold: r.Threshold, GeneratedAt: r.GeneratedAt, Items: FromProducts(r.Items)}
}

// FromSalesHistory mapea el historial.
func FromSalesHistory(h report.SalesHistory) SalesHistoryResponse {
	entries := make([]SaleEntryResponse, 0, len(h.Entries))
	for _, e := range h.Entries {
		entries = append(entries, SaleEntryResponse{Number: e.Number, Sale: FromSale(e.Sale)})
	}
	return SalesHistoryResponse{
		GeneratedAt: h.GeneratedAt,
		Entries:     entries,
		UnitsSold:   h.UnitsSold,
		GrandTotal:  h.GrandTotal,
	}
}
