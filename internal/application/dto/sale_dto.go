package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// CreateSaleRequest ítems del carrito a confirmar. Códigos repetidos se suman.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// SaleItemRequest una línea del carrito.
type SaleItemRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// SaleLineResponse línea registrada con los valores del momento de la venta.
type SaleLineResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Lines     []SaleLineResponse `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
}

// SaleListResponse ventas en orden de registro.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}

// FromSale mapea la entidad a su respuesta.
func FromSale(s entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			Code:      l.Code,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return SaleResponse{ID: s.ID, Timestamp: s.Timestamp, Lines: lines, Total: s.Total}
}

// FromSales mapea una lista conservando el orden; nunca devuelve nil.
func FromSales(sales []entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, FromSale(s))
	}
	return out
}
