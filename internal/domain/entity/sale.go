package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el registro inmutable de una venta confirmada.
// Las líneas copian nombre y precio del producto al momento de la venta.
type Sale struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Lines     []SaleLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// SaleLine es una línea de detalle de una venta, una por producto distinto.
type SaleLine struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Clone devuelve una copia profunda para que quien la reciba no pueda alterar el historial.
func (s Sale) Clone() Sale {
	lines := make([]SaleLine, len(s.Lines))
	copy(lines, s.Lines)
	s.Lines = lines
	return s
}

// Units suma las unidades vendidas en todas las líneas.
func (s Sale) Units() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}
