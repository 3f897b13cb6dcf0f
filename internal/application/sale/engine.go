package sale

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
	"github.com/jhoicas/pos-supermercado/pkg/clock"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

// Engine convierte un carrito en una venta registrada descontando stock del catálogo.
type Engine struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	clock    clock.Clock
	newID    func() string
	log      *logger.Logger
}

// NewEngine construye el motor de ventas.
func NewEngine(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	clk clock.Clock,
	log *logger.Logger,
) *Engine {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		products: products,
		sales:    sales,
		clock:    clk,
		newID:    func() string { return uuid.New().String() },
		log:      log.Named("sale_engine"),
	}
}

// Commit procesa las líneas en orden y, si todo sale bien, registra y persiste la venta.
//
// Por cada línea: si el producto ya no existe la línea se omite; si el stock no alcanza
// se aborta con *domain.StockError; si alcanza, el stock se descuenta en ese mismo momento.
// Un aborto en una línea posterior NO revierte los descuentos de las líneas anteriores,
// y en ese caso no se registra venta ni se persiste nada.
//
// Una línea con cantidad <= 0 rechaza el carrito completo con *domain.ValidationError
// antes de tocar el stock.
// Si el total no es positivo (todas las líneas omitidas) devuelve domain.ErrEmptySale.
// Si falla la persistencia la venta ya quedó registrada en memoria y se devuelve
// junto con el error.
func (e *Engine) Commit(ctx context.Context, lines []CartLine) (entity.Sale, error) {
	if len(lines) == 0 {
		return entity.Sale{}, domain.ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return entity.Sale{}, domain.NewValidationError(domain.FieldQuantity,
				fmt.Sprintf("debe ser mayor que cero (%s: %d)", entity.NormalizeCode(line.Code), line.Quantity))
		}
	}

	total := decimal.Zero
	saleLines := make([]entity.SaleLine, 0, len(lines))
	for _, line := range lines {
		product, ok := e.products.GetByCode(line.Code)
		if !ok {
			e.log.Warn().Str("code", line.Code).Msg("producto del carrito ya no existe, línea omitida")
			continue
		}
		if product.Stock < line.Quantity {
			e.log.Warn().
				Str("code", product.Code).
				Int("available", product.Stock).
				Int("requested", line.Quantity).
				Int("lines_already_applied", len(saleLines)).
				Msg("venta abortada por stock insuficiente")
			return entity.Sale{}, &domain.StockError{
				Code: product.Code, Name: product.Name,
				Available: product.Stock, Requested: line.Quantity,
			}
		}

		e.products.UpdateStock(product.Code, product.Stock-line.Quantity)
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		saleLines = append(saleLines, entity.SaleLine{
			Code:      product.Code,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
	}

	if !total.IsPositive() {
		return entity.Sale{}, domain.ErrEmptySale
	}

	s := entity.Sale{
		ID:        e.newID(),
		Timestamp: e.clock.Now(),
		Lines:     saleLines,
		Total:     total,
	}
	e.sales.Append(s)

	if err := e.products.Flush(ctx); err != nil {
		return s.Clone(), err
	}
	if err := e.sales.Flush(ctx); err != nil {
		return s.Clone(), err
	}

	e.log.Info().
		Str("sale_id", s.ID).
		Int("lines", len(s.Lines)).
		Str("total", s.Total.StringFixed(2)).
		Msg("venta registrada")
	return s.Clone(), nil
}

// Checkout confirma el carrito y lo vacía si la venta quedó registrada,
// aunque haya fallado la persistencia posterior.
func (e *Engine) Checkout(ctx context.Context, cart *Cart) (entity.Sale, error) {
	s, err := e.Commit(ctx, cart.Lines())
	if s.ID != "" {
		cart.Clear()
	}
	return s, err
}
