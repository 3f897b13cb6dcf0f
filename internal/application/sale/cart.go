package sale

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
)

// CartLine es una línea transitoria del carrito. Name y UnitPrice son una foto tomada
// al agregar, solo para mostrar; el motor vuelve a leer el catálogo al confirmar.
type CartLine struct {
	Code      string
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
}

// Subtotal estimado con el precio de la foto.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart agrupa las líneas de una venta en preparación. Hay como máximo una línea por código.
type Cart struct {
	lines []CartLine
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// Add agrega quantity unidades del producto code. Si el código ya está en el carrito
// suma la cantidad. Rechaza cantidades <= 0, códigos inexistentes y cantidades acumuladas
// mayores al stock actual.
func (c *Cart) Add(products repository.ProductRepository, code string, quantity int) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, domain.NewValidationError(domain.FieldQuantity, "debe ser mayor que cero")
	}
	product, ok := products.GetByCode(code)
	if !ok {
		return CartLine{}, fmt.Errorf("producto %q: %w", entity.NormalizeCode(code), domain.ErrNotFound)
	}

	i := c.indexOf(product.Code)
	total := quantity
	if i >= 0 {
		total += c.lines[i].Quantity
	}
	if product.Stock < total {
		return CartLine{}, &domain.StockError{
			Code: product.Code, Name: product.Name,
			Available: product.Stock, Requested: total,
		}
	}

	if i >= 0 {
		c.lines[i].Quantity = total
		return c.lines[i], nil
	}
	line := CartLine{Code: product.Code, Quantity: quantity, Name: product.Name, UnitPrice: product.Price}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove quita la línea del código. Devuelve false si no estaba.
func (c *Cart) Remove(code string) bool {
	i := c.indexOf(entity.NormalizeCode(code))
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Lines devuelve una copia de las líneas en orden de alta.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total estimado con los precios de la foto.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Len() int { return len(c.lines) }

// Clear vacía el carrito.
func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) indexOf(code string) int {
	for i := range c.lines {
		if c.lines[i].Code == code {
			return i
		}
	}
	return -1
}
