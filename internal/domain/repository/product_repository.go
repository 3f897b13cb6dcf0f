package repository

import (
	"context"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// ProductRepository define el puerto del catálogo que consume el motor de ventas (DIP).
type ProductRepository interface {
	// GetByCode busca por código normalizado; ok es false si no existe.
	GetByCode(code string) (product entity.Product, ok bool)
	// UpdateStock fija el stock del producto en memoria. Devuelve false si el código no existe.
	UpdateStock(code string, stock int) bool
	// Flush persiste la colección completa de productos.
	Flush(ctx context.Context) error
}
