package repository

import (
	"context"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// SaleRepository define el puerto del historial de ventas (solo agregar, nunca modificar).
type SaleRepository interface {
	Append(sale entity.Sale)
	List() []entity.Sale
	// Flush persiste la colección completa de ventas.
	Flush(ctx context.Context) error
}
