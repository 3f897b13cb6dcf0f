package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// UpsertProductRequest entrada para crear o reemplazar un producto. El código va en la ruta.
type UpsertProductRequest struct {
	Name  Text `json:"name"`
	Price Text `json:"price"`
	Stock Text `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductListResponse productos en el orden del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// DeleteProductResponse resultado de una eliminación.
type DeleteProductResponse struct {
	Code    string `json:"code"`
	Removed bool   `json:"removed"`
}

// FromProduct mapea la entidad a su respuesta.
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{Code: p.Code, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

// FromProducts mapea una lista conservando el orden; nunca devuelve nil.
func FromProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
