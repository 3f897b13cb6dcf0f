package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrEmptySale         = errors.New("la venta no tiene ítems válidos")
	ErrCorruptSnapshot   = errors.New("snapshot corrupto")
	ErrHistoryNotEmpty   = errors.New("el historial de ventas ya tiene registros")
)

// Campos validados en el alta/actualización de productos.
const (
	FieldCode      = "code"
	FieldName      = "name"
	FieldPrice     = "price"
	FieldStock     = "stock"
	FieldQuantity  = "quantity"
	FieldThreshold = "threshold"
)

// ValidationError indica qué regla de entrada falló. Se compara con ErrInvalidInput vía errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye el error para un campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StockError se produce cuando una línea del carrito pide más unidades de las disponibles.
type StockError struct {
	Code      string
	Name      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.Name, e.Code, e.Available, e.Requested)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CorruptionWarning señala que el contenido de una colección no pudo decodificarse.
// No es fatal: quien carga continúa con la colección vacía.
type CorruptionWarning struct {
	Collection string
	Err        error
}

func (w *CorruptionWarning) Error() string {
	return fmt.Sprintf("colección %q corrupta: %v", w.Collection, w.Err)
}

func (w *CorruptionWarning) Unwrap() error { return w.Err }

func (w *CorruptionWarning) Is(target error) bool {
	return target == ErrCorruptSnapshot
}
