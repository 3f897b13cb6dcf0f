package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain"
)

// ParsePrice interpreta un precio aceptando "," o "." como separador decimal ("12,50" == "12.50").
// Solo valida el formato; el rango (> 0) lo valida Put.
func ParsePrice(text string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if normalized == "" {
		return decimal.Zero, domain.NewValidationError(domain.FieldPrice, "es obligatorio")
	}
	price, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(domain.FieldPrice, "debe ser un número válido")
	}
	return price, nil
}

// ParseThreshold interpreta el límite del reporte de stock bajo: entero >= 0.
func ParseThreshold(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, domain.NewValidationError(domain.FieldThreshold, "debe ser un número entero")
	}
	if n < 0 {
		return 0, domain.NewValidationError(domain.FieldThreshold, "no puede ser negativo")
	}
	return n, nil
}

// ParseQuantity interpreta una cantidad del carrito: entero > 0.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, domain.NewValidationError(domain.FieldQuantity, "debe ser un número entero")
	}
	if n <= 0 {
		return 0, domain.NewValidationError(domain.FieldQuantity, "debe ser mayor que cero")
	}
	return n, nil
}
