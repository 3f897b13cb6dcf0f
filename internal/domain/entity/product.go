package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Product representa un producto del catálogo del supermercado.
// Code es único sin distinguir mayúsculas y se guarda normalizado en mayúsculas.
type Product struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"` // precio de venta, siempre > 0
	Stock int             `json:"stock"` // unidades disponibles, nunca negativo
}

// NormalizeCode devuelve el código en la forma usada para guardar y comparar.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeName aplica formato título al nombre ("arroz BLANCO" -> "Arroz Blanco").
func NormalizeName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// SameCode compara dos códigos sin distinguir mayúsculas.
func SameCode(a, b string) bool {
	return NormalizeCode(a) == NormalizeCode(b)
}
