package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Products int    `json:"products"`
	Sales    int    `json:"sales"`
}

// Text acepta tanto un string JSON como un número ("12,50", "12.50" o 12.5) y conserva
// el texto tal cual para que la validación ocurra en el catálogo, igual que en el formulario.
type Text string

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("se esperaba texto o número: %w", err)
	}
	*t = Text(n.String())
	return nil
}
