// Package legacy decodifica los archivos JSON del sistema anterior (produtos.json y
// vendas.json, con claves en portugués) a las entidades actuales.
package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// TimestampLayout formato de data_hora en vendas.json.
const TimestampLayout = "2006-01-02 15:04:05"

type produto struct {
	Codigo  string          `json:"codigo"`
	Nome    string          `json:"nome"`
	Preco   decimal.Decimal `json:"preco"`
	Estoque int             `json:"estoque"`
}

type itemVenda struct {
	Codigo        string          `json:"codigo"`
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type venda struct {
	DataHora string          `json:"data_hora"`
	Itens    []itemVenda     `json:"itens"`
	Total    decimal.Decimal `json:"total"`
}

// Decoder lee los archivos heredados con la codificación indicada.
type Decoder struct {
	encoding string
	loc      *time.Location
}

// NewDecoder acepta "utf-8" (por defecto) o "latin1"/"iso-8859-1".
// Las fechas sin zona se interpretan en loc (time.Local si es nil).
func NewDecoder(encoding string, loc *time.Location) (*Decoder, error) {
	enc := strings.ToLower(strings.TrimSpace(encoding))
	switch enc {
	case "", "utf-8", "utf8":
		enc = "utf-8"
	case "latin1", "iso-8859-1", "iso8859-1":
		enc = "latin1"
	default:
		return nil, fmt.Errorf("legacy: codificación no soportada %q", encoding)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Decoder{encoding: enc, loc: loc}, nil
}

func (d *Decoder) reader(r io.Reader) io.Reader {
	if d.encoding == "latin1" {
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return r
}

// Products decodifica produtos.json.
func (d *Decoder) Products(r io.Reader) ([]entity.Product, error) {
	var in []produto
	if err := json.NewDecoder(d.reader(r)).Decode(&in); err != nil {
		return nil, fmt.Errorf("legacy: decodificar productos: %w", err)
	}
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, entity.Product{
			Code:  p.Codigo,
			Name:  p.Nome,
			Price: p.Preco,
			Stock: p.Estoque,
		})
	}
	return out, nil
}

// Sales decodifica vendas.json. Cada venta recibe un ID nuevo.
func (d *Decoder) Sales(r io.Reader) ([]entity.Sale, error) {
	var in []venda
	if err := json.NewDecoder(d.reader(r)).Decode(&in); err != nil {
		return nil, fmt.Errorf("legacy: decodificar ventas: %w", err)
	}
	out := make([]entity.Sale, 0, len(in))
	for i, v := range in {
		ts, err := time.ParseInLocation(TimestampLayout, v.DataHora, d.loc)
		if err != nil {
			return nil, fmt.Errorf("legacy: venta #%d con data_hora inválida %q: %w", i+1, v.DataHora, err)
		}
		lines := make([]entity.SaleLine, 0, len(v.Itens))
		for _, it := range v.Itens {
			lines = append(lines, entity.SaleLine{
				Code:      entity.NormalizeCode(it.Codigo),
				Name:      it.Nome,
				Quantity:  it.Quantidade,
				UnitPrice: it.PrecoUnitario,
				Subtotal:  it.Subtotal,
			})
		}
		out = append(out, entity.Sale{
			ID:        uuid.New().String(),
			Timestamp: ts,
			Lines:     lines,
			Total:     v.Total,
		})
	}
	return out, nil
}
