// Package pdf implementa la representación imprimible de los reportes con Maroto v2.
//
// Layout de la página A4 (ambos reportes):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del comercio   │  Título + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUERPO: tabla de productos o bloques de ventas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: total general / cantidad de ítems                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/application/report"
)

var _ report.Renderer = (*ReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "2006-01-02 15:04:05"

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportRenderer implementa report.Renderer usando Maroto v2.
type ReportRenderer struct {
	storeName string
	currency  string
}

// NewReportRenderer construye el renderer. currency es el prefijo de los montos (ej. "R$").
func NewReportRenderer(storeName, currency string) *ReportRenderer {
	return &ReportRenderer{storeName: storeName, currency: currency}
}

// RenderLowStock genera el PDF del reporte de stock bajo.
func (g *ReportRenderer) RenderLowStock(_ context.Context, r report.LowStockReport) ([]byte, error) {
	m := g.newDocument("Reporte de stock bajo")
	title := fmt.Sprintf("Productos con stock menor o igual a %d unidades", r.Threshold)
	m.AddRows(g.headerRow(title, r.GeneratedAt.Format(dateLayout)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(r.Items) == 0 {
		m.AddRows(messageRow(fmt.Sprintf("Ningún producto con stock menor o igual a %d unidades.", r.Threshold)))
		return generate(m)
	}

	m.AddRows(tableHeader(
		headerCell{"Código", 3, align.Left},
		headerCell{"Nombre", 6, align.Left},
		headerCell{"Stock", 3, align.Right},
	))
	for _, p := range r.Items {
		stockColor := colorGray
		if p.Stock == 0 {
			stockColor = colorAlert
		}
		m.AddRows(row.New(6).Add(
			col.New(3).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", p.Stock), props.Text{
				Size: 8, Top: 1, Right: 1, Align: align.Right, Color: stockColor,
			})),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow("Productos listados:", fmt.Sprintf("%d", len(r.Items))))
	return generate(m)
}

// RenderSalesHistory genera el PDF con todas las ventas y el total general recaudado.
func (g *ReportRenderer) RenderSalesHistory(_ context.Context, h report.SalesHistory) ([]byte, error) {
	m := g.newDocument("Reporte de ventas")
	m.AddRows(g.headerRow("Reporte de todas las ventas", h.GeneratedAt.Format(dateLayout)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(h.Entries) == 0 {
		m.AddRows(messageRow("Ninguna venta registrada todavía."))
		return generate(m)
	}

	for _, e := range h.Entries {
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Venta #%d  ·  %s", e.Number, e.Sale.Timestamp.Format(dateLayout)),
			props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2},
		))))
		for _, l := range e.Sale.Lines {
			m.AddRows(row.New(5).Add(
				col.New(6).Add(text.New(fmt.Sprintf("%s (%dx)", l.Name, l.Quantity), props.Text{Size: 8, Left: 4})),
				col.New(3).Add(text.New("@ "+g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
				col.New(3).Add(text.New(g.money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Right: 1})),
			))
		}
		m.AddRows(row.New(6).Add(
			col.New(9).Add(text.New("Total de la venta:", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(e.Sale.Total), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 1, Top: 1})),
		))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow("Unidades vendidas:", fmt.Sprintf("%d", h.UnitsSold)))
	m.AddRows(summaryRow("TOTAL GENERAL RECAUDADO:", g.money(h.GrandTotal)))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReportRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: nombre del comercio (izq) y título + fecha (der).
func (g *ReportRenderer) headerRow(title, generatedAt string) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(strings.ToUpper(title), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+generatedAt, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

type headerCell struct {
	label string
	size  int
	align align.Type
}

func tableHeader(cells ...headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func messageRow(msg string) core.Row {
	return row.New(12).Add(col.New(12).Add(text.New(msg, props.Text{
		Size: 9, Align: align.Center, Color: colorGray, Top: 4,
	})))
}

func summaryRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(4).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *ReportRenderer) money(d decimal.Decimal) string {
	return strings.TrimSpace(g.currency + " " + FormatMoney(d))
}

// FormatMoney redondea a dos decimales con punto de miles y coma decimal.
// Ej: 1234.5 → "1.234,50", 0.8 → "0,80"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
