package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/dto"
	"github.com/jhoicas/pos-supermercado/internal/application/report"
)

// ReportHandler expone los reportes en JSON y PDF.
type ReportHandler struct {
	views            *report.Views
	renderer         report.Renderer
	defaultThreshold int
}

// NewReportHandler construye el handler. defaultThreshold se usa si la petición no trae ?threshold.
func NewReportHandler(views *report.Views, renderer report.Renderer, defaultThreshold int) *ReportHandler {
	return &ReportHandler{views: views, renderer: renderer, defaultThreshold: defaultThreshold}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Produce      json
// @Param        threshold  query  int  false  "Límite inclusivo"  default(5)
// @Success      200  {object}  dto.LowStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	r, err := h.lowStock(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLowStock(r))
}

// LowStockPDF godoc
// @Summary      Reporte de stock bajo en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        threshold  query  int  false  "Límite inclusivo"  default(5)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	r, err := h.lowStock(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.renderer.RenderLowStock(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, fmt.Sprintf("stock-bajo-%d.pdf", r.Threshold), pdf)
}

// SalesHistory godoc
// @Summary      Historial de ventas con total general
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SalesHistoryResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesHistory(c *fiber.Ctx) error {
	return c.JSON(dto.FromSalesHistory(h.views.SalesHistory()))
}

// SalesHistoryPDF godoc
// @Summary      Historial de ventas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesHistoryPDF(c *fiber.Ctx) error {
	pdf, err := h.renderer.RenderSalesHistory(c.UserContext(), h.views.SalesHistory())
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "ventas.pdf", pdf)
}

func (h *ReportHandler) lowStock(c *fiber.Ctx) (report.LowStockReport, error) {
	threshold := h.defaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := catalog.ParseThreshold(raw)
		if err != nil {
			return report.LowStockReport{}, err
		}
		threshold = n
	}
	return h.views.LowStock(threshold)
}

func sendPDF(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(body)
}
