package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-supermercado/internal/application/dto"
	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
)

// SaleHandler maneja la confirmación de ventas y el historial.
type SaleHandler struct {
	products repository.ProductRepository
	engine   *sale.Engine
	ledger   *sale.Ledger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(products repository.ProductRepository, engine *sale.Engine, ledger *sale.Ledger) *SaleHandler {
	return &SaleHandler{products: products, engine: engine, ledger: ledger}
}

// Create godoc
// @Summary      Confirmar una venta
// @Description  Arma el carrito con los ítems (validando existencia y stock) y lo confirma.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Ítems del carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cart := sale.NewCart()
	for _, item := range in.Items {
		if _, err := cart.Add(h.products, item.Code, item.Quantity); err != nil {
			return writeError(c, err)
		}
	}
	s, err := h.engine.Checkout(c.UserContext(), cart)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSale(s))
}

// List godoc
// @Summary      Listar ventas en orden de registro
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	items := dto.FromSales(h.ledger.List())
	return c.JSON(dto.SaleListResponse{Items: items, Total: len(items)})
}
