package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/dto"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler construye el handler.
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items := dto.FromProducts(h.catalog.List())
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// GetByCode godoc
// @Summary      Obtener producto por código (sin distinguir mayúsculas)
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	p, ok := h.catalog.Find(c.Params("code"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.FromProduct(p))
}

// Upsert godoc
// @Summary      Crear o reemplazar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        code  path  string                    true  "Código del producto"
// @Param        body  body  dto.UpsertProductRequest  true  "Nombre, precio y stock"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [put]
func (h *ProductHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.catalog.Upsert(c.UserContext(), catalog.UpsertInput{
		Code:  c.Params("code"),
		Name:  string(in.Name),
		Price: string(in.Price),
		Stock: string(in.Stock),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProduct(p))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	code := c.Params("code")
	removed, err := h.catalog.Delete(c.UserContext(), code)
	if err != nil {
		return writeError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.DeleteProductResponse{Code: entity.NormalizeCode(code), Removed: true})
}
