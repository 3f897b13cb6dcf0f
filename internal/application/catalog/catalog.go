package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

var _ repository.ProductRepository = (*Catalog)(nil)

// Catalog es la colección autoritativa de productos. Mantiene el orden de alta y
// persiste el snapshot completo después de cada mutación exitosa.
// No es seguro para uso concurrente: se asume un único hilo de control.
type Catalog struct {
	products   []entity.Product
	store      repository.SnapshotStore
	collection string
	log        *logger.Logger
}

// UpsertInput son los cuatro campos tal como llegan del formulario.
// El precio acepta "." o "," como separador decimal.
type UpsertInput struct {
	Code  string
	Name  string
	Price string
	Stock string
}

// New construye un catálogo vacío respaldado por store bajo el nombre collection.
func New(store repository.SnapshotStore, collection string, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.Nop()
	}
	return &Catalog{
		products:   make([]entity.Product, 0),
		store:      store,
		collection: collection,
		log:        log.Named("catalog"),
	}
}

// Load reemplaza el contenido en memoria con el snapshot guardado.
// Si el snapshot está corrupto el catálogo queda vacío y se devuelve el *domain.CorruptionWarning.
func (c *Catalog) Load(ctx context.Context) error {
	var loaded []entity.Product
	err := c.store.Load(ctx, c.collection, &loaded)
	if err != nil {
		c.products = make([]entity.Product, 0)
		if errors.Is(err, domain.ErrCorruptSnapshot) {
			c.log.Warn().Err(err).Str("collection", c.collection).Msg("catálogo corrupto, se inicia vacío")
		}
		return err
	}
	c.products = make([]entity.Product, 0, len(loaded))
	for _, p := range loaded {
		p.Code = entity.NormalizeCode(p.Code)
		c.products = append(c.products, p)
	}
	c.log.Debug().Int("products", len(c.products)).Msg("catálogo cargado")
	return nil
}

// Find busca un producto por código sin distinguir mayúsculas.
func (c *Catalog) Find(code string) (entity.Product, bool) {
	i := c.indexOf(code)
	if i < 0 {
		return entity.Product{}, false
	}
	return c.products[i], true
}

// List devuelve una copia de los productos en el orden del catálogo.
func (c *Catalog) List() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len número de productos.
func (c *Catalog) Len() int { return len(c.products) }

// Upsert valida y normaliza la entrada, y crea o reemplaza el producto.
func (c *Catalog) Upsert(ctx context.Context, in UpsertInput) (entity.Product, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	priceText := strings.TrimSpace(in.Price)
	stockText := strings.TrimSpace(in.Stock)

	for _, f := range []struct{ field, value string }{
		{domain.FieldCode, code},
		{domain.FieldName, name},
		{domain.FieldPrice, priceText},
		{domain.FieldStock, stockText},
	} {
		if f.value == "" {
			return c.reject(domain.NewValidationError(f.field, "es obligatorio"))
		}
	}

	price, err := ParsePrice(priceText)
	if err != nil {
		return c.reject(err)
	}
	stock, err := strconv.Atoi(stockText)
	if err != nil {
		return c.reject(domain.NewValidationError(domain.FieldStock, "debe ser un número entero"))
	}

	return c.Put(ctx, entity.Product{Code: code, Name: name, Price: price, Stock: stock})
}

// Put es el upsert con valores ya tipados: normaliza código y nombre, valida rangos,
// reemplaza en su posición si el código existe o agrega al final, y persiste el catálogo.
// Si la persistencia falla el cambio en memoria se mantiene y se devuelve el error.
func (c *Catalog) Put(ctx context.Context, p entity.Product) (entity.Product, error) {
	p.Code = entity.NormalizeCode(p.Code)
	p.Name = entity.NormalizeName(p.Name)
	if err := validate(p); err != nil {
		return c.reject(err)
	}

	action := "creado"
	if i := c.indexOf(p.Code); i >= 0 {
		c.products[i] = p
		action = "actualizado"
	} else {
		c.products = append(c.products, p)
	}

	if err := c.Flush(ctx); err != nil {
		return p, err
	}
	c.log.Info().Str("code", p.Code).Str("action", action).
		Str("price", p.Price.StringFixed(2)).Int("stock", p.Stock).
		Msg("producto guardado")
	return p, nil
}

// Import agrega o reemplaza varios productos y persiste una sola vez.
// Se detiene en el primer producto inválido sin persistir nada.
func (c *Catalog) Import(ctx context.Context, products []entity.Product) (int, error) {
	staged := c.List()
	for _, p := range products {
		p.Code = entity.NormalizeCode(p.Code)
		p.Name = entity.NormalizeName(p.Name)
		if err := validate(p); err != nil {
			return 0, fmt.Errorf("producto %q: %w", p.Code, err)
		}
		replaced := false
		for i := range staged {
			if staged[i].Code == p.Code {
				staged[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			staged = append(staged, p)
		}
	}
	c.products = staged
	if err := c.Flush(ctx); err != nil {
		return 0, err
	}
	c.log.Info().Int("products", len(products)).Msg("productos importados")
	return len(products), nil
}

// Delete elimina el producto con ese código. Solo persiste si hubo eliminación.
func (c *Catalog) Delete(ctx context.Context, code string) (bool, error) {
	i := c.indexOf(code)
	if i < 0 {
		c.log.Warn().Str("code", entity.NormalizeCode(code)).Msg("eliminar: producto no encontrado")
		return false, nil
	}
	removed := c.products[i]
	c.products = append(c.products[:i], c.products[i+1:]...)
	if err := c.Flush(ctx); err != nil {
		return true, err
	}
	c.log.Info().Str("code", removed.Code).Msg("producto eliminado")
	return true, nil
}

// LowStock devuelve, en el orden del catálogo, los productos con stock <= threshold.
func (c *Catalog) LowStock(threshold int) ([]entity.Product, error) {
	if threshold < 0 {
		return nil, domain.NewValidationError(domain.FieldThreshold, "no puede ser negativo")
	}
	out := make([]entity.Product, 0)
	for _, p := range c.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByCode implementa repository.ProductRepository.
func (c *Catalog) GetByCode(code string) (entity.Product, bool) {
	return c.Find(code)
}

// UpdateStock implementa repository.ProductRepository. No persiste: el motor de ventas
// decide cuándo llamar a Flush.
func (c *Catalog) UpdateStock(code string, stock int) bool {
	i := c.indexOf(code)
	if i < 0 {
		return false
	}
	c.products[i].Stock = stock
	return true
}

// Flush guarda el snapshot completo del catálogo.
func (c *Catalog) Flush(ctx context.Context) error {
	if err := c.store.Save(ctx, c.collection, c.products); err != nil {
		c.log.Error().Err(err).Str("collection", c.collection).Msg("no se pudo persistir el catálogo")
		return fmt.Errorf("persistir catálogo: %w", err)
	}
	return nil
}

func (c *Catalog) indexOf(code string) int {
	key := entity.NormalizeCode(code)
	for i := range c.products {
		if c.products[i].Code == key {
			return i
		}
	}
	return -1
}

func (c *Catalog) reject(err error) (entity.Product, error) {
	c.log.Warn().Err(err).Msg("producto rechazado")
	return entity.Product{}, err
}

func validate(p entity.Product) error {
	if p.Code == "" {
		return domain.NewValidationError(domain.FieldCode, "es obligatorio")
	}
	if p.Name == "" {
		return domain.NewValidationError(domain.FieldName, "es obligatorio")
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return domain.NewValidationError(domain.FieldPrice, "debe ser mayor que cero")
	}
	if p.Stock < 0 {
		return domain.NewValidationError(domain.FieldStock, "no puede ser negativo")
	}
	return nil
}
