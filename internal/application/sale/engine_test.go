package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-supermercado/internal/application/catalog"
	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/filestore"
	"github.com/jhoicas/pos-supermercado/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var saleTime = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store   *filestore.Store
	catalog *catalog.Catalog
	ledger  *sale.Ledger
	engine  *sale.Engine
	clock   *clock.MockClock
}

// newFixture arma un catálogo con A (precio 10, stock 5) y B (precio 3, stock 5).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := filestore.New(afero.NewMemMapFs(), "/data")
	cat := catalog.New(store, "productos", nil)
	ctx := context.Background()
	_, err := cat.Upsert(ctx, catalog.UpsertInput{Code: "A", Name: "arroz", Price: "10", Stock: "5"})
	require.NoError(t, err)
	_, err = cat.Upsert(ctx, catalog.UpsertInput{Code: "B", Name: "feijao", Price: "3", Stock: "5"})
	require.NoError(t, err)

	ledger := sale.NewLedger(store, "ventas", nil)
	clk := clock.NewMockClock(saleTime)
	return &fixture{
		store:   store,
		catalog: cat,
		ledger:  ledger,
		engine:  sale.NewEngine(cat, ledger, clk, nil),
		clock:   clk,
	}
}

func (f *fixture) stock(t *testing.T, code string) int {
	t.Helper()
	p, ok := f.catalog.Find(code)
	require.True(t, ok, "producto %s debe existir", code)
	return p.Stock
}

// persistedStock lee el stock desde el snapshot guardado, no desde memoria.
func (f *fixture) persistedStock(t *testing.T, code string) int {
	t.Helper()
	reloaded := catalog.New(f.store, "productos", nil)
	require.NoError(t, reloaded.Load(context.Background()))
	p, ok := reloaded.Find(code)
	require.True(t, ok)
	return p.Stock
}

func lines(pairs ...any) []sale.CartLine {
	out := make([]sale.CartLine, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, sale.CartLine{Code: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_TotalYDescuentoDeStock(t *testing.T) {
	f := newFixture(t)

	s, err := f.engine.Commit(context.Background(), lines("A", 2, "B", 1))

	require.NoError(t, err)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(23)), "total esperado 23, obtenido %s", s.Total)
	assert.Equal(t, 3, f.stock(t, "A"))
	assert.Equal(t, 4, f.stock(t, "B"))
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "A", s.Lines[0].Code)
	assert.Equal(t, "Arroz", s.Lines[0].Name)
	assert.Equal(t, 2, s.Lines[0].Quantity)
	assert.True(t, s.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Lines[0].Subtotal.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "B", s.Lines[1].Code)
	assert.True(t, s.Lines[1].Subtotal.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, saleTime, s.Timestamp)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, f.ledger.Len())
}

func TestCommit_PersisteCatalogoYVentas(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Commit(context.Background(), lines("A", 2, "B", 1))
	require.NoError(t, err)

	assert.Equal(t, 3, f.persistedStock(t, "A"))
	reloaded := sale.NewLedger(f.store, "ventas", nil)
	require.NoError(t, reloaded.Load(context.Background()))
	require.Equal(t, 1, reloaded.Len())
	assert.True(t, reloaded.List()[0].Total.Equal(decimal.NewFromInt(23)))
}

// El aborto por stock en una línea posterior conserva los descuentos ya aplicados
// en memoria y no registra venta.
func TestCommit_AbortoSinRevertirLineasAnteriores(t *testing.T) {
	f := newFixture(t)

	s, err := f.engine.Commit(context.Background(), lines("A", 2, "B", 100))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var stockErr *domain.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "B", stockErr.Code)
	assert.Equal(t, "Feijao", stockErr.Name)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 100, stockErr.Requested)

	assert.Empty(t, s.ID)
	assert.Equal(t, 3, f.stock(t, "A"), "el descuento de A ya aplicado no se revierte")
	assert.Equal(t, 5, f.stock(t, "B"))
	assert.Equal(t, 0, f.ledger.Len(), "no se registra venta")
	assert.Equal(t, 5, f.persistedStock(t, "A"), "el aborto no persiste el catálogo")
}

func TestCommit_PrimeraLineaSinStockNoTocaNada(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Commit(context.Background(), lines("A", 6, "B", 1))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Equal(t, 5, f.stock(t, "B"))
}

func TestCommit_StockExactoLlegaACero(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Commit(context.Background(), lines("A", 5))

	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "A"))
}

func TestCommit_ProductoEliminadoSeOmite(t *testing.T) {
	f := newFixture(t)
	removed, err := f.catalog.Delete(context.Background(), "B")
	require.NoError(t, err)
	require.True(t, removed)

	s, err := f.engine.Commit(context.Background(), lines("A", 1, "B", 1))

	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "A", s.Lines[0].Code)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(10)))
}

func TestCommit_TodasLasLineasOmitidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Commit(context.Background(), lines("X", 1, "Y", 2))

	assert.ErrorIs(t, err, domain.ErrEmptySale)
	assert.Equal(t, 0, f.ledger.Len())
}

func TestCommit_CarritoVacio(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Commit(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCommit_CantidadNoPositivaRechazaSinTocarStock(t *testing.T) {
	cases := []struct {
		name  string
		lines []sale.CartLine
	}{
		{"negativa tras una línea válida", lines("A", 2, "B", -3)},
		{"solo negativa", lines("B", -1)},
		{"cero", lines("A", 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			s, err := f.engine.Commit(context.Background(), tc.lines)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, domain.FieldQuantity, verr.Field)
			assert.Empty(t, s.ID)
			assert.Equal(t, 5, f.stock(t, "A"), "el stock no se toca")
			assert.Equal(t, 5, f.stock(t, "B"), "el stock no se toca")
			assert.Equal(t, 0, f.ledger.Len())
		})
	}
}

func TestCommit_CodigoSinDistinguirMayusculas(t *testing.T) {
	f := newFixture(t)

	s, err := f.engine.Commit(context.Background(), lines("a", 1))

	require.NoError(t, err)
	assert.Equal(t, "A", s.Lines[0].Code)
	assert.Equal(t, 4, f.stock(t, "A"))
}

func TestCommit_UsaPrecioVigenteNoElDeLaFoto(t *testing.T) {
	f := newFixture(t)
	cart := sale.NewCart()
	_, err := cart.Add(f.catalog, "A", 1)
	require.NoError(t, err)
	_, err = f.catalog.Upsert(context.Background(), catalog.UpsertInput{Code: "A", Name: "arroz", Price: "12", Stock: "5"})
	require.NoError(t, err)

	s, err := f.engine.Commit(context.Background(), cart.Lines())

	require.NoError(t, err)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(12)))
}

func TestCommit_StockNuncaNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, _ = f.engine.Commit(ctx, lines("A", 2, "B", 3))
		for _, p := range f.catalog.List() {
			assert.GreaterOrEqual(t, p.Stock, 0, "stock de %s", p.Code)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_NoCambiaAlEditarElProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.engine.Commit(ctx, lines("A", 2))
	require.NoError(t, err)

	_, err = f.catalog.Upsert(ctx, catalog.UpsertInput{Code: "A", Name: "arroz premium", Price: "99", Stock: "50"})
	require.NoError(t, err)

	recorded := f.ledger.List()[0]
	assert.Equal(t, "Arroz", recorded.Lines[0].Name)
	assert.True(t, recorded.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, recorded.Lines[0].Subtotal.Equal(decimal.NewFromInt(20)))
}

func TestVenta_CopiaDevueltaNoAlteraElHistorial(t *testing.T) {
	f := newFixture(t)
	s, err := f.engine.Commit(context.Background(), lines("A", 1))
	require.NoError(t, err)

	s.Lines[0].Name = "alterado"
	listed := f.ledger.List()
	listed[0].Lines[0].Quantity = 999

	again := f.ledger.List()[0]
	assert.Equal(t, "Arroz", again.Lines[0].Name)
	assert.Equal(t, 1, again.Lines[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VaciaElCarritoSoloSiHayVenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := sale.NewCart()
	_, err := cart.Add(f.catalog, "A", 2)
	require.NoError(t, err)

	// Otro flujo deja a A sin stock suficiente antes de confirmar.
	_, err = f.catalog.Upsert(ctx, catalog.UpsertInput{Code: "A", Name: "arroz", Price: "10", Stock: "1"})
	require.NoError(t, err)

	_, err = f.engine.Checkout(ctx, cart)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, cart.Len(), "el carrito se conserva si la venta falla")

	_, err = f.catalog.Upsert(ctx, catalog.UpsertInput{Code: "A", Name: "arroz", Price: "10", Stock: "5"})
	require.NoError(t, err)
	s, err := f.engine.Checkout(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
	assert.NotEmpty(t, s.ID)
}

func TestCheckout_FallaDePersistenciaConservaLaVentaYVaciaElCarrito(t *testing.T) {
	store := &failingStore{Store: filestore.New(afero.NewMemMapFs(), "/data")}
	cat := catalog.New(store, "productos", nil)
	ctx := context.Background()
	_, err := cat.Upsert(ctx, catalog.UpsertInput{Code: "A", Name: "arroz", Price: "10", Stock: "5"})
	require.NoError(t, err)
	ledger := sale.NewLedger(store, "ventas", nil)
	engine := sale.NewEngine(cat, ledger, clock.NewMockClock(saleTime), nil)
	cart := sale.NewCart()
	_, err = cart.Add(cat, "A", 2)
	require.NoError(t, err)

	store.fail = errors.New("disco lleno")
	s, err := engine.Checkout(ctx, cart)

	require.Error(t, err)
	assert.ErrorContains(t, err, "disco lleno")
	assert.NotEmpty(t, s.ID, "la venta se devuelve aunque no se haya persistido")
	assert.True(t, s.Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, ledger.Len(), "la venta queda registrada en memoria")
	p, _ := cat.Find("A")
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, 0, cart.Len(), "el carrito se vacía para no vender dos veces")
}

type failingStore struct {
	*filestore.Store
	fail error
}

func (s *failingStore) Save(ctx context.Context, name string, v any) error {
	if s.fail != nil {
		return s.fail
	}
	return s.Store.Save(ctx, name, v)
}
