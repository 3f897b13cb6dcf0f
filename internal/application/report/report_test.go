package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-supermercado/internal/application/report"
	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
)

type fakeProducts struct {
	threshold int
	items     []entity.Product
	err       error
}

func (f *fakeProducts) LowStock(threshold int) ([]entity.Product, error) {
	f.threshold = threshold
	return f.items, f.err
}

type fakeSales []entity.Sale

func (f fakeSales) List() []entity.Sale { return f }

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func now() time.Time { return fixedNow }

func TestLowStock_DelegaEnElCatalogo(t *testing.T) {
	products := &fakeProducts{items: []entity.Product{{Code: "A", Stock: 1}}}
	v := report.NewViews(products, fakeSales{}, now)

	r, err := v.LowStock(5)

	require.NoError(t, err)
	assert.Equal(t, 5, products.threshold)
	assert.Equal(t, 5, r.Threshold)
	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.Len(t, r.Items, 1)
}

func TestLowStock_PropagaValidacion(t *testing.T) {
	verr := domain.NewValidationError(domain.FieldThreshold, "no puede ser negativo")
	v := report.NewViews(&fakeProducts{err: verr}, fakeSales{}, now)

	_, err := v.LowStock(-3)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSalesHistory_NumeraYSumaTotalGeneral(t *testing.T) {
	sales := fakeSales{
		{ID: "1", Total: decimal.RequireFromString("23"), Lines: []entity.SaleLine{{Quantity: 2}, {Quantity: 1}}},
		{ID: "2", Total: decimal.RequireFromString("4.50"), Lines: []entity.SaleLine{{Quantity: 3}}},
	}
	v := report.NewViews(&fakeProducts{}, sales, now)

	h := v.SalesHistory()

	require.Len(t, h.Entries, 2)
	assert.Equal(t, 1, h.Entries[0].Number)
	assert.Equal(t, "1", h.Entries[0].Sale.ID)
	assert.Equal(t, 2, h.Entries[1].Number)
	assert.True(t, h.GrandTotal.Equal(decimal.RequireFromString("27.5")))
	assert.Equal(t, 6, h.UnitsSold)
}

func TestSalesHistory_SinVentas(t *testing.T) {
	v := report.NewViews(&fakeProducts{}, fakeSales{}, now)

	h := v.SalesHistory()

	assert.Empty(t, h.Entries)
	assert.True(t, h.GrandTotal.IsZero())
}
