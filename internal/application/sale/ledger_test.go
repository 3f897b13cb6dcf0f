package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-supermercado/internal/application/sale"
	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/filestore"
)

func TestLedger_LoadSinArchivo(t *testing.T) {
	l := sale.NewLedger(filestore.New(afero.NewMemMapFs(), "/data"), "ventas", nil)

	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, 0, l.Len())
	assert.NotNil(t, l.List())
}

func TestLedger_LoadCorrupto(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := filestore.New(fs, "/data")
	require.NoError(t, afero.WriteFile(fs, store.Path("ventas"), []byte("[{"), 0o644))
	l := sale.NewLedger(store, "ventas", nil)

	err := l.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_ImportYRecarga(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), "/data")
	l := sale.NewLedger(store, "ventas", nil)
	ts := time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

	n, err := l.Import(context.Background(), []entity.Sale{{
		ID:        "legacy-1",
		Timestamp: ts,
		Lines: []entity.SaleLine{{
			Code: "A", Name: "Arroz", Quantity: 2,
			UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20),
		}},
		Total: decimal.NewFromInt(20),
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reloaded := sale.NewLedger(store, "ventas", nil)
	require.NoError(t, reloaded.Load(context.Background()))
	require.Equal(t, 1, reloaded.Len())
	got := reloaded.List()[0]
	assert.Equal(t, "legacy-1", got.ID)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.Equal(t, 2, got.Units())
}

func TestLedger_ImportSobreHistorialNoVacioSeRechaza(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), "/data")
	l := sale.NewLedger(store, "ventas", nil)
	legacy := []entity.Sale{{ID: "legacy-1", Total: decimal.NewFromInt(5)}}
	_, err := l.Import(context.Background(), legacy)
	require.NoError(t, err)

	n, err := l.Import(context.Background(), []entity.Sale{{ID: "legacy-1-bis", Total: decimal.NewFromInt(5)}})

	assert.ErrorIs(t, err, domain.ErrHistoryNotEmpty)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, l.Len(), "no se duplican ventas")
}
