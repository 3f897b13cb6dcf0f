package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/entity"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

var _ repository.SaleRepository = (*Ledger)(nil)

// Ledger es el historial de ventas: solo admite agregar; nunca modifica ni borra.
type Ledger struct {
	sales      []entity.Sale
	store      repository.SnapshotStore
	collection string
	log        *logger.Logger
}

// NewLedger construye un historial vacío respaldado por store bajo el nombre collection.
func NewLedger(store repository.SnapshotStore, collection string, log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		sales:      make([]entity.Sale, 0),
		store:      store,
		collection: collection,
		log:        log.Named("ledger"),
	}
}

// Load reemplaza el historial en memoria con el snapshot guardado.
// Si está corrupto queda vacío y se devuelve el *domain.CorruptionWarning.
func (l *Ledger) Load(ctx context.Context) error {
	var loaded []entity.Sale
	if err := l.store.Load(ctx, l.collection, &loaded); err != nil {
		l.sales = make([]entity.Sale, 0)
		if errors.Is(err, domain.ErrCorruptSnapshot) {
			l.log.Warn().Err(err).Str("collection", l.collection).Msg("historial de ventas corrupto, se inicia vacío")
		}
		return err
	}
	if loaded == nil {
		loaded = make([]entity.Sale, 0)
	}
	l.sales = loaded
	return nil
}

// Append agrega una venta al final. No persiste.
func (l *Ledger) Append(s entity.Sale) {
	l.sales = append(l.sales, s.Clone())
}

// List devuelve copias de las ventas en orden cronológico de registro.
func (l *Ledger) List() []entity.Sale {
	out := make([]entity.Sale, len(l.sales))
	for i, s := range l.sales {
		out[i] = s.Clone()
	}
	return out
}

func (l *Ledger) Len() int { return len(l.sales) }

// Flush guarda el snapshot completo del historial.
func (l *Ledger) Flush(ctx context.Context) error {
	if err := l.store.Save(ctx, l.collection, l.sales); err != nil {
		l.log.Error().Err(err).Str("collection", l.collection).Msg("no se pudo persistir el historial de ventas")
		return fmt.Errorf("persistir ventas: %w", err)
	}
	return nil
}

// Import agrega ventas históricas (migración) y persiste una sola vez.
// Solo se permite sobre un historial vacío: repetir la migración duplicaría las ventas.
func (l *Ledger) Import(ctx context.Context, sales []entity.Sale) (int, error) {
	if len(sales) > 0 && len(l.sales) > 0 {
		return 0, fmt.Errorf("importar %d ventas sobre %d existentes: %w", len(sales), len(l.sales), domain.ErrHistoryNotEmpty)
	}
	for _, s := range sales {
		l.sales = append(l.sales, s.Clone())
	}
	if err := l.Flush(ctx); err != nil {
		return 0, err
	}
	l.log.Info().Int("sales", len(sales)).Msg("ventas importadas")
	return len(sales), nil
}
