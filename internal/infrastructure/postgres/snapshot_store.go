package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

const createSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS snapshots (
		name       TEXT PRIMARY KEY,
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SnapshotStore implementa repository.SnapshotStore guardando cada colección como un
// documento JSONB completo en la tabla snapshots (una fila por colección).
type SnapshotStore struct {
	q Querier
}

// NewSnapshotStore construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotStore(q Querier) *SnapshotStore {
	return &SnapshotStore{q: q}
}

// EnsureSchema crea la tabla snapshots si no existe.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("crear tabla snapshots: %w", err)
	}
	return nil
}

// Load lee el documento de la colección. Sin fila => nil sin tocar dst.
// Si el documento no encaja con dst => *domain.CorruptionWarning.
func (s *SnapshotStore) Load(ctx context.Context, name string, dst any) error {
	var doc []byte
	err := s.q.QueryRow(ctx, `SELECT document::text FROM snapshots WHERE name = $1`, name).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil
		}
		return fmt.Errorf("leer snapshot %s: %w", name, err)
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return &domain.CorruptionWarning{Collection: name, Err: err}
	}
	return nil
}

// Save reemplaza el documento completo de la colección.
func (s *SnapshotStore) Save(ctx context.Context, name string, collection any) error {
	doc, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("codificar snapshot %s: %w", name, err)
	}
	query := `
		INSERT INTO snapshots (name, document, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := s.q.Exec(ctx, query, name, string(doc)); err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("guardar snapshot %s: tabla snapshots inexistente (EnsureSchema): %w", name, err)
		}
		return fmt.Errorf("guardar snapshot %s: %w", name, err)
	}
	return nil
}

// SalesSummary cuenta las ventas y suma sus totales directamente sobre el documento
// guardado; sirve para verificar una migración sin cargar la colección en memoria.
func (s *SnapshotStore) SalesSummary(ctx context.Context, name string) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM((sale->>'total')::numeric), 0)
		FROM snapshots,
		     jsonb_array_elements(CASE WHEN jsonb_typeof(document) = 'array' THEN document ELSE '[]'::jsonb END) AS sale
		WHERE name = $1`
	var (
		count int
		total decimal.Decimal
	)
	if err := s.q.QueryRow(ctx, query, name).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("resumen de ventas %s: %w", name, err)
	}
	return count, total, nil
}
