// Package filestore implementa repository.SnapshotStore con un archivo JSON por colección.
// Cada Save reescribe el archivo completo; no hay escritura incremental ni log de transacciones.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/pos-supermercado/internal/domain"
	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
)

var _ repository.SnapshotStore = (*Store)(nil)

const fileExt = ".json"

// Store guarda snapshots como <dir>/<nombre>.json sobre un afero.Fs.
type Store struct {
	fs  afero.Fs
	dir string
}

// New construye el store sobre fs (afero.NewMemMapFs en pruebas).
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// NewOS construye el store sobre el sistema de archivos real.
func NewOS(dir string) *Store {
	return New(afero.NewOsFs(), dir)
}

// Path devuelve la ruta del archivo de una colección.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Load lee y decodifica la colección. Archivo inexistente => nil sin tocar dst.
// Contenido vacío o JSON inválido => *domain.CorruptionWarning.
func (s *Store) Load(_ context.Context, name string, dst any) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := s.Path(name)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("filestore: verificar %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("filestore: leer %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &domain.CorruptionWarning{Collection: name, Err: fmt.Errorf("archivo vacío")}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &domain.CorruptionWarning{Collection: name, Err: err}
	}
	return nil
}

// Save serializa la colección completa (JSON indentado, UTF-8 sin escapes HTML) y reemplaza el archivo.
func (s *Store) Save(_ context.Context, name string, collection any) error {
	if err := checkName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(collection); err != nil {
		return fmt.Errorf("filestore: codificar %s: %w", name, err)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("filestore: crear directorio %s: %w", s.dir, err)
	}
	path := s.Path(name)
	if err := afero.WriteFile(s.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("filestore: escribir %s: %w", path, err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("filestore: nombre de colección inválido %q: %w", name, os.ErrInvalid)
	}
	return nil
}
