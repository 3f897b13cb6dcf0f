package repository

import "context"

// SnapshotStore es el puerto de persistencia por snapshot completo (Storage Gateway).
// Cada colección se guarda entera bajo un nombre y se reemplaza completa en cada Save.
type SnapshotStore interface {
	// Load decodifica la colección name en dst.
	// Si no existe, devuelve nil y deja dst sin tocar.
	// Si el contenido no se puede decodificar, devuelve *domain.CorruptionWarning;
	// el llamador debe continuar con la colección vacía.
	Load(ctx context.Context, name string, dst any) error
	// Save escribe la colección completa, sustituyendo el contenido anterior.
	Save(ctx context.Context, name string, collection any) error
}
