package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNoDisponible = errors.New("cuarto no disponible")
)

// Record is any backend entity with a server-assigned identifier.
// A zero identifier means the record has not been created yet.
type Record interface {
	RecordID() int64
}

// ReadRepository is the local MySQL snapshot the public API serves from.
// The syncer replaces whole collections: upsert everything the backend
// returned, then prune whatever it no longer lists.
type ReadRepository interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	PruneHoteles(ctx context.Context, keep []int64) error
	UpsertCuarto(ctx context.Context, c Cuarto) error
	PruneCuartos(ctx context.Context, keep []int64) error
	UpsertPerfil(ctx context.Context, p Perfil) error
	LogMiss(ctx context.Context, resource string, status int, reason string) error

	ListHoteles(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListCuartosDeHotel(ctx context.Context, idHotel int64) ([]Cuarto, error)
	GetCuarto(ctx context.Context, id int64) (Cuarto, error)
	GetPerfil(ctx context.Context) (Perfil, error)

	// SetCuartoEstado marks a local hold on a room (e.g. a reservation
	// taken through the public API) until the next sync overwrites it.
	SetCuartoEstado(ctx context.Context, id int64, estado string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
