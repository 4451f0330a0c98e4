package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/app"
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

type fakeLister struct {
	rows map[string][]map[string]any
	errs map[string]error
}

func (f *fakeLister) List(ctx context.Context, resource string) ([]map[string]any, error) {
	if err := f.errs[resource]; err != nil {
		return nil, err
	}
	return f.rows[resource], nil
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func TestSyncHoteles_UpsertPruneInvalidate(t *testing.T) {
	lister := &fakeLister{rows: map[string][]map[string]any{
		"hoteles": {
			{"id_hotel": 7.0, "nombrehotel": "Centro", "latitud": "20,12"},
			{"id_hotel": 9.0, "nombrehotel": "Playa"},
		},
	}}
	repo := newFakeRepo()
	repo.hoteles[3] = domain.Hotel{ID: 3, Nombre: "Cerrado"} // no longer listed
	cache := &fakeCache{}
	s := app.NewSyncService(lister, repo, cache, zerolog.Nop())

	if err := s.SyncHoteles(context.Background()); err != nil {
		t.Fatalf("SyncHoteles: %v", err)
	}

	if h := repo.hoteles[7]; h.Nombre != "Centro" {
		t.Fatalf("hotel 7 = %+v", h)
	}
	// legacy comma decimals survive the mapping
	if h := repo.hoteles[7]; h.Latitud == nil || *h.Latitud != 20.12 {
		t.Fatalf("latitud = %v", repo.hoteles[7].Latitud)
	}
	if len(repo.pruneHoteles) != 2 {
		t.Fatalf("prune keep set = %v", repo.pruneHoteles)
	}
	if !contains(cache.dels, "hoteles") || !contains(cache.dels, "hotel:7") {
		t.Fatalf("cache invalidations = %v", cache.dels)
	}
}

func TestSyncCuartos_InvalidatesHotelLists(t *testing.T) {
	lister := &fakeLister{rows: map[string][]map[string]any{
		"cuartos": {
			{"id": 5.0, "cuarto": "201", "estado": "Disponible", "id_hoteles": 7.0, "imagenes": `["a","b"]`},
		},
	}}
	repo := newFakeRepo()
	cache := &fakeCache{}
	s := app.NewSyncService(lister, repo, cache, zerolog.Nop())

	if err := s.SyncCuartos(context.Background()); err != nil {
		t.Fatalf("SyncCuartos: %v", err)
	}
	if c := repo.cuartos[5]; len(c.Imagenes) != 2 {
		t.Fatalf("gallery lost: %+v", c)
	}
	if !contains(cache.dels, "cuarto:5") || !contains(cache.dels, "cuartos:hotel:7") {
		t.Fatalf("cache invalidations = %v", cache.dels)
	}
}

// A refused collection logs a miss and keeps the last snapshot instead
// of wiping it.
func TestSync_MissKeepsSnapshot(t *testing.T) {
	lister := &fakeLister{errs: map[string]error{"hoteles": backend.ErrForbidden}}
	repo := newFakeRepo()
	repo.hoteles[7] = domain.Hotel{ID: 7, Nombre: "Centro"}
	s := app.NewSyncService(lister, repo, &fakeCache{}, zerolog.Nop())

	if err := s.SyncHoteles(context.Background()); err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if len(repo.hoteles) != 1 || repo.pruneHoteles != nil {
		t.Fatalf("snapshot touched: %+v prune=%v", repo.hoteles, repo.pruneHoteles)
	}
	if !contains(repo.misses, "hoteles") {
		t.Fatalf("miss not logged: %v", repo.misses)
	}

	// transport failures do bubble up
	lister.errs["hoteles"] = errors.New("connection reset")
	if err := s.SyncHoteles(context.Background()); err == nil {
		t.Fatal("expected transport error to surface")
	}
}

func TestReservar(t *testing.T) {
	repo := newFakeRepo()
	repo.cuartos[5] = domain.Cuarto{ID: 5, Nombre: "201", IDHotel: 7, Estado: domain.EstadoDisponible}
	cache := &fakeCache{}
	r := app.NewReservaService(repo, cache)

	c, err := r.Reservar(context.Background(), 5)
	if err != nil {
		t.Fatalf("Reservar: %v", err)
	}
	if c.Estado != domain.EstadoOcupado || repo.cuartos[5].Estado != domain.EstadoOcupado {
		t.Fatalf("estado = %q / %q", c.Estado, repo.cuartos[5].Estado)
	}
	if !contains(cache.dels, "cuarto:5") || !contains(cache.dels, "cuartos:hotel:7") {
		t.Fatalf("cache invalidations = %v", cache.dels)
	}

	// second attempt is refused
	if _, err := r.Reservar(context.Background(), 5); !errors.Is(err, domain.ErrNoDisponible) {
		t.Fatalf("err = %v, want ErrNoDisponible", err)
	}
	if _, err := r.Reservar(context.Background(), 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
