package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

// Lister is the slice of the backend client the syncer needs.
type Lister interface {
	List(ctx context.Context, resource string) ([]map[string]any, error)
}

// SyncService replaces the local read model with whatever the backend
// currently lists: upsert every record, prune the rest, then drop the
// cache entries the collection feeds.
type SyncService struct {
	backend Lister
	repo    domain.ReadRepository
	cache   domain.Cache
	log     zerolog.Logger
}

func NewSyncService(b Lister, r domain.ReadRepository, cache domain.Cache, log zerolog.Logger) *SyncService {
	return &SyncService{backend: b, repo: r, cache: cache, log: log}
}

// fetch wraps the backend call with the miss bookkeeping: a 404 or an
// auth refusal is recorded and ends the collection's sync gracefully,
// anything else bubbles up.
func (s *SyncService) fetch(ctx context.Context, resource string) ([]map[string]any, bool, error) {
	rows, err := s.backend.List(ctx, resource)
	if err == nil {
		return rows, true, nil
	}

	status := 0
	switch {
	case errors.Is(err, backend.ErrNotFound):
		status = 404
	case errors.Is(err, backend.ErrUnauthorized):
		status = 401
	case errors.Is(err, backend.ErrForbidden):
		status = 403
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
	}
	if status == 0 {
		return nil, false, err
	}
	_ = s.repo.LogMiss(ctx, resource, status, err.Error())
	s.log.Warn().Str("resource", resource).Int("status", status).Msg("collection unavailable, keeping last snapshot")
	return nil, false, nil
}

func (s *SyncService) SyncHoteles(ctx context.Context) error {
	rows, ok, err := s.fetch(ctx, "hoteles")
	if err != nil || !ok {
		return err
	}

	keep := make([]int64, 0, len(rows))
	for _, m := range rows {
		h := mapHotel(m)
		if h.ID == 0 {
			s.log.Warn().Msg("hotel row without id, skipped")
			continue
		}
		if err := s.repo.UpsertHotel(ctx, h); err != nil {
			return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
		}
		keep = append(keep, h.ID)
	}
	if err := s.repo.PruneHoteles(ctx, keep); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, keyHoteles)
		for _, id := range keep {
			_ = s.cache.Del(ctx, keyHotel(id))
		}
	}
	s.log.Info().Int("count", len(keep)).Msg("hoteles synced")
	return nil
}

func (s *SyncService) SyncCuartos(ctx context.Context) error {
	rows, ok, err := s.fetch(ctx, "cuartos")
	if err != nil || !ok {
		return err
	}

	keep := make([]int64, 0, len(rows))
	hotels := map[int64]struct{}{}
	for _, m := range rows {
		c := mapCuarto(m)
		if c.ID == 0 {
			s.log.Warn().Msg("cuarto row without id, skipped")
			continue
		}
		if err := s.repo.UpsertCuarto(ctx, c); err != nil {
			return fmt.Errorf("upsert cuarto %d: %w", c.ID, err)
		}
		keep = append(keep, c.ID)
		hotels[c.IDHotel] = struct{}{}
	}
	if err := s.repo.PruneCuartos(ctx, keep); err != nil {
		return err
	}

	if s.cache != nil {
		for _, id := range keep {
			_ = s.cache.Del(ctx, keyCuarto(id))
		}
		for id := range hotels {
			_ = s.cache.Del(ctx, keyCuartosDeHotel(id))
		}
	}
	s.log.Info().Int("count", len(keep)).Msg("cuartos synced")
	return nil
}

func (s *SyncService) SyncPerfil(ctx context.Context) error {
	rows, ok, err := s.fetch(ctx, "perfil")
	if err != nil || !ok {
		return err
	}
	if len(rows) == 0 {
		s.log.Warn().Msg("perfil collection empty, keeping last snapshot")
		return nil
	}

	// the profile is a singleton; the first row wins
	p := mapPerfil(rows[0])
	if err := s.repo.UpsertPerfil(ctx, p); err != nil {
		return fmt.Errorf("upsert perfil: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, keyPerfil)
	}
	s.log.Info().Msg("perfil synced")
	return nil
}

// ReservaService takes a local hold on a room. The hold lives in the
// read model only; the next sync reconciles it against the backend.
type ReservaService struct {
	repo  domain.ReadRepository
	cache domain.Cache
}

func NewReservaService(r domain.ReadRepository, cache domain.Cache) *ReservaService {
	return &ReservaService{repo: r, cache: cache}
}

func (s *ReservaService) Reservar(ctx context.Context, id int64) (domain.Cuarto, error) {
	c, err := s.repo.GetCuarto(ctx, id)
	if err != nil {
		return domain.Cuarto{}, err
	}
	if c.Estado != domain.EstadoDisponible {
		return c, domain.ErrNoDisponible
	}
	if err := s.repo.SetCuartoEstado(ctx, id, domain.EstadoOcupado); err != nil {
		return domain.Cuarto{}, err
	}
	c.Estado = domain.EstadoOcupado

	if s.cache != nil {
		_ = s.cache.Del(ctx, keyCuarto(id))
		_ = s.cache.Del(ctx, keyCuartosDeHotel(c.IDHotel))
	}
	return c, nil
}
