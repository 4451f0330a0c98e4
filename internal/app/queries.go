package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

/********** cache keys **********/

const (
	keyHoteles = "hoteles"
	keyPerfil  = "perfil"
)

func keyHotel(id int64) string          { return fmt.Sprintf("hotel:%d", id) }
func keyCuarto(id int64) string         { return fmt.Sprintf("cuarto:%d", id) }
func keyCuartosDeHotel(id int64) string { return fmt.Sprintf("cuartos:hotel:%d", id) }

// QueryService serves the public reads cache-aside from the MySQL
// snapshot the syncer maintains.
type QueryService struct {
	repo     domain.ReadRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReadRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ttl() int { return int(s.cacheTTL.Seconds()) }

func (s *QueryService) ListHoteles(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, keyHoteles, &out); ok {
		return out, nil
	}
	hs, err := s.repo.ListHoteles(ctx)
	if err != nil {
		return nil, err
	}
	// covers are base64 blobs; skip caching pathological payloads
	if b, _ := json.Marshal(hs); len(b) < 8_000_000 {
		_ = s.cache.Set(ctx, keyHoteles, hs, s.ttl())
	}
	return hs, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := keyHotel(id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, s.ttl())
	return h, nil
}

func (s *QueryService) ListCuartosDeHotel(ctx context.Context, idHotel int64) ([]domain.Cuarto, error) {
	key := keyCuartosDeHotel(idHotel)
	var out []domain.Cuarto
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	cs, err := s.repo.ListCuartosDeHotel(ctx, idHotel)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers cannot mutate the cached slice
	cp := make([]domain.Cuarto, len(cs))
	copy(cp, cs)
	if b, _ := json.Marshal(cp); len(b) < 8_000_000 {
		_ = s.cache.Set(ctx, key, cp, s.ttl())
	}
	return cp, nil
}

func (s *QueryService) GetCuarto(ctx context.Context, id int64) (domain.Cuarto, error) {
	key := keyCuarto(id)
	var c domain.Cuarto
	if ok, _ := s.cache.Get(ctx, key, &c); ok {
		return c, nil
	}
	c, err := s.repo.GetCuarto(ctx, id)
	if err != nil {
		return domain.Cuarto{}, err
	}
	_ = s.cache.Set(ctx, key, c, s.ttl())
	return c, nil
}

func (s *QueryService) GetPerfil(ctx context.Context) (domain.Perfil, error) {
	var p domain.Perfil
	if ok, _ := s.cache.Get(ctx, keyPerfil, &p); ok {
		return p, nil
	}
	p, err := s.repo.GetPerfil(ctx)
	if err != nil {
		return domain.Perfil{}, err
	}
	_ = s.cache.Set(ctx, keyPerfil, p, s.ttl())
	return p, nil
}
