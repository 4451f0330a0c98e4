package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/observability"
	redisad "github.com/MontseAlvarez09/Alojamientos/internal/adapters/redis"
	"github.com/MontseAlvarez09/Alojamientos/internal/app"
	"github.com/MontseAlvarez09/Alojamientos/internal/session"
	"github.com/MontseAlvarez09/Alojamientos/internal/shared"
	mysqlrepo "github.com/MontseAlvarez09/Alojamientos/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.BackendBase).
		Int("workers", cfg.Workers).
		Msg("syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := backend.New(cfg.BackendBase, session.New(), cfg.BackendRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewSyncService(client, repo, cache, log.Logger)

	// hoteles must land before cuartos so room rows reference hotels
	// that exist; perfil is independent
	if err := svc.SyncHoteles(ctx); err != nil {
		log.Fatal().Err(err).Msg("sync hoteles failed")
	}

	jobs := []struct {
		name string
		run  func(context.Context) error
	}{
		{"cuartos", svc.SyncCuartos},
		{"perfil", svc.SyncPerfil},
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	for _, j := range jobs {
		j := j

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := j.run(ctx); err != nil {
				log.Warn().Str("collection", j.name).Err(err).Msg("sync failed")
				return
			}
			log.Info().Str("collection", j.name).Msg("sync ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("sync completed")
}
