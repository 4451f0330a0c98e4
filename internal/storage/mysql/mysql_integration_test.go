//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
	mysqlrepo "github.com/MontseAlvarez09/Alojamientos/internal/storage/mysql"
)

// ---------- small helpers ----------
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=alojamientos",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "alojamientos")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertPruneAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	h := domain.Hotel{
		ID:            7,
		Nombre:        "Hotel Centro",
		Direccion:     "Av. Juárez 10",
		Telefono:      "7712345678",
		Correo:        "centro@aloja.mx",
		NumHabitacion: "24",
		Servicios:     "wifi,parking",
		Latitud:       pfloat(20.12),
		Longitud:      pfloat(-98.73),
		Imagen:        &domain.Imagen{MimeType: "image/jpeg", Data: "Zm9v"},
	}
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}

	c := domain.Cuarto{
		ID:               5,
		Nombre:           "201",
		Estado:           domain.EstadoDisponible,
		Horario:          domain.Horario24,
		IDHotel:          7,
		IDTipoHabitacion: 2,
		PrecioNoche:      pfloat(750),
		Imagenes:         []string{"a", "b", "c"},
	}
	if err := repo.UpsertCuarto(ctx, c); err != nil {
		t.Fatalf("UpsertCuarto: %v", err)
	}

	if err := repo.UpsertPerfil(ctx, domain.Perfil{
		ID: 1, NombreEmpresa: "Alojamientos SA", Eslogan: "Tu descanso",
		Correo: "contacto@aloja.mx", Telefono: "7700112233",
	}); err != nil {
		t.Fatalf("UpsertPerfil: %v", err)
	}

	got, err := repo.GetHotel(ctx, 7)
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Nombre != "Hotel Centro" || got.Imagen == nil || got.Imagen.MimeType != "image/jpeg" {
		t.Fatalf("unexpected hotel: %+v", got)
	}
	if got.Latitud == nil || *got.Latitud != 20.12 {
		t.Fatalf("latitud lost: %+v", got.Latitud)
	}

	rooms, err := repo.ListCuartosDeHotel(ctx, 7)
	if err != nil {
		t.Fatalf("ListCuartosDeHotel: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Horario != domain.Horario24 || len(rooms[0].Imagenes) != 3 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}

	// re-upsert overwrites in place
	h.Nombre = "Hotel Centro Histórico"
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if got, _ = repo.GetHotel(ctx, 7); got.Nombre != "Hotel Centro Histórico" {
		t.Fatalf("overwrite lost: %+v", got)
	}

	// local reservation hold flips estado until the next sync
	if err := repo.SetCuartoEstado(ctx, 5, domain.EstadoOcupado); err != nil {
		t.Fatalf("SetCuartoEstado: %v", err)
	}
	if room, _ := repo.GetCuarto(ctx, 5); room.Estado != domain.EstadoOcupado {
		t.Fatalf("estado = %q", room.Estado)
	}
	if err := repo.SetCuartoEstado(ctx, 404, domain.EstadoOcupado); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing room: %v", err)
	}

	// prune with an empty keep set wipes the collection
	if err := repo.PruneCuartos(ctx, nil); err != nil {
		t.Fatalf("PruneCuartos: %v", err)
	}
	if _, err := repo.GetCuarto(ctx, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("pruned room still present: %v", err)
	}
	if err := repo.PruneHoteles(ctx, []int64{7}); err != nil {
		t.Fatalf("PruneHoteles: %v", err)
	}
	if _, err := repo.GetHotel(ctx, 7); err != nil {
		t.Fatalf("kept hotel pruned: %v", err)
	}

	if err := repo.LogMiss(ctx, "cuartos", 500, "backend 500"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}
	if err := repo.LogMiss(ctx, "cuartos", 502, "backend 502"); err != nil {
		t.Fatalf("LogMiss twice: %v", err)
	}
}
