//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "github.com/MontseAlvarez09/Alojamientos/internal/adapters/http_server"
	redisad "github.com/MontseAlvarez09/Alojamientos/internal/adapters/redis"
	"github.com/MontseAlvarez09/Alojamientos/internal/app"
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
	mysqlrepo "github.com/MontseAlvarez09/Alojamientos/internal/storage/mysql"
)

// ---------- helpers ----------
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

// ---------- the test ----------
func TestHTTP_EndToEnd_HotelConCuartos(t *testing.T) {
	// Start isolated MySQL container
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

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed the read model the way the syncer would
	hotelID := int64(22002)
	if err := repo.UpsertHotel(ctx, domain.Hotel{
		ID:       hotelID,
		Nombre:   "Hotel E2E",
		Correo:   "e2e@aloja.mx",
		Latitud:  pfloat(20.1),
		Longitud: pfloat(-98.7),
	}); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	if err := repo.UpsertCuarto(ctx, domain.Cuarto{
		ID:          9001,
		Nombre:      "201",
		Estado:      domain.EstadoDisponible,
		IDHotel:     hotelID,
		PrecioNoche: pfloat(750),
		Imagenes:    []string{"a", "b"},
	}); err != nil {
		t.Fatalf("UpsertCuarto: %v", err)
	}

	// Real wiring: chi server, redis cache, query services
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	q := app.NewQueryService(repo, cache, time.Minute)
	res := app.NewReservaService(repo, cache)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q, R: res})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Hotel detail
	r1, err := http.Get(fmt.Sprintf("%s/v1/hoteles/%d", ts.URL, hotelID))
	if err != nil {
		t.Fatalf("GET hotel: %v", err)
	}
	defer r1.Body.Close()
	if r1.StatusCode != http.StatusOK {
		t.Fatalf("hotel status %d", r1.StatusCode)
	}
	var hotel struct {
		ID     int64  `json:"id"`
		Nombre string `json:"nombre"`
	}
	if err := json.NewDecoder(r1.Body).Decode(&hotel); err != nil {
		t.Fatalf("decode hotel: %v", err)
	}
	if hotel.ID != hotelID || hotel.Nombre != "Hotel E2E" {
		t.Fatalf("unexpected hotel: %+v", hotel)
	}

	// Rooms under the hotel
	r2, err := http.Get(fmt.Sprintf("%s/v1/hoteles/%d/cuartos", ts.URL, hotelID))
	if err != nil {
		t.Fatalf("GET cuartos: %v", err)
	}
	defer r2.Body.Close()
	var rooms []struct {
		Nombre string `json:"cuarto"`
		Estado string `json:"estado"`
	}
	if err := json.NewDecoder(r2.Body).Decode(&rooms); err != nil {
		t.Fatalf("decode cuartos: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Estado != domain.EstadoDisponible {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}

	// Reserving flips the room and invalidates the cached list
	r3, err := http.Post(fmt.Sprintf("%s/v1/cuartos/%d/reservar", ts.URL, 9001), "application/json", nil)
	if err != nil {
		t.Fatalf("POST reservar: %v", err)
	}
	defer r3.Body.Close()
	if r3.StatusCode != http.StatusOK {
		t.Fatalf("reservar status %d", r3.StatusCode)
	}

	r4, err := http.Get(fmt.Sprintf("%s/v1/hoteles/%d/cuartos", ts.URL, hotelID))
	if err != nil {
		t.Fatal(err)
	}
	defer r4.Body.Close()
	rooms = rooms[:0]
	if err := json.NewDecoder(r4.Body).Decode(&rooms); err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || rooms[0].Estado != domain.EstadoOcupado {
		t.Fatalf("reservation not visible: %+v", rooms)
	}
}
