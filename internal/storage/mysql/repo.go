package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// imagenJSON stores the cover as the backend's {mimeType,data} object,
// NULL when the record has none.
func imagenJSON(img *domain.Imagen) any {
	if img == nil {
		return nil
	}
	b, _ := json.Marshal(img)
	return string(b)
}

func scanImagen(raw []byte) *domain.Imagen {
	if len(raw) == 0 {
		return nil
	}
	var img domain.Imagen
	if err := json.Unmarshal(raw, &img); err != nil || img.Data == "" {
		return nil
	}
	return &img
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Nombre,
		h.Direccion,
		h.Telefono,
		h.Correo,
		h.NumHabitacion,
		h.Descripcion,
		h.Servicios,
		valF64(h.Latitud),
		valF64(h.Longitud),
		imagenJSON(h.Imagen),
	)
	return err
}

func (r *Repo) UpsertCuarto(ctx context.Context, c domain.Cuarto) error {
	imgs, _ := json.Marshal(c.Imagenes)
	_, err := r.db.ExecContext(ctx, upsertCuartoSQL,
		c.ID,
		c.Nombre,
		c.Estado,
		c.Horario,
		c.IDHotel,
		c.IDTipoHabitacion,
		valF64(c.PrecioHora),
		valF64(c.PrecioDia),
		valF64(c.PrecioNoche),
		valF64(c.PrecioSemana),
		imagenJSON(c.Cover),
		string(imgs),
	)
	return err
}

func (r *Repo) UpsertPerfil(ctx context.Context, p domain.Perfil) error {
	_, err := r.db.ExecContext(ctx, upsertPerfilSQL,
		p.ID,
		p.NombreEmpresa,
		p.Eslogan,
		p.Direccion,
		p.Correo,
		p.Telefono,
		imagenJSON(p.Logo),
	)
	return err
}

// prune deletes every row the backend no longer lists. An empty keep
// set empties the table, which is what a wiped collection means.
func (r *Repo) prune(ctx context.Context, table string, keep []int64) error {
	if len(keep) == 0 {
		_, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
		return err
	}
	ph := make([]string, len(keep))
	args := make([]any, len(keep))
	for i, id := range keep {
		ph[i] = "?"
		args[i] = id
	}
	q := "DELETE FROM " + table + " WHERE id NOT IN (" + strings.Join(ph, ",") + ")"
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *Repo) PruneHoteles(ctx context.Context, keep []int64) error {
	return r.prune(ctx, "hoteles", keep)
}

func (r *Repo) PruneCuartos(ctx context.Context, keep []int64) error {
	return r.prune(ctx, "cuartos", keep)
}

func (r *Repo) LogMiss(ctx context.Context, resource string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, resource, status, reason)
	return err
}

func (r *Repo) SetCuartoEstado(ctx context.Context, id int64, estado string) error {
	res, err := r.db.ExecContext(ctx, setCuartoEstadoSQL, estado, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// estado may already hold the value; distinguish via existence
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM cuartos WHERE id = ?", id).Scan(&one); err == sql.ErrNoRows {
			return domain.ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHoteles(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetCuarto(ctx context.Context, id int64) (domain.Cuarto, error) {
	c, err := scanCuarto(r.db.QueryRowContext(ctx, getCuartoSQL, id))
	if err == sql.ErrNoRows {
		return domain.Cuarto{}, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) ListCuartosDeHotel(ctx context.Context, idHotel int64) ([]domain.Cuarto, error) {
	rows, err := r.db.QueryContext(ctx, listCuartosDeHotelSQL, idHotel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Cuarto
	for rows.Next() {
		c, err := scanCuarto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetPerfil(ctx context.Context) (domain.Perfil, error) {
	row := r.db.QueryRowContext(ctx, getPerfilSQL)

	var p domain.Perfil
	var nombre, eslogan, direccion, correo, telefono sql.NullString
	var logo []byte
	if err := row.Scan(&p.ID, &nombre, &eslogan, &direccion, &correo, &telefono, &logo); err != nil {
		if err == sql.ErrNoRows {
			return domain.Perfil{}, domain.ErrNotFound
		}
		return domain.Perfil{}, err
	}
	p.NombreEmpresa = nombre.String
	p.Eslogan = eslogan.String
	p.Direccion = direccion.String
	p.Correo = correo.String
	p.Telefono = telefono.String
	p.Logo = scanImagen(logo)
	return p, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanHotel(row scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var direccion, telefono, correo, numhab, descripcion, servicios sql.NullString
	var lat, lon sql.NullFloat64
	var imagen []byte

	if err := row.Scan(
		&h.ID, &h.Nombre, &direccion, &telefono, &correo, &numhab,
		&descripcion, &servicios, &lat, &lon, &imagen,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Direccion = direccion.String
	h.Telefono = telefono.String
	h.Correo = correo.String
	h.NumHabitacion = numhab.String
	h.Descripcion = descripcion.String
	h.Servicios = servicios.String
	if lat.Valid {
		v := lat.Float64
		h.Latitud = &v
	}
	if lon.Valid {
		v := lon.Float64
		h.Longitud = &v
	}
	h.Imagen = scanImagen(imagen)
	return h, nil
}

func scanCuarto(row scanner) (domain.Cuarto, error) {
	var c domain.Cuarto
	var horario sql.NullString
	var tipo sql.NullInt64
	var ph, pd, pn, ps sql.NullFloat64
	var portada, imagenes []byte

	if err := row.Scan(
		&c.ID, &c.Nombre, &c.Estado, &horario, &c.IDHotel, &tipo,
		&ph, &pd, &pn, &ps, &portada, &imagenes,
	); err != nil {
		return domain.Cuarto{}, err
	}
	c.Horario = horario.String
	c.IDTipoHabitacion = tipo.Int64
	if ph.Valid {
		v := ph.Float64
		c.PrecioHora = &v
	}
	if pd.Valid {
		v := pd.Float64
		c.PrecioDia = &v
	}
	if pn.Valid {
		v := pn.Float64
		c.PrecioNoche = &v
	}
	if ps.Valid {
		v := ps.Float64
		c.PrecioSemana = &v
	}
	c.Cover = scanImagen(portada)
	if len(imagenes) > 0 {
		_ = json.Unmarshal(imagenes, &c.Imagenes)
	}
	return c, nil
}
