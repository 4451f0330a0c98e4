package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/MontseAlvarez09/Alojamientos/internal/app"
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	R *app.ReservaService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hoteles", h.listHoteles)
	s.mux.Get("/v1/hoteles/{id}", h.getHotel)
	s.mux.Get("/v1/hoteles/{id}/cuartos", h.listCuartos)
	s.mux.Get("/v1/cuartos/{id}", h.getCuarto)
	s.mux.Get("/v1/perfil", h.getPerfil)
	s.mux.Post("/v1/cuartos/{id}/reservar", h.reservar)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func failure(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
		return
	}
	log.Error().Err(err).Str("what", what).Msg("query failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// calcETagAndBody marshals once and hashes once, returning both ETag
// and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers 304 when the client already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

/********** views **********/

// imagenView inlines a stored cover as a data URI so browsers can
// render it without a second request.
func imagenView(img *domain.Imagen) *string {
	if img == nil || img.Data == "" {
		return nil
	}
	s := "data:" + img.MimeType + ";base64," + img.Data
	return &s
}

type hotelView struct {
	ID            int64    `json:"id"`
	Nombre        string   `json:"nombre"`
	Direccion     string   `json:"direccion,omitempty"`
	Telefono      string   `json:"telefono,omitempty"`
	Correo        string   `json:"correo,omitempty"`
	NumHabitacion string   `json:"numhabitacion,omitempty"`
	Descripcion   string   `json:"descripcion,omitempty"`
	Servicios     string   `json:"servicios,omitempty"`
	Latitud       *float64 `json:"latitud,omitempty"`
	Longitud      *float64 `json:"longitud,omitempty"`
	Imagen        *string  `json:"imagen,omitempty"`
}

func toHotelView(h domain.Hotel) hotelView {
	return hotelView{
		ID: h.ID, Nombre: h.Nombre, Direccion: h.Direccion,
		Telefono: h.Telefono, Correo: h.Correo, NumHabitacion: h.NumHabitacion,
		Descripcion: h.Descripcion, Servicios: h.Servicios,
		Latitud: h.Latitud, Longitud: h.Longitud,
		Imagen: imagenView(h.Imagen),
	}
}

type cuartoView struct {
	ID           int64    `json:"id"`
	Nombre       string   `json:"cuarto"`
	Estado       string   `json:"estado"`
	Horario      string   `json:"horario,omitempty"`
	IDHotel      int64    `json:"id_hotel"`
	PrecioHora   *float64 `json:"preciohora,omitempty"`
	PrecioDia    *float64 `json:"preciodia,omitempty"`
	PrecioNoche  *float64 `json:"precionoche,omitempty"`
	PrecioSemana *float64 `json:"preciosemana,omitempty"`
	Portada      *string  `json:"portada,omitempty"`
	Imagenes     []string `json:"imagenes,omitempty"`
}

func toCuartoView(c domain.Cuarto) cuartoView {
	return cuartoView{
		ID: c.ID, Nombre: c.Nombre, Estado: c.Estado, Horario: c.Horario,
		IDHotel: c.IDHotel,
		PrecioHora: c.PrecioHora, PrecioDia: c.PrecioDia,
		PrecioNoche: c.PrecioNoche, PrecioSemana: c.PrecioSemana,
		Portada:  imagenView(c.Cover),
		Imagenes: c.Imagenes,
	}
}

type perfilView struct {
	NombreEmpresa string  `json:"nombreEmpresa"`
	Eslogan       string  `json:"eslogan,omitempty"`
	Direccion     string  `json:"direccion,omitempty"`
	Correo        string  `json:"correo,omitempty"`
	Telefono      string  `json:"telefono,omitempty"`
	Logo          *string `json:"logo,omitempty"`
}

/********** handlers **********/

func (h *Handlers) listHoteles(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Q.ListHoteles(r.Context())
	if err != nil {
		failure(w, err, "hoteles")
		return
	}
	out := make([]hotelView, 0, len(hs))
	for _, hv := range hs {
		out = append(out, toHotelView(hv))
	}
	writeCached(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	hv, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		failure(w, err, "hotel")
		return
	}
	writeCached(w, r, toHotelView(hv))
}

func (h *Handlers) listCuartos(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	cs, err := h.Q.ListCuartosDeHotel(r.Context(), id)
	if err != nil {
		failure(w, err, "cuartos")
		return
	}
	out := make([]cuartoView, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCuartoView(c))
	}
	writeCached(w, r, out)
}

func (h *Handlers) getCuarto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	c, err := h.Q.GetCuarto(r.Context(), id)
	if err != nil {
		failure(w, err, "cuarto")
		return
	}
	writeCached(w, r, toCuartoView(c))
}

func (h *Handlers) getPerfil(w http.ResponseWriter, r *http.Request) {
	p, err := h.Q.GetPerfil(r.Context())
	if err != nil {
		failure(w, err, "perfil")
		return
	}
	writeCached(w, r, perfilView{
		NombreEmpresa: p.NombreEmpresa, Eslogan: p.Eslogan,
		Direccion: p.Direccion, Correo: p.Correo, Telefono: p.Telefono,
		Logo: imagenView(p.Logo),
	})
}

func (h *Handlers) reservar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	c, err := h.R.Reservar(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNoDisponible) {
			writeProblem(w, http.StatusConflict, "No Disponible", "el cuarto no está disponible")
			return
		}
		failure(w, err, "cuarto")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toCuartoView(c))
}
