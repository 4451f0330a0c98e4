package app

import (
	"strconv"
	"strings"

	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
	"github.com/MontseAlvarez09/Alojamientos/internal/media"
)

/********** tiny helpers **********/

// lookStr returns the first present alias as a string, formatting
// numbers the way the backend sometimes sends them.
func lookStr(m map[string]any, aliases ...string) string {
	for _, k := range aliases {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func lookI64(m map[string]any, aliases ...string) int64 {
	for _, k := range aliases {
		switch v := m[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// lookF64 tolerates numbers serialized as strings, including the
// comma decimal separator legacy rows carry.
func lookF64(m map[string]any, aliases ...string) *float64 {
	for _, k := range aliases {
		switch v := m[k].(type) {
		case float64:
			f := v
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

/********** collection mappers **********/

func mapHotel(m map[string]any) domain.Hotel {
	return domain.Hotel{
		ID:            lookI64(m, "id_hotel", "id"),
		Nombre:        lookStr(m, "nombrehotel"),
		Direccion:     lookStr(m, "direccion"),
		Telefono:      lookStr(m, "telefono"),
		Correo:        lookStr(m, "correo"),
		NumHabitacion: lookStr(m, "numhabitacion"),
		Descripcion:   lookStr(m, "descripcion"),
		Servicios:     lookStr(m, "servicios"),
		Latitud:       lookF64(m, "latitud"),
		Longitud:      lookF64(m, "longitud"),
		Imagen:        media.DecodeCover(m["imagen"]),
	}
}

func mapCuarto(m map[string]any) domain.Cuarto {
	return domain.Cuarto{
		ID:               lookI64(m, "id"),
		Nombre:           lookStr(m, "cuarto"),
		Estado:           lookStr(m, "estado"),
		Horario:          lookStr(m, "horario"),
		IDHotel:          lookI64(m, "id_hoteles"),
		IDTipoHabitacion: lookI64(m, "idtipohabitacion"),
		PrecioHora:       lookF64(m, "preciohora"),
		PrecioDia:        lookF64(m, "preciodia"),
		PrecioNoche:      lookF64(m, "precionoche"),
		PrecioSemana:     lookF64(m, "preciosemana"),
		Cover:            media.DecodeCover(m["imagenhabitacion"]),
		Imagenes:         media.DecodeGallery(m["imagenes"]),
	}
}

// mapPerfil tolerates the capitalized field names the backend answers
// with even though it accepts lowercase ones.
func mapPerfil(m map[string]any) domain.Perfil {
	return domain.Perfil{
		ID:            lookI64(m, "id"),
		NombreEmpresa: lookStr(m, "nombreEmpresa", "NombreEmpresa"),
		Eslogan:       lookStr(m, "eslogan", "Eslogan"),
		Direccion:     lookStr(m, "direccion", "Direccion"),
		Correo:        lookStr(m, "correo", "Correo"),
		Telefono:      lookStr(m, "telefono", "Telefono"),
		Logo:          media.DecodeCover(m["logo"]),
	}
}
