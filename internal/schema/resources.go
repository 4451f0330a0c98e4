package schema

import (
	"github.com/MontseAlvarez09/Alojamientos/internal/domain"
	"github.com/MontseAlvarez09/Alojamientos/internal/form"
	"github.com/MontseAlvarez09/Alojamientos/internal/media"
)

// Hoteles is the hotel management resource: multipart writes, a single
// cover image with an explicit remove flag.
func Hoteles() Schema {
	return Schema{
		Resource:  "hoteles",
		Title:     "Hoteles",
		Multipart: true,
		Fields: []form.FieldSpec{
			{Name: "nombrehotel", Required: true, Accept: form.AcceptAlnumSpace(50)},
			{Name: "direccion"},
			{Name: "telefono", Accept: form.AcceptDigits(10), Validate: form.ValidateTelefono},
			{Name: "correo", Required: true, Validate: form.ValidateCorreo},
			{Name: "numhabitacion", Accept: form.AcceptDigits(5)},
			{Name: "descripcion"},
			{Name: "servicios"},
			{Name: "latitud", Validate: form.ValidateLatitud},
			{Name: "longitud", Validate: form.ValidateLongitud},
		},
		Images: form.ImageConfig{CoverField: "imagen", RemoveCoverField: "removeImage"},
		Decode: decodeHotel,
	}
}

func decodeHotel(m map[string]any) Item {
	nombre := fieldStr(m, "nombrehotel")
	return Item{
		ID: fieldI64(m, "id_hotel", "id"),
		Fields: map[string]string{
			"nombrehotel":   nombre,
			"direccion":     fieldStr(m, "direccion"),
			"telefono":      fieldStr(m, "telefono"),
			"correo":        fieldStr(m, "correo"),
			"numhabitacion": fieldStr(m, "numhabitacion"),
			"descripcion":   fieldStr(m, "descripcion"),
			"servicios":     fieldStr(m, "servicios"),
			"latitud":       fieldStr(m, "latitud"),
			"longitud":      fieldStr(m, "longitud"),
		},
		Cover: media.DecodeCover(m["imagen"]),
		Label: nombre,
	}
}

// Cuartos is the room resource: cover plus ordered gallery, index-set
// removal, hotel reference frozen after creation.
func Cuartos() Schema {
	return Schema{
		Resource:  "cuartos",
		Title:     "Habitaciones",
		Multipart: true,
		Fields: []form.FieldSpec{
			{Name: "cuarto", Required: true, Accept: form.AcceptAlnumSpace(50)},
			{Name: "estado", Required: true, Default: domain.EstadoDisponible},
			{Name: "horario", Default: "false"},
			{Name: "id_hoteles", Required: true},
			{Name: "idtipohabitacion", Required: true},
			{Name: "preciohora", Validate: form.ValidatePrecio},
			{Name: "preciodia", Validate: form.ValidatePrecio},
			{Name: "precionoche", Validate: form.ValidatePrecio},
			{Name: "preciosemana", Validate: form.ValidatePrecio},
		},
		Images: form.ImageConfig{
			CoverField:   "imagenhabitacion",
			GalleryField: "imagenes",
			RemovalField: "imagesToRemove",
		},
		ImmutableOnEdit: []string{"id_hoteles"},
		References: []Reference{
			{Name: "hoteles", Resource: "hoteles", DefaultFor: "id_hoteles"},
			{Name: "tipohabitacion", Resource: "tipohabitacion", DefaultFor: "idtipohabitacion"},
		},
		Decode: decodeCuarto,
	}
}

func decodeCuarto(m map[string]any) Item {
	nombre := fieldStr(m, "cuarto")
	horario := "false"
	if fieldStr(m, "horario") == domain.Horario24 {
		horario = "true"
	}
	return Item{
		ID: fieldI64(m, "id"),
		Fields: map[string]string{
			"cuarto":           nombre,
			"estado":           fieldStr(m, "estado"),
			"horario":          horario,
			"id_hoteles":       fieldStr(m, "id_hoteles"),
			"idtipohabitacion": fieldStr(m, "idtipohabitacion"),
			"preciohora":       fieldStr(m, "preciohora"),
			"preciodia":        fieldStr(m, "preciodia"),
			"precionoche":      fieldStr(m, "precionoche"),
			"preciosemana":     fieldStr(m, "preciosemana"),
		},
		Gallery: media.DecodeGallery(m["imagenes"]),
		Cover:   media.DecodeCover(m["imagenhabitacion"]),
		Label:   nombre,
	}
}

// Contenido builds the schema for the four company content resources,
// which differ only in endpoint: politica, terminos, vision, mision.
func Contenido(resource, title string) Schema {
	return Schema{
		Resource: resource,
		Title:    title,
		Fields: []form.FieldSpec{
			{Name: "titulo", Required: true, Accept: form.AcceptMaxLen(255)},
			{Name: "contenido", Required: true},
			{Name: "id_empresa", Required: true},
			{Name: "estado", Default: domain.EstadoActivo},
		},
		EditOverrides: map[string]string{"estado": domain.EstadoActivo},
		References: []Reference{
			{Name: "perfil", Resource: "perfil", DefaultFor: "id_empresa"},
		},
		Decode: decodeContenido,
	}
}

func Politica() Schema { return Contenido("politica", "Políticas") }
func Terminos() Schema { return Contenido("terminos", "Términos y Condiciones") }
func Vision() Schema   { return Contenido("vision", "Visión") }
func Mision() Schema   { return Contenido("mision", "Misión") }

func decodeContenido(m map[string]any) Item {
	titulo := fieldStr(m, "titulo")
	// created_at is server-owned and never part of the draft
	return Item{
		ID: fieldI64(m, "id"),
		Fields: map[string]string{
			"titulo":     titulo,
			"contenido":  fieldStr(m, "contenido"),
			"id_empresa": fieldStr(m, "id_empresa"),
			"estado":     fieldStr(m, "estado"),
		},
		Label: titulo,
	}
}

// Perfil is the singleton company profile. The backend historically
// answered with capitalized field names while accepting lowercase ones,
// so decoding tolerates both.
func Perfil() Schema {
	return Schema{
		Resource:  "perfil",
		Title:     "Perfil de la Empresa",
		Multipart: true,
		Fields: []form.FieldSpec{
			{Name: "nombreEmpresa", Accept: form.AcceptAlnumSpace(50)},
			{Name: "eslogan", Required: true, Accept: form.AcceptAlnumSpace(50)},
			{Name: "direccion", Required: true},
			{Name: "correo", Required: true, Validate: form.ValidateCorreo},
			{Name: "telefono", Required: true, Accept: form.AcceptDigits(10), Validate: form.ValidateTelefono},
		},
		Images: form.ImageConfig{CoverField: "logo"},
		Decode: decodePerfil,
	}
}

func decodePerfil(m map[string]any) Item {
	nombre := fieldStr(m, "nombreEmpresa", "NombreEmpresa")
	return Item{
		ID: fieldI64(m, "id"),
		Fields: map[string]string{
			"nombreEmpresa": nombre,
			"eslogan":       fieldStr(m, "eslogan", "Eslogan"),
			"direccion":     fieldStr(m, "direccion", "Direccion"),
			"correo":        fieldStr(m, "correo", "Correo"),
			"telefono":      fieldStr(m, "telefono", "Telefono"),
		},
		Cover: media.DecodeCover(m["logo"]),
		Label: nombre,
	}
}

// All enumerates every admin resource for lookup by name.
func All() []Schema {
	return []Schema{Hoteles(), Cuartos(), Politica(), Terminos(), Vision(), Mision(), Perfil()}
}

// ByName finds a schema by its resource name, or false.
func ByName(name string) (Schema, bool) {
	for _, s := range All() {
		if s.Resource == name {
			return s, true
		}
	}
	return Schema{}, false
}
