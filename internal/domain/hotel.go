package domain

// Imagen is a stored image as the backend transmits it: base64 payload
// plus its MIME type.
type Imagen struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type Hotel struct {
	ID            int64
	Nombre        string
	Direccion     string
	Telefono      string // exactly 10 digits when present
	Correo        string
	NumHabitacion string
	Descripcion   string
	Servicios     string // comma-delimited capability tags
	Latitud       *float64
	Longitud      *float64
	Imagen        *Imagen
}

func (h Hotel) RecordID() int64 { return h.ID }
