package domain

// Room states as the backend spells them.
const (
	EstadoDisponible   = "Disponible"
	EstadoNoDisponible = "No Disponible"
	EstadoOcupado      = "Ocupado"
)

// Horario24 is the always-open marker the backend stores when the
// schedule checkbox is set; otherwise horario holds a reservation
// timestamp or is empty.
const Horario24 = "24 horas"

type Cuarto struct {
	ID               int64
	Nombre           string // the "cuarto" display name, e.g. "201"
	Estado           string
	Horario          string
	IDHotel          int64 // immutable after creation in the editor
	IDTipoHabitacion int64
	PrecioHora       *float64
	PrecioDia        *float64
	PrecioNoche      *float64
	PrecioSemana     *float64
	Cover            *Imagen  // imagenhabitacion
	Imagenes         []string // gallery, base64 entries in server order
}

func (c Cuarto) RecordID() int64 { return c.ID }

type TipoHabitacion struct {
	ID     int64
	Nombre string
}

func (t TipoHabitacion) RecordID() int64 { return t.ID }
