package domain

// Perfil is the singleton-per-company profile record.
type Perfil struct {
	ID            int64
	NombreEmpresa string
	Eslogan       string
	Direccion     string
	Correo        string
	Telefono      string // exactly 10 digits
	Logo          *Imagen
}

func (p Perfil) RecordID() int64 { return p.ID }
