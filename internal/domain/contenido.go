package domain

// Contenido is the shared shape of the company content collections:
// politica, terminos, vision and mision. They differ only in endpoint.
type Contenido struct {
	ID        int64
	Titulo    string // capped at 255 by the editor
	Contenido string
	IDEmpresa int64
	Estado    string // "activo" | "inactivo"; edits force "activo"
	CreatedAt string // server-assigned, read-only
}

func (c Contenido) RecordID() int64 { return c.ID }

const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)
