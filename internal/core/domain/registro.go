package domain

import "time"

// Registro links one vecino to one evento. At most one per pair is allowed,
// checked before insert rather than by a table constraint.
type Registro struct {
	ID            int64     `json:"id" db:"id"`
	VecinoID      int64     `json:"vecino_id" db:"vecino_id"`
	EventoID      int64     `json:"evento_id" db:"evento_id"`
	FechaRegistro time.Time `json:"fecha_registro" db:"fecha_registro"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
}

// RegistroDetalle is a Registro joined with the vecino and evento it links.
type RegistroDetalle struct {
	Registro
	VecinoNombre    string `json:"vecino_nombre" db:"vecino_nombre"`
	VecinoApellido  string `json:"vecino_apellido" db:"vecino_apellido"`
	VecinoDocumento string `json:"vecino_documento" db:"vecino_documento"`
	EventoNombre    string `json:"evento_nombre" db:"evento_nombre"`
	EventoFecha     string `json:"evento_fecha" db:"evento_fecha"`
}

// RegistroFilter narrows List; zero values are ignored.
type RegistroFilter struct {
	VecinoID int64
	EventoID int64
}
