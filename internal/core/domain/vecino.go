package domain

import "time"

// Vecino is a resident tracked by the municipality.
type Vecino struct {
	ID              int64     `json:"id" db:"id"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	Documento       string    `json:"documento" db:"documento"`
	Email           string    `json:"email" db:"email"`
	Telefono        string    `json:"telefono" db:"telefono"`
	Direccion       string    `json:"direccion" db:"direccion"`
	Barrio          string    `json:"barrio" db:"barrio"`
	FechaNacimiento *string   `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Activo          bool      `json:"activo" db:"activo"`
	DatosAnteriores Snapshot  `json:"datos_anteriores,omitempty" db:"datos_anteriores"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// EventoRegistrado is an event a vecino is registered in.
type EventoRegistrado struct {
	Evento
	RegistroID    int64     `json:"registro_id" db:"registro_id"`
	FechaRegistro time.Time `json:"fecha_registro" db:"fecha_registro"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
}
