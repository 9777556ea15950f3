package domain

import (
	"strconv"
	"time"
)

const (
	AccionCrear      = "crear"
	AccionActualizar = "actualizar"
	AccionEliminar   = "eliminar"
	AccionToggle     = "toggle_activo"
	AccionRegistrar  = "registrar"
)

const (
	EntidadVecino        = "vecino"
	EntidadEvento        = "evento"
	EntidadRegistro      = "registro"
	EntidadUsuario       = "usuario"
	EntidadSubsecretaria = "subsecretaria"
	EntidadTipo          = "tipo"
	EntidadSubtipo       = "subtipo"
)

// AuditEntry records one mutation performed through the API.
type AuditEntry struct {
	Entidad      string    `json:"entidad" bson:"entidad"`
	EntidadID    int64     `json:"entidad_id" bson:"entidad_id"`
	Accion       string    `json:"accion" bson:"accion"`
	UsuarioID    int64     `json:"usuario_id" bson:"usuario_id"`
	UsuarioEmail string    `json:"usuario_email" bson:"usuario_email"`
	Antes        string    `json:"antes,omitempty" bson:"antes,omitempty"`
	Fecha        time.Time `json:"fecha" bson:"fecha"`
}

// Key identifies the audited row; entries sharing a key keep their order.
func (a AuditEntry) Key() string {
	return a.Entidad + ":" + strconv.FormatInt(a.EntidadID, 10)
}

// AuditFilter narrows audit queries; zero values are ignored.
type AuditFilter struct {
	Entidad   string
	EntidadID int64
	Limit     int64
}
