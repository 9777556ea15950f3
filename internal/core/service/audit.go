package service

import (
	"encoding/json"
	"time"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// NopAudit discards every entry. Used when no audit store is configured.
type NopAudit struct{}

func (NopAudit) Record(domain.AuditEntry) {}

// auditor stamps entries with the acting user before handing them to the recorder.
type auditor struct {
	rec ports.AuditRecorder
	now func() time.Time
}

func newAuditor(rec ports.AuditRecorder) auditor {
	if rec == nil {
		rec = NopAudit{}
	}
	return auditor{rec: rec, now: time.Now}
}

// record emits one entry. before, when non-nil, is stored as JSON.
func (a auditor) record(actor domain.Identity, entidad string, id int64, accion string, before any) {
	entry := domain.AuditEntry{
		Entidad:      entidad,
		EntidadID:    id,
		Accion:       accion,
		UsuarioID:    actor.UserID,
		UsuarioEmail: actor.Email,
		Fecha:        a.now().UTC(),
	}
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			entry.Antes = string(b)
		}
	}
	a.rec.Record(entry)
}
