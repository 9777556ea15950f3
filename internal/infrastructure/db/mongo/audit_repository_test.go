package mongo

import (
	"testing"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

func TestAuditQuery(t *testing.T) {
	if q := auditQuery(domain.AuditFilter{}); len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}

	q := auditQuery(domain.AuditFilter{Entidad: domain.EntidadVecino, EntidadID: 4, Limit: 10})
	if q["entidad"] != domain.EntidadVecino {
		t.Fatalf("unexpected entidad: %v", q["entidad"])
	}
	if q["entidad_id"] != int64(4) {
		t.Fatalf("unexpected entidad_id: %v", q["entidad_id"])
	}
	if _, ok := q["limit"]; ok {
		t.Fatalf("limit must not be part of the query")
	}
}
