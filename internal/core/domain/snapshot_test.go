package domain

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_ScanAndValue(t *testing.T) {
	var s Snapshot
	if err := s.Scan(nil); err != nil || s != nil {
		t.Fatalf("scan nil: %v, %v", s, err)
	}
	if v, _ := s.Value(); v != nil {
		t.Fatalf("empty snapshot must be stored as NULL, got %v", v)
	}

	if err := s.Scan([]byte(`{"nombre":"Ana"}`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	v, _ := s.Value()
	if string(v.([]byte)) != `{"nombre":"Ana"}` {
		t.Fatalf("unexpected value: %s", v)
	}

	if err := s.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestSnapshot_JSON(t *testing.T) {
	v := Vecino{Nombre: "Ana"}
	snap, err := NewSnapshot(map[string]string{"nombre": "Anterior"})
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}
	v.DatosAnteriores = snap

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]json.RawMessage
	_ = json.Unmarshal(b, &out)
	if string(out["datos_anteriores"]) != `{"nombre":"Anterior"}` {
		t.Fatalf("datos_anteriores must be embedded as an object, got %s", out["datos_anteriores"])
	}

	b, _ = json.Marshal(Vecino{Nombre: "Sin cambios"})
	out = nil
	_ = json.Unmarshal(b, &out)
	if _, ok := out["datos_anteriores"]; ok {
		t.Fatalf("empty datos_anteriores must be omitted")
	}
}
