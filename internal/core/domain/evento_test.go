package domain

import (
	"testing"
	"time"
)

func TestEvento_Expired(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	hora := func(s string) *string { return &s }

	tests := []struct {
		name string
		ev   Evento
		want bool
	}{
		{"past day", Evento{Fecha: "2025-06-14"}, true},
		{"same day without hora", Evento{Fecha: "2025-06-15"}, false},
		{"same day earlier hora", Evento{Fecha: "2025-06-15", Hora: hora("11:59")}, true},
		{"same day later hora", Evento{Fecha: "2025-06-15", Hora: hora("12:30")}, false},
		{"future day", Evento{Fecha: "2025-06-16", Hora: hora("00:00")}, false},
		{"empty hora", Evento{Fecha: "2025-06-15", Hora: hora("")}, false},
		{"bad fecha", Evento{Fecha: "15/06/2025"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Expired(now); got != tt.want {
				t.Fatalf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvento_Expired_EndOfDay(t *testing.T) {
	e := Evento{Fecha: "2025-06-15"}
	last := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	next := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	if e.Expired(last) {
		t.Fatalf("evento must still be open at the last second of its day")
	}
	if !e.Expired(next) {
		t.Fatalf("evento must be expired once its day is over")
	}
}
