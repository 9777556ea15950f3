package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type stubEventoService struct {
	ports.EventoService
	listFn   func(ctx context.Context, f domain.EventoFilter) ([]domain.Evento, error)
	createFn func(ctx context.Context, actor domain.Identity, in ports.EventoInput) (*domain.Evento, error)
	updateFn func(ctx context.Context, actor domain.Identity, id int64, in ports.EventoInput) (*domain.Evento, error)
}

func (s *stubEventoService) List(ctx context.Context, f domain.EventoFilter) ([]domain.Evento, error) {
	return s.listFn(ctx, f)
}

func (s *stubEventoService) Create(ctx context.Context, actor domain.Identity, in ports.EventoInput) (*domain.Evento, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubEventoService) Update(ctx context.Context, actor domain.Identity, id int64, in ports.EventoInput) (*domain.Evento, error) {
	return s.updateFn(ctx, actor, id, in)
}

func TestEventoHandler_List_Filters(t *testing.T) {
	stub := &stubEventoService{
		listFn: func(ctx context.Context, f domain.EventoFilter) ([]domain.Evento, error) {
			if f.SubsecretariaID == nil || *f.SubsecretariaID != 2 {
				t.Fatalf("subsecretaria filter not parsed: %+v", f)
			}
			if f.TipoID != nil || f.SubtipoID != nil {
				t.Fatalf("unexpected filters: %+v", f)
			}
			if f.Activo == nil || *f.Activo {
				t.Fatalf("activo filter not parsed: %+v", f)
			}
			return []domain.Evento{}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/eventos?subsecretaria_id=2&activo=false", "", admin)
	if err := NewEventoHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestEventoHandler_Create(t *testing.T) {
	sub := &caller{id: 7, rol: domain.RoleSubsecretaria}
	stub := &stubEventoService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.EventoInput) (*domain.Evento, error) {
			if actor.Rol != domain.RoleSubsecretaria || actor.UserID != 7 {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.Fecha != "2025-09-20" || in.Hora == nil || *in.Hora != "18:00" || in.Cupo == nil || *in.Cupo != 40 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Evento{ID: 3, Nombre: in.Nombre, Fecha: in.Fecha}, nil
		},
	}
	body := `{"nombre":"Taller de huerta","fecha":"2025-09-20","hora":"18:00","cupo":40}`
	c, rec := newContext(http.MethodPost, "/api/eventos", body, sub)
	if err := NewEventoHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)
}

func TestEventoHandler_Create_Validation(t *testing.T) {
	stub := &stubEventoService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.EventoInput) (*domain.Evento, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	for _, body := range []string{
		`{"fecha":"2025-09-20"}`,
		`{"nombre":"Feria"}`,
		`{"nombre":"Feria","fecha":"20/09/2025"}`,
		`{"nombre":"Feria","fecha":"2025-09-20","hora":"6pm"}`,
	} {
		c, _ := newContext(http.MethodPost, "/api/eventos", body, admin)
		if code := httpCode(t, NewEventoHandler(stub).Create(c)); code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, code)
		}
	}
}

func TestEventoHandler_Update_OutOfScope(t *testing.T) {
	stub := &stubEventoService{
		updateFn: func(ctx context.Context, actor domain.Identity, id int64, in ports.EventoInput) (*domain.Evento, error) {
			return nil, domain.ErrForbidden
		},
	}
	c, _ := newContext(http.MethodPut, "/api/eventos/3", `{"nombre":"Feria","fecha":"2025-09-20"}`, &caller{id: 7, rol: domain.RoleSubsecretaria})
	withID(c, "3")
	if err := NewEventoHandler(stub).Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
