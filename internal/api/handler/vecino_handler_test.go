package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type stubVecinoService struct {
	ports.VecinoService
	listFn   func(ctx context.Context, activo *bool) ([]domain.Vecino, error)
	searchFn func(ctx context.Context, q string) ([]domain.Vecino, error)
	createFn func(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error)
	toggleFn func(ctx context.Context, actor domain.Identity, id int64) (*domain.Vecino, error)
	deleteFn func(ctx context.Context, actor domain.Identity, id int64) error
}

func (s *stubVecinoService) List(ctx context.Context, activo *bool) ([]domain.Vecino, error) {
	return s.listFn(ctx, activo)
}

func (s *stubVecinoService) Search(ctx context.Context, q string) ([]domain.Vecino, error) {
	return s.searchFn(ctx, q)
}

func (s *stubVecinoService) Create(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubVecinoService) ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Vecino, error) {
	return s.toggleFn(ctx, actor, id)
}

func (s *stubVecinoService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func TestVecinoHandler_Create(t *testing.T) {
	stub := &stubVecinoService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error) {
			if actor.UserID != 1 {
				t.Fatalf("actor not propagated: %+v", actor)
			}
			if in.Nombre != "Ana" || in.Documento != "30111222" || in.FechaNacimiento != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Vecino{ID: 9, Nombre: in.Nombre, Apellido: in.Apellido, Documento: in.Documento, Activo: true}, nil
		},
	}

	body := `{"nombre":" Ana ","apellido":"Gómez","documento":"30111222","fecha_nacimiento":""}`
	c, rec := newContext(http.MethodPost, "/api/vecinos", body, admin)
	if err := NewVecinoHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var v domain.Vecino
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if v.ID != 9 || !v.Activo {
		t.Fatalf("unexpected vecino: %+v", v)
	}
}

func TestVecinoHandler_Create_Validation(t *testing.T) {
	stub := &stubVecinoService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/vecinos", `{"nombre":"Ana"}`, admin)
	if code := httpCode(t, NewVecinoHandler(stub).Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestVecinoHandler_Create_DuplicateDocumento(t *testing.T) {
	stub := &stubVecinoService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error) {
			return nil, domain.ErrDuplicateDocumento
		},
	}
	c, _ := newContext(http.MethodPost, "/api/vecinos", `{"nombre":"Ana","apellido":"Gómez","documento":"30111222"}`, admin)
	if err := NewVecinoHandler(stub).Create(c); !errors.Is(err, domain.ErrDuplicateDocumento) {
		t.Fatalf("expected duplicate documento, got %v", err)
	}
}

func TestVecinoHandler_List_ActivoFilter(t *testing.T) {
	var got *bool
	stub := &stubVecinoService{
		listFn: func(ctx context.Context, activo *bool) ([]domain.Vecino, error) {
			got = activo
			return []domain.Vecino{}, nil
		},
	}
	h := NewVecinoHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/vecinos?activo=1", "", admin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if got == nil || !*got {
		t.Fatalf("expected activo=true filter, got %v", got)
	}

	c, _ = newContext(http.MethodGet, "/api/vecinos?activo=quizas", "", admin)
	if code := httpCode(t, h.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestVecinoHandler_Search_EmptyResultIsArray(t *testing.T) {
	stub := &stubVecinoService{
		searchFn: func(ctx context.Context, q string) ([]domain.Vecino, error) {
			if q != "zzz" {
				t.Fatalf("unexpected q: %q", q)
			}
			return []domain.Vecino{}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/vecinos/buscar?q=zzz", "", admin)
	if err := NewVecinoHandler(stub).Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected [], got %q", body)
	}
}

func TestVecinoHandler_ToggleActivo(t *testing.T) {
	stub := &stubVecinoService{
		toggleFn: func(ctx context.Context, actor domain.Identity, id int64) (*domain.Vecino, error) {
			if id != 4 {
				t.Fatalf("unexpected id %d", id)
			}
			return &domain.Vecino{ID: 4, Activo: false}, nil
		},
	}
	c, rec := newContext(http.MethodPatch, "/api/vecinos/4/toggle-activo", "", admin)
	withID(c, "4")
	if err := NewVecinoHandler(stub).ToggleActivo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestVecinoHandler_Delete_BadID(t *testing.T) {
	stub := &stubVecinoService{
		deleteFn: func(ctx context.Context, actor domain.Identity, id int64) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	c, _ := newContext(http.MethodDelete, "/api/vecinos/abc", "", admin)
	withID(c, "abc")
	if code := httpCode(t, NewVecinoHandler(stub).Delete(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
