package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// EventoRepository defines persistence for events.
type EventoRepository interface {
	List(ctx context.Context, filter domain.EventoFilter) ([]domain.Evento, error)
	FindByID(ctx context.Context, id int64) (*domain.Evento, error)
	Create(ctx context.Context, e *domain.Evento) (int64, error)
	Update(ctx context.Context, e *domain.Evento) error
	Delete(ctx context.Context, id int64) error
	ToggleActivo(ctx context.Context, id int64) error
	ListVecinos(ctx context.Context, eventoID int64) ([]domain.VecinoRegistrado, error)
}

// EventoInput carries the editable fields of an event.
type EventoInput struct {
	Nombre          string
	Descripcion     string
	Fecha           string
	Hora            *string
	Lugar           string
	Cupo            *int
	SubsecretariaID *int64
	TipoID          *int64
	SubtipoID       *int64
}

type EventoService interface {
	List(ctx context.Context, filter domain.EventoFilter) ([]domain.Evento, error)
	Get(ctx context.Context, id int64) (*domain.Evento, error)
	Create(ctx context.Context, actor domain.Identity, in EventoInput) (*domain.Evento, error)
	Update(ctx context.Context, actor domain.Identity, id int64, in EventoInput) (*domain.Evento, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
	ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Evento, error)
	Vecinos(ctx context.Context, id int64) ([]domain.VecinoRegistrado, error)
}
