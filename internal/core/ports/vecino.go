package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// VecinoRepository defines persistence for residents.
type VecinoRepository interface {
	List(ctx context.Context, activo *bool) ([]domain.Vecino, error)
	FindByID(ctx context.Context, id int64) (*domain.Vecino, error)
	FindByDocumento(ctx context.Context, documento string) (*domain.Vecino, error)
	// Search is a case-insensitive substring match over nombre, apellido,
	// documento and email restricted to active rows.
	Search(ctx context.Context, q string) ([]domain.Vecino, error)
	Create(ctx context.Context, v *domain.Vecino) (int64, error)
	// Update saves the previous row into datos_anteriores and returns it.
	Update(ctx context.Context, v *domain.Vecino) (*domain.Vecino, error)
	Delete(ctx context.Context, id int64) error
	ToggleActivo(ctx context.Context, id int64) error
	ListEventos(ctx context.Context, vecinoID int64) ([]domain.EventoRegistrado, error)
}

// VecinoInput carries the editable fields of a vecino.
type VecinoInput struct {
	Nombre          string
	Apellido        string
	Documento       string
	Email           string
	Telefono        string
	Direccion       string
	Barrio          string
	FechaNacimiento *string
}

type VecinoService interface {
	List(ctx context.Context, activo *bool) ([]domain.Vecino, error)
	Get(ctx context.Context, id int64) (*domain.Vecino, error)
	GetByDocumento(ctx context.Context, documento string) (*domain.Vecino, error)
	Search(ctx context.Context, q string) ([]domain.Vecino, error)
	Create(ctx context.Context, actor domain.Identity, in VecinoInput) (*domain.Vecino, error)
	Update(ctx context.Context, actor domain.Identity, id int64, in VecinoInput) (*domain.Vecino, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
	ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Vecino, error)
	Eventos(ctx context.Context, id int64) ([]domain.EventoRegistrado, error)
}
