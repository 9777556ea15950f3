package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// RegistroRepository defines persistence for registrations.
type RegistroRepository interface {
	List(ctx context.Context, filter domain.RegistroFilter) ([]domain.RegistroDetalle, error)
	FindByID(ctx context.Context, id int64) (*domain.RegistroDetalle, error)
	// ExistsForPair reports whether the vecino is already registered in the
	// evento. It is a plain read: callers racing on the same pair may both
	// observe false.
	ExistsForPair(ctx context.Context, vecinoID, eventoID int64) (bool, error)
	Create(ctx context.Context, r *domain.Registro) (int64, error)
	UpdateObservaciones(ctx context.Context, id int64, observaciones string) error
	Delete(ctx context.Context, id int64) error
}

// RegistrationGuard serialises check+insert for a (vecino, evento) pair.
type RegistrationGuard interface {
	// Lock blocks until the pair is held or ctx is done. The returned
	// function releases it.
	Lock(ctx context.Context, vecinoID, eventoID int64) (func(), error)
}

// RegistroInput registers a vecino by id.
type RegistroInput struct {
	VecinoID      int64
	EventoID      int64
	Observaciones string
}

// RegistroDocumentoInput registers a vecino resolved by documento.
type RegistroDocumentoInput struct {
	Documento     string
	EventoID      int64
	Observaciones string
}

type RegistroService interface {
	List(ctx context.Context, filter domain.RegistroFilter) ([]domain.RegistroDetalle, error)
	Get(ctx context.Context, id int64) (*domain.RegistroDetalle, error)
	Create(ctx context.Context, actor domain.Identity, in RegistroInput) (*domain.RegistroDetalle, error)
	RegisterByDocumento(ctx context.Context, actor domain.Identity, in RegistroDocumentoInput) (*domain.RegistroDetalle, error)
	UpdateObservaciones(ctx context.Context, actor domain.Identity, id int64, observaciones string) (*domain.RegistroDetalle, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
}
