package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// UsuarioInput carries the editable fields of a user. An empty Password on
// update keeps the current one.
type UsuarioInput struct {
	Nombre          string
	Apellido        string
	Email           string
	Password        string
	Rol             string
	SubsecretariaID *int64
}

type UsuarioService interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	Get(ctx context.Context, id int64) (*domain.Usuario, error)
	Search(ctx context.Context, q string) ([]domain.Usuario, error)
	Create(ctx context.Context, actor domain.Identity, in UsuarioInput) (*domain.Usuario, error)
	Update(ctx context.Context, actor domain.Identity, id int64, in UsuarioInput) (*domain.Usuario, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
	ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Usuario, error)
}
