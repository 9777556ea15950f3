package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// UsuarioRepository defines persistence for system users.
type UsuarioRepository interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	FindByID(ctx context.Context, id int64) (*domain.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*domain.Usuario, error)
	// Search matches nombre, apellido and email among active users.
	Search(ctx context.Context, q string) ([]domain.Usuario, error)
	Create(ctx context.Context, u *domain.Usuario) (int64, error)
	// Update overwrites the editable columns and saves the previous row into
	// datos_anteriores. A non-empty PasswordHash is written in the same
	// transaction. The previous row is returned.
	Update(ctx context.Context, u *domain.Usuario) (*domain.Usuario, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	ToggleActivo(ctx context.Context, id int64) error
}
