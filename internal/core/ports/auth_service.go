package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Usuario, error)
	// Verify re-reads the user behind a verified token.
	Verify(ctx context.Context, id domain.Identity) (*domain.Usuario, error)
	ChangePassword(ctx context.Context, id domain.Identity, current, next string) error
	// HashPassword is shared with user management so both hash the same way.
	HashPassword(password string) (string, error)
}
