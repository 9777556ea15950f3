package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type UsuarioService struct {
	repo   ports.UsuarioRepository
	audit  auditor
	logger zerolog.Logger
}

func NewUsuarioService(repo ports.UsuarioRepository, rec ports.AuditRecorder, logger zerolog.Logger) *UsuarioService {
	return &UsuarioService{repo: repo, audit: newAuditor(rec), logger: logger}
}

func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.repo.List(ctx)
}

func (s *UsuarioService) Get(ctx context.Context, id int64) (*domain.Usuario, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UsuarioService) Search(ctx context.Context, q string) ([]domain.Usuario, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.ErrEmptySearch
	}
	return s.repo.Search(ctx, q)
}

func (s *UsuarioService) Create(ctx context.Context, actor domain.Identity, in ports.UsuarioInput) (*domain.Usuario, error) {
	u, err := usuarioFromInput(in)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	u.Activo = true

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadUsuario, id, domain.AccionCrear, nil)
	s.logger.Info().Int64("usuario_id", id).Str("email", u.Email).Str("rol", u.Rol).Msg("usuario created")

	return s.repo.FindByID(ctx, id)
}

// Update overwrites the editable fields. The password changes only when
// in.Password is non-empty.
func (s *UsuarioService) Update(ctx context.Context, actor domain.Identity, id int64, in ports.UsuarioInput) (*domain.Usuario, error) {
	u, err := usuarioFromInput(in)
	if err != nil {
		return nil, err
	}
	u.ID = id

	if in.Password != "" {
		if u.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	prev, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadUsuario, id, domain.AccionActualizar, prev)
	return s.repo.FindByID(ctx, id)
}

func (s *UsuarioService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	if actor.UserID == id {
		return domain.ErrSelfOperation
	}
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadUsuario, id, domain.AccionEliminar, prev)
	s.logger.Info().Int64("usuario_id", id).Msg("usuario deleted")
	return nil
}

func (s *UsuarioService) ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Usuario, error) {
	if actor.UserID == id {
		return nil, domain.ErrSelfOperation
	}
	if err := s.repo.ToggleActivo(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadUsuario, id, domain.AccionToggle, nil)
	return u, nil
}

func usuarioFromInput(in ports.UsuarioInput) (*domain.Usuario, error) {
	rol := strings.TrimSpace(in.Rol)
	if rol == "" {
		rol = domain.RoleUser
	}
	if !domain.ValidRole(rol) {
		return nil, domain.ErrInvalidRole
	}

	u := &domain.Usuario{
		Nombre:   strings.TrimSpace(in.Nombre),
		Apellido: strings.TrimSpace(in.Apellido),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Rol:      rol,
	}
	switch {
	case rol == domain.RoleSubsecretaria && in.SubsecretariaID == nil:
		return nil, domain.ErrSubsecretariaReq
	case rol == domain.RoleSubsecretaria:
		u.SubsecretariaID = in.SubsecretariaID
	}
	return u, nil
}
