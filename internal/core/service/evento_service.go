package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type EventoService struct {
	repo     ports.EventoRepository
	subtipos ports.SubtipoRepository
	usuarios ports.UsuarioRepository
	audit    auditor
	logger   zerolog.Logger
	now      func() time.Time
}

func NewEventoService(
	repo ports.EventoRepository,
	subtipos ports.SubtipoRepository,
	usuarios ports.UsuarioRepository,
	rec ports.AuditRecorder,
	logger zerolog.Logger,
) *EventoService {
	return &EventoService{
		repo:     repo,
		subtipos: subtipos,
		usuarios: usuarios,
		audit:    newAuditor(rec),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *EventoService) List(ctx context.Context, filter domain.EventoFilter) ([]domain.Evento, error) {
	eventos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range eventos {
		eventos[i].Vencido = eventos[i].Expired(now)
	}
	return eventos, nil
}

func (s *EventoService) Get(ctx context.Context, id int64) (*domain.Evento, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Vencido = e.Expired(s.now())
	return e, nil
}

func (s *EventoService) Create(ctx context.Context, actor domain.Identity, in ports.EventoInput) (*domain.Evento, error) {
	e := eventoFromInput(in)
	e.Activo = true

	scope, err := s.scopeOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	if scope != nil {
		e.SubsecretariaID = scope
	}
	if err := s.checkTaxonomia(ctx, e); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadEvento, id, domain.AccionCrear, nil)
	s.logger.Info().Int64("evento_id", id).Str("nombre", e.Nombre).Msg("evento created")

	return s.Get(ctx, id)
}

func (s *EventoService) Update(ctx context.Context, actor domain.Identity, id int64, in ports.EventoInput) (*domain.Evento, error) {
	prev, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	e := eventoFromInput(in)
	e.ID = id
	e.Activo = prev.Activo
	if actor.Rol == domain.RoleSubsecretaria {
		e.SubsecretariaID = prev.SubsecretariaID
	}
	if err := s.checkTaxonomia(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadEvento, id, domain.AccionActualizar, prev)
	return s.Get(ctx, id)
}

func (s *EventoService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadEvento, id, domain.AccionEliminar, prev)
	s.logger.Info().Int64("evento_id", id).Msg("evento deleted")
	return nil
}

func (s *EventoService) ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Evento, error) {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.repo.ToggleActivo(ctx, id); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadEvento, id, domain.AccionToggle, nil)
	return s.Get(ctx, id)
}

func (s *EventoService) Vecinos(ctx context.Context, id int64) ([]domain.VecinoRegistrado, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListVecinos(ctx, id)
}

// scopeOf returns the subsecretaría a subsecretaria-role actor is confined to,
// or nil for every other role.
func (s *EventoService) scopeOf(ctx context.Context, actor domain.Identity) (*int64, error) {
	if actor.Rol != domain.RoleSubsecretaria {
		return nil, nil
	}
	u, err := s.usuarios.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if u.SubsecretariaID == nil {
		return nil, domain.ErrForbidden
	}
	return u.SubsecretariaID, nil
}

// authorize loads the event and checks the actor may modify it.
func (s *EventoService) authorize(ctx context.Context, actor domain.Identity, id int64) (*domain.Evento, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	scope, err := s.scopeOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	if scope != nil && (e.SubsecretariaID == nil || *e.SubsecretariaID != *scope) {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

// checkTaxonomia makes sure subtipo and tipo agree, filling tipo from subtipo
// when only the latter is given.
func (s *EventoService) checkTaxonomia(ctx context.Context, e *domain.Evento) error {
	if e.SubtipoID == nil {
		return nil
	}
	st, err := s.subtipos.FindByID(ctx, *e.SubtipoID)
	if err != nil {
		if errors.Is(err, domain.ErrSubtipoNotFound) {
			return domain.ErrInvalidReference
		}
		return err
	}
	if e.TipoID == nil {
		tipoID := st.TipoID
		e.TipoID = &tipoID
		return nil
	}
	if *e.TipoID != st.TipoID {
		return domain.ErrSubtipoMismatch
	}
	return nil
}

func eventoFromInput(in ports.EventoInput) *domain.Evento {
	e := &domain.Evento{
		Nombre:          strings.TrimSpace(in.Nombre),
		Descripcion:     strings.TrimSpace(in.Descripcion),
		Fecha:           strings.TrimSpace(in.Fecha),
		Lugar:           strings.TrimSpace(in.Lugar),
		Cupo:            in.Cupo,
		SubsecretariaID: in.SubsecretariaID,
		TipoID:          in.TipoID,
		SubtipoID:       in.SubtipoID,
	}
	if in.Hora != nil && strings.TrimSpace(*in.Hora) != "" {
		h := strings.TrimSpace(*in.Hora)
		e.Hora = &h
	}
	return e
}
